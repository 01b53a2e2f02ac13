package apperr

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// FromValidator mengubah validator.ValidationErrors jadi ValidationError
// (semua field sekaligus).
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Message: err.Error()}
	}
	out := &ValidationError{Message: "invalid request"}
	for _, fe := range verrs {
		out.Violations = append(out.Violations, Violation{
			Key:    fe.Field(),
			Value:  fmt.Sprint(fe.Value()),
			Reason: fe.Tag(),
		})
	}
	return out
}
