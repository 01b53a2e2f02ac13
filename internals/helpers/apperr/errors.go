// Package apperr berisi taksonomi error domain penjadwalan lab.
// Controller memetakan tipe-tipe ini ke status HTTP lewat helper.JsonAppError.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type GradeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r GradeRange) Contains(grade int) bool { return grade >= r.Min && grade <= r.Max }

func (r GradeRange) String() string { return fmt.Sprintf("%d-%d", r.Min, r.Max) }

// Violation satu entri grid / field yang ditolak.
type Violation struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

const (
	ReasonFormat     = "invalid_format"
	ReasonGradeRange = "grade_out_of_range"
	ReasonField      = "invalid_field"
)

func (v Violation) String() string {
	if v.Value == "" {
		return v.Key
	}
	return fmt.Sprintf("%s (%s)", v.Key, v.Value)
}

// ValidationError selalu membawa seluruh pelanggaran, bukan hanya yang pertama.
type ValidationError struct {
	Message      string
	Violations   []Violation
	AllowedRange *GradeRange
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.ViolationStrings(), ", "))
}

func (e *ValidationError) ViolationStrings() []string {
	out := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		out = append(out, v.String())
	}
	return out
}

func NewValidation(message string, violations ...Violation) *ValidationError {
	return &ValidationError{Message: message, Violations: violations}
}

// Field membuat ValidationError untuk field request yang salah/kosong.
func Field(field, message string) *ValidationError {
	return &ValidationError{
		Message:    message,
		Violations: []Violation{{Key: field, Reason: ReasonField}},
	}
}

// ConflictError: booking bentrok. Existing berisi jadwal yang sudah ada.
type ConflictError struct {
	Message  string
	Existing any
}

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// StoreError: kegagalan transaksi; operasi sudah di-rollback penuh dan aman diulang.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// Store membungkus err sebagai StoreError kecuali err sudah error domain.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if IsDomain(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func IsDomain(err error) bool {
	var (
		ve *ValidationError
		ce *ConflictError
		ne *NotFoundError
		se *StoreError
	)
	return errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &ne) || errors.As(err, &se)
}
