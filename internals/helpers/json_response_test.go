package helper

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labschedule_backend/internals/helpers/apperr"
)

type sqlStateErr struct{ code string }

func (e sqlStateErr) Error() string    { return "pg: " + e.code }
func (e sqlStateErr) SQLState() string { return e.code }

func TestJsonAppErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.NewValidation("bad"), fiber.StatusUnprocessableEntity},
		{&apperr.ConflictError{Message: "taken"}, fiber.StatusConflict},
		{apperr.NotFound("lab", "x"), fiber.StatusNotFound},
		{fiber.NewError(fiber.StatusBadRequest, "nope"), fiber.StatusBadRequest},
		{gorm.ErrRecordNotFound, fiber.StatusNotFound},
		{fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey), fiber.StatusConflict},
		{sqlStateErr{"23503"}, fiber.StatusBadRequest},
		{apperr.Store("replace", errors.New("connection reset")), fiber.StatusInternalServerError},
	}
	for i, tc := range cases {
		app := fiber.New()
		err := tc.err
		app.Get("/", func(c *fiber.Ctx) error { return JsonAppError(c, err) })
		resp, e := app.Test(httptest.NewRequest("GET", "/", nil))
		if e != nil {
			t.Fatal(e)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("case %d (%v): got %d want %d", i, tc.err, resp.StatusCode, tc.want)
		}
	}
}

func TestJsonAppErrorValidationBody(t *testing.T) {
	ve := apperr.NewValidation("grade out of allowed range",
		apperr.Violation{Key: "MONDAY-3", Value: "14A", Reason: apperr.ReasonGradeRange})
	ve.AllowedRange = &apperr.GradeRange{Min: 6, Max: 11}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return JsonAppError(c, ve) })
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var body ErrorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	if body.Success || body.ErrorCode != "VALIDATION_ERROR" {
		t.Fatalf("body %+v", body)
	}
	if len(body.Violations) != 1 || body.Violations[0] != "MONDAY-3 (14A)" {
		t.Fatalf("violations %v", body.Violations)
	}
	if body.AllowedRange == nil || *body.AllowedRange != (apperr.GradeRange{Min: 6, Max: 11}) {
		t.Fatalf("allowed range %+v", body.AllowedRange)
	}
}

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(45, Paging{Page: 2, PerPage: 20}, 20)
	if p.TotalPages != 3 || !p.HasNext || !p.HasPrev {
		t.Fatalf("pagination %+v", p)
	}
	p = BuildPagination(0, Paging{Page: 1, PerPage: 20}, 0)
	if p.TotalPages != 1 || p.HasNext || p.HasPrev {
		t.Fatalf("empty pagination %+v", p)
	}
}
