// file: internals/features/labs/directory/dto/directory_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "labschedule_backend/internals/features/labs/directory/model"
)

/* =========================================================
   LAB
   ========================================================= */

type CreateLabRequest struct {
	Name      string  `json:"name"       validate:"required,min=2,max=160"`
	GradeFrom *int    `json:"grade_from" validate:"omitempty,min=1,max=13"`
	GradeTo   *int    `json:"grade_to"   validate:"omitempty,min=1,max=13"`
	Location  *string `json:"location"   validate:"omitempty,max=160"`
}

func (r *CreateLabRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Location != nil {
		l := strings.TrimSpace(*r.Location)
		if l == "" {
			r.Location = nil
		} else {
			r.Location = &l
		}
	}
}

func (r CreateLabRequest) ToModel() m.LabModel {
	return m.LabModel{
		LabName:      r.Name,
		LabGradeFrom: r.GradeFrom,
		LabGradeTo:   r.GradeTo,
		LabLocation:  r.Location,
		LabIsActive:  true,
	}
}

type LabResponse struct {
	ID        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	GradeFrom *int          `json:"grade_from,omitempty"`
	GradeTo   *int          `json:"grade_to,omitempty"`
	Location  *string       `json:"location,omitempty"`
	IsActive  bool          `json:"is_active"`
	Category  m.LabCategory `json:"category"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func FromLab(l m.LabModel) LabResponse {
	return LabResponse{
		ID:        l.LabID,
		Name:      l.LabName,
		GradeFrom: l.LabGradeFrom,
		GradeTo:   l.LabGradeTo,
		Location:  l.LabLocation,
		IsActive:  l.LabIsActive,
		Category:  l.Category(),
		CreatedAt: l.LabCreatedAt,
		UpdatedAt: l.LabUpdatedAt,
	}
}

func FromLabs(rows []m.LabModel) []LabResponse {
	out := make([]LabResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromLab(r))
	}
	return out
}

/* =========================================================
   TEACHER
   ========================================================= */

type CreateTeacherRequest struct {
	Name      string     `json:"name"        validate:"required,min=2,max=160"`
	Email     *string    `json:"email"       validate:"omitempty,email,max=255"`
	Subject   string     `json:"subject"     validate:"omitempty,max=120"`
	HomeLabID *uuid.UUID `json:"home_lab_id" validate:"omitempty"`
}

func (r *CreateTeacherRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Subject = strings.TrimSpace(r.Subject)
	if r.Email != nil {
		e := strings.ToLower(strings.TrimSpace(*r.Email))
		if e == "" {
			r.Email = nil
		} else {
			r.Email = &e
		}
	}
	if r.HomeLabID != nil && *r.HomeLabID == uuid.Nil {
		r.HomeLabID = nil
	}
}

func (r CreateTeacherRequest) ToModel() m.TeacherModel {
	return m.TeacherModel{
		TeacherName:      r.Name,
		TeacherEmail:     r.Email,
		TeacherSubject:   r.Subject,
		TeacherHomeLabID: r.HomeLabID,
	}
}

type TeacherResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Email     *string    `json:"email,omitempty"`
	Subject   string     `json:"subject"`
	HomeLabID *uuid.UUID `json:"home_lab_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func FromTeacher(t m.TeacherModel) TeacherResponse {
	return TeacherResponse{
		ID:        t.TeacherID,
		Name:      t.TeacherName,
		Email:     t.TeacherEmail,
		Subject:   t.TeacherSubject,
		HomeLabID: t.TeacherHomeLabID,
		CreatedAt: t.TeacherCreatedAt,
		UpdatedAt: t.TeacherUpdatedAt,
	}
}

func FromTeachers(rows []m.TeacherModel) []TeacherResponse {
	out := make([]TeacherResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromTeacher(r))
	}
	return out
}
