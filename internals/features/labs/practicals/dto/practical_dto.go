// file: internals/features/labs/practicals/dto/practical_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	m "labschedule_backend/internals/features/labs/practicals/model"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

// BookPracticalRequest body POST /api/practicals.
// Grade boleh kosong bila ClassName berupa kode kelas ("9B").
type BookPracticalRequest struct {
	TeacherID uuid.UUID `json:"teacher_id" validate:"required"`
	LabID     uuid.UUID `json:"lab_id"     validate:"required"`
	Date      string    `json:"date"       validate:"required,datetime=2006-01-02"`
	Period    int       `json:"period"     validate:"required,min=1"`
	Grade     *int      `json:"grade"      validate:"omitempty,min=1,max=13"`
	ClassName string    `json:"class_name" validate:"required,max=20"`
	Subject   string    `json:"subject"    validate:"required,max=120"`
	Notes     *string   `json:"notes"      validate:"omitempty,max=2000"`
}

func (r *BookPracticalRequest) Normalize() {
	r.Date = strings.TrimSpace(r.Date)
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.Subject = strings.TrimSpace(r.Subject)
	if r.Notes != nil {
		n := strings.TrimSpace(*r.Notes)
		if n == "" {
			r.Notes = nil
		} else {
			r.Notes = &n
		}
	}
}

// UpdateStatusRequest body PATCH /api/practicals/:id/status.
type UpdateStatusRequest struct {
	Status m.PracticalStatus `json:"status" validate:"required,oneof=COMPLETED CANCELLED"`
}

// ListPracticalQuery filter GET /api/practicals.
type ListPracticalQuery struct {
	TeacherID *uuid.UUID
	LabID     *uuid.UUID
	Status    *m.PracticalStatus
	Date      string
	Limit     int
	Offset    int
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type PracticalResponse struct {
	ID        uuid.UUID         `json:"id"`
	TeacherID uuid.UUID         `json:"teacher_id"`
	LabID     uuid.UUID         `json:"lab_id"`
	Date      string            `json:"date"`
	Period    int               `json:"period"`
	Status    m.PracticalStatus `json:"status"`
	Grade     int               `json:"grade"`
	ClassName string            `json:"class_name"`
	Subject   string            `json:"subject"`
	Notes     *string           `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type ConflictResponse struct {
	LabID       uuid.UUID   `json:"lab_id"`
	Date        string      `json:"date"`
	Period      int         `json:"period"`
	Count       int64       `json:"count"`
	ScheduleIDs []uuid.UUID `json:"schedule_ids"`
}

type AvailabilityResponse struct {
	TeacherID uuid.UUID `json:"teacher_id"`
	LabID     uuid.UUID `json:"lab_id"`
	Day       string    `json:"day"`
	Date      string    `json:"date,omitempty"`
	Periods   []int     `json:"periods"`
}

/* =========================================================
   3) MAPPERS
   ========================================================= */

func FromModel(p m.PracticalScheduleModel) PracticalResponse {
	return PracticalResponse{
		ID:        p.PracticalScheduleID,
		TeacherID: p.PracticalScheduleTeacherID,
		LabID:     p.PracticalScheduleLabID,
		Date:      p.PracticalScheduleDate,
		Period:    p.PracticalSchedulePeriod,
		Status:    p.PracticalScheduleStatus,
		Grade:     p.PracticalScheduleGrade,
		ClassName: p.PracticalScheduleClassName,
		Subject:   p.PracticalScheduleSubject,
		Notes:     p.PracticalScheduleNotes,
		CreatedAt: p.PracticalScheduleCreatedAt,
		UpdatedAt: p.PracticalScheduleUpdatedAt,
	}
}

func FromModels(rows []m.PracticalScheduleModel) []PracticalResponse {
	out := make([]PracticalResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, FromModel(r))
	}
	return out
}
