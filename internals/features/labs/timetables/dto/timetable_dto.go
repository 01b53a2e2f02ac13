// file: internals/features/labs/timetables/dto/timetable_dto.go
package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	m "labschedule_backend/internals/features/labs/timetables/model"
	"labschedule_backend/internals/helpers/apperr"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

// ParseGridBody menerima dua bentuk body:
//
//	{"grid": {"MONDAY-3": "9B", ...}}
//	{"MONDAY-3": "9B", ...}
//
// Nilai null dianggap "" (kosong). Nilai non-string ditolak.
func ParseGridBody(body []byte) (map[string]string, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, apperr.Field("grid", "grid is required")
	}
	var raw map[string]any
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, apperr.Field("grid", "grid must be a JSON object")
	}
	if inner, ok := raw["grid"]; ok {
		obj, ok := inner.(map[string]any)
		if !ok {
			return nil, apperr.Field("grid", "grid must be a JSON object")
		}
		raw = obj
	}

	grid := make(map[string]string, len(raw))
	var bad []apperr.Violation
	for k, v := range raw {
		switch val := v.(type) {
		case nil:
			grid[k] = ""
		case string:
			grid[k] = val
		default:
			bad = append(bad, apperr.Violation{Key: k, Value: fmt.Sprint(val), Reason: apperr.ReasonFormat})
		}
	}
	if len(bad) > 0 {
		return nil, apperr.NewValidation("grid values must be class-code strings", bad...)
	}
	return grid, nil
}

// PatchSlotRequest edit satu sel grid.
type PatchSlotRequest struct {
	ClassCode *string `json:"class_code" validate:"omitempty,max=5"`
	Available *bool   `json:"available"`
}

func (r PatchSlotRequest) Code() string {
	if r.ClassCode == nil {
		return ""
	}
	return *r.ClassCode
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type SlotResponse struct {
	Key       string `json:"key"`
	Day       m.Day  `json:"day"`
	Period    int    `json:"period"`
	ClassCode string `json:"class_code"`
	Grade     int    `json:"grade,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Available bool   `json:"available"`
}

type GridResponse struct {
	OwnerType m.OwnerType       `json:"owner_type"`
	OwnerID   uuid.UUID         `json:"owner_id"`
	Grid      map[string]string `json:"grid"`
	Slots     []SlotResponse    `json:"slots"`
}

type RevisionResponse struct {
	ID        uuid.UUID      `json:"id"`
	OwnerType m.OwnerType    `json:"owner_type"`
	OwnerID   uuid.UUID      `json:"owner_id"`
	Grid      map[string]any `json:"grid"`
	SlotCount int            `json:"slot_count"`
	CreatedAt time.Time      `json:"created_at"`
}

/* =========================================================
   3) MAPPERS
   ========================================================= */

func FromTeacherSlot(s m.TeacherTimetableSlotModel) SlotResponse {
	return SlotResponse{
		Key:       m.SlotKey(s.TeacherTimetableSlotDay, s.TeacherTimetableSlotPeriod),
		Day:       s.TeacherTimetableSlotDay,
		Period:    s.TeacherTimetableSlotPeriod,
		ClassCode: s.TeacherTimetableSlotClassCode,
		Grade:     s.TeacherTimetableSlotGrade,
		Subject:   s.TeacherTimetableSlotSubject,
		Available: s.TeacherTimetableSlotAvailable,
	}
}

func FromLabSlot(s m.LabTimetableSlotModel) SlotResponse {
	resp := SlotResponse{
		Key:       m.SlotKey(s.LabTimetableSlotDay, s.LabTimetableSlotPeriod),
		Day:       s.LabTimetableSlotDay,
		Period:    s.LabTimetableSlotPeriod,
		ClassCode: s.LabTimetableSlotClassCode,
		Available: s.LabTimetableSlotAvailable,
	}
	if code, err := m.ParseClassCode(s.LabTimetableSlotClassCode); err == nil {
		resp.Grade = code.Grade
	}
	return resp
}

func NewTeacherGrid(teacherID uuid.UUID, rows []m.TeacherTimetableSlotModel) GridResponse {
	out := GridResponse{
		OwnerType: m.OwnerTeacher,
		OwnerID:   teacherID,
		Grid:      make(map[string]string, len(rows)),
		Slots:     make([]SlotResponse, 0, len(rows)),
	}
	for _, r := range rows {
		s := FromTeacherSlot(r)
		out.Grid[s.Key] = s.ClassCode
		out.Slots = append(out.Slots, s)
	}
	return out
}

func NewLabGrid(labID uuid.UUID, rows []m.LabTimetableSlotModel) GridResponse {
	out := GridResponse{
		OwnerType: m.OwnerLab,
		OwnerID:   labID,
		Grid:      make(map[string]string, len(rows)),
		Slots:     make([]SlotResponse, 0, len(rows)),
	}
	for _, r := range rows {
		s := FromLabSlot(r)
		out.Grid[s.Key] = s.ClassCode
		out.Slots = append(out.Slots, s)
	}
	return out
}

func FromRevisions(rows []m.TimetableRevisionModel) []RevisionResponse {
	out := make([]RevisionResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, RevisionResponse{
			ID:        r.TimetableRevisionID,
			OwnerType: r.TimetableRevisionOwnerType,
			OwnerID:   r.TimetableRevisionOwnerID,
			Grid:      map[string]any(r.TimetableRevisionGrid),
			SlotCount: r.TimetableRevisionSlotCount,
			CreatedAt: r.TimetableRevisionCreatedAt,
		})
	}
	return out
}
