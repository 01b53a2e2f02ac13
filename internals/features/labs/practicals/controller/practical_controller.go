// file: internals/features/labs/practicals/controller/practical_controller.go
package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	d "labschedule_backend/internals/features/labs/practicals/dto"
	m "labschedule_backend/internals/features/labs/practicals/model"
	svc "labschedule_backend/internals/features/labs/practicals/service"
	tm "labschedule_backend/internals/features/labs/timetables/model"
	helper "labschedule_backend/internals/helpers"
)

type PracticalController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Svc      *svc.Service
}

func New(db *gorm.DB, v *validator.Validate, maxPeriod int) *PracticalController {
	if v == nil {
		v = validator.New()
	}
	return &PracticalController{DB: db, Validate: v, Svc: svc.New(db, v, maxPeriod)}
}

func (ctl *PracticalController) fail(c *fiber.Ctx, op string, err error) error {
	log.Warn().Err(err).Str("path", c.Path()).Msgf("[Practical.%s] failed", op)
	return helper.JsonAppError(c, err)
}

// optUUID: query kosong → nil; tidak valid → error.
func optUUID(c *fiber.Ctx, name string) (*uuid.UUID, error) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid uuid")
	}
	return &id, nil
}

func dayFromDate(s string) (tm.Day, bool) {
	t, err := time.Parse(m.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	return tm.DayOf(t)
}

/* =========================
   GET /api/availability?teacher_id&lab_id&day[&date]
   ========================= */

func (ctl *PracticalController) Availability(c *fiber.Ctx) error {
	teacherID, err := optUUID(c, "teacher_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	labID, err := optUUID(c, "lab_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	q := svc.AvailabilityQuery{
		Day:  tm.Day(strings.ToUpper(strings.TrimSpace(c.Query("day")))),
		Date: c.Query("date"),
	}
	if teacherID != nil {
		q.TeacherID = *teacherID
	}
	if labID != nil {
		q.LabID = *labID
	}

	periods, err := ctl.Svc.AvailableSlots(c.UserContext(), q)
	if err != nil {
		return ctl.fail(c, "Availability", err)
	}

	day := string(q.Day)
	if day == "" {
		// hari diturunkan dari tanggal
		if dd, ok := dayFromDate(q.Date); ok {
			day = string(dd)
		}
	}
	return helper.JsonOK(c, "ok", d.AvailabilityResponse{
		TeacherID: q.TeacherID,
		LabID:     q.LabID,
		Day:       day,
		Date:      strings.TrimSpace(q.Date),
		Periods:   periods,
	})
}

/* =========================
   POST /api/practicals
   ========================= */

func (ctl *PracticalController) Book(c *fiber.Ctx) error {
	var req d.BookPracticalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	row, err := ctl.Svc.BookPractical(c.UserContext(), req)
	if err != nil {
		return ctl.fail(c, "Book", err)
	}
	return helper.JsonCreated(c, "Praktikum berhasil dijadwalkan", d.FromModel(*row))
}

/* =========================
   GET /api/practicals/conflicts
   ========================= */

func (ctl *PracticalController) Conflicts(c *fiber.Ctx) error {
	rows, err := ctl.Svc.ListScheduleConflicts(c.UserContext())
	if err != nil {
		return ctl.fail(c, "Conflicts", err)
	}
	return helper.JsonList(c, "ok", rows, nil)
}

/* =========================
   GET /api/practicals
   ========================= */

func (ctl *PracticalController) List(c *fiber.Ctx) error {
	teacherID, err := optUUID(c, "teacher_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	labID, err := optUUID(c, "lab_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	q := d.ListPracticalQuery{TeacherID: teacherID, LabID: labID, Date: strings.TrimSpace(c.Query("date"))}
	if s := strings.ToUpper(strings.TrimSpace(c.Query("status"))); s != "" {
		st := m.PracticalStatus(s)
		if !st.Valid() {
			return helper.JsonError(c, http.StatusBadRequest, "status must be UPCOMING, COMPLETED or CANCELLED")
		}
		q.Status = &st
	}

	p := helper.ResolvePaging(c, 20, 200)
	q.Limit, q.Offset = p.Limit, p.Offset

	rows, total, err := ctl.Svc.List(c.UserContext(), q)
	if err != nil {
		return ctl.fail(c, "List", err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "ok", d.FromModels(rows), &pg)
}

/* =========================
   GET /api/practicals/:id
   ========================= */

func (ctl *PracticalController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id is not a valid uuid")
	}
	row, err := ctl.Svc.Get(c.UserContext(), id)
	if err != nil {
		return ctl.fail(c, "Get", err)
	}
	return helper.JsonOK(c, "ok", d.FromModel(*row))
}

/* =========================
   PATCH /api/practicals/:id/status
   ========================= */

func (ctl *PracticalController) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "id is not a valid uuid")
	}
	var req d.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	req.Status = m.PracticalStatus(strings.ToUpper(strings.TrimSpace(string(req.Status))))

	row, err := ctl.Svc.UpdateStatus(c.UserContext(), id, req)
	if err != nil {
		return ctl.fail(c, "UpdateStatus", err)
	}
	return helper.JsonUpdated(c, "Status praktikum diperbarui", d.FromModel(*row))
}
