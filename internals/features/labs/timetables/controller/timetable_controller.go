// file: internals/features/labs/timetables/controller/timetable_controller.go
package controller

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	d "labschedule_backend/internals/features/labs/timetables/dto"
	m "labschedule_backend/internals/features/labs/timetables/model"
	svc "labschedule_backend/internals/features/labs/timetables/service"
	helper "labschedule_backend/internals/helpers"
	"labschedule_backend/internals/helpers/apperr"
)

/* =========================
   Controller & Constructor
   ========================= */

type TimetableController struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	Svc       *svc.Service
	MaxPeriod int
}

func New(db *gorm.DB, v *validator.Validate, maxPeriod int) *TimetableController {
	if v == nil {
		v = validator.New()
	}
	return &TimetableController{DB: db, Validate: v, Svc: svc.New(db, maxPeriod), MaxPeriod: maxPeriod}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s is not a valid uuid", name)
	}
	return id, nil
}

func parseSlotParams(c *fiber.Ctx) (m.Day, int, error) {
	day, ok := m.ParseDay(c.Params("day"))
	if !ok {
		return "", 0, fmt.Errorf("day must be one of MONDAY..FRIDAY")
	}
	period, err := strconv.Atoi(c.Params("period"))
	if err != nil {
		return "", 0, fmt.Errorf("period must be an integer")
	}
	return day, period, nil
}

func (ctl *TimetableController) fail(c *fiber.Ctx, op string, err error) error {
	log.Warn().Err(err).Str("path", c.Path()).Msgf("[Timetable.%s] failed", op)
	return helper.JsonAppError(c, err)
}

/* =========================
   Bulk save (PUT)
   ========================= */

func (ctl *TimetableController) SaveTeacherGrid(c *fiber.Ctx) error {
	teacherID, err := parseUUIDParam(c, "teacher_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	grid, err := d.ParseGridBody(c.Body())
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	res, err := ctl.Svc.SaveTeacherGrid(c.UserContext(), teacherID, grid)
	if err != nil {
		return ctl.fail(c, "SaveTeacherGrid", err)
	}
	return helper.JsonUpdated(c, "Timetable guru tersimpan", res)
}

func (ctl *TimetableController) SaveLabGrid(c *fiber.Ctx) error {
	labID, err := parseUUIDParam(c, "lab_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	grid, err := d.ParseGridBody(c.Body())
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	res, err := ctl.Svc.SaveLabGrid(c.UserContext(), labID, grid)
	if err != nil {
		return ctl.fail(c, "SaveLabGrid", err)
	}
	return helper.JsonUpdated(c, "Timetable lab tersimpan", res)
}

/* =========================
   Read
   ========================= */

func (ctl *TimetableController) GetTeacherGrid(c *fiber.Ctx) error {
	teacherID, err := parseUUIDParam(c, "teacher_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	rows, err := ctl.Svc.TeacherSlots(c.UserContext(), teacherID)
	if err != nil {
		return ctl.fail(c, "GetTeacherGrid", err)
	}
	return helper.JsonOK(c, "ok", d.NewTeacherGrid(teacherID, rows))
}

func (ctl *TimetableController) GetLabGrid(c *fiber.Ctx) error {
	labID, err := parseUUIDParam(c, "lab_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	rows, err := ctl.Svc.LabSlots(c.UserContext(), labID)
	if err != nil {
		return ctl.fail(c, "GetLabGrid", err)
	}
	return helper.JsonOK(c, "ok", d.NewLabGrid(labID, rows))
}

func (ctl *TimetableController) TeacherRevisions(c *fiber.Ctx) error {
	return ctl.revisions(c, m.OwnerTeacher, "teacher_id")
}

func (ctl *TimetableController) LabRevisions(c *fiber.Ctx) error {
	return ctl.revisions(c, m.OwnerLab, "lab_id")
}

func (ctl *TimetableController) revisions(c *fiber.Ctx, owner m.OwnerType, param string) error {
	id, err := parseUUIDParam(c, param)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	limit := c.QueryInt("limit", 20)
	if limit > 100 {
		limit = 100
	}
	rows, err := ctl.Svc.Revisions(c.UserContext(), owner, id, limit)
	if err != nil {
		return ctl.fail(c, "Revisions", err)
	}
	return helper.JsonList(c, "ok", d.FromRevisions(rows), nil)
}

/* =========================
   Single slot (PATCH / DELETE)
   ========================= */

func (ctl *TimetableController) parsePatch(c *fiber.Ctx) (m.Day, int, svc.SlotEdit, error) {
	day, period, err := parseSlotParams(c)
	if err != nil {
		return "", 0, svc.SlotEdit{}, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var req d.PatchSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return "", 0, svc.SlotEdit{}, fiber.NewError(fiber.StatusBadRequest, "invalid JSON body")
	}
	if err := ctl.Validate.Struct(req); err != nil {
		return "", 0, svc.SlotEdit{}, apperr.FromValidator(err)
	}
	return day, period, svc.SlotEdit{ClassCode: req.Code(), Available: req.Available}, nil
}

func (ctl *TimetableController) PatchTeacherSlot(c *fiber.Ctx) error {
	teacherID, err := parseUUIDParam(c, "teacher_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	day, period, edit, err := ctl.parsePatch(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	slot, err := ctl.Svc.SetTeacherSlot(c.UserContext(), teacherID, day, period, edit)
	if err != nil {
		return ctl.fail(c, "PatchTeacherSlot", err)
	}
	return helper.JsonUpdated(c, "Slot guru diperbarui", d.FromTeacherSlot(*slot))
}

func (ctl *TimetableController) PatchLabSlot(c *fiber.Ctx) error {
	labID, err := parseUUIDParam(c, "lab_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	day, period, edit, err := ctl.parsePatch(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	slot, err := ctl.Svc.SetLabSlot(c.UserContext(), labID, day, period, edit)
	if err != nil {
		return ctl.fail(c, "PatchLabSlot", err)
	}
	return helper.JsonUpdated(c, "Slot lab diperbarui", d.FromLabSlot(*slot))
}

func (ctl *TimetableController) DeleteTeacherSlot(c *fiber.Ctx) error {
	teacherID, err := parseUUIDParam(c, "teacher_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	day, period, err := parseSlotParams(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Svc.DeleteTeacherSlot(c.UserContext(), teacherID, day, period); err != nil {
		return ctl.fail(c, "DeleteTeacherSlot", err)
	}
	return helper.JsonDeleted(c, "Slot guru dihapus", fiber.Map{"key": m.SlotKey(day, period)})
}

func (ctl *TimetableController) DeleteLabSlot(c *fiber.Ctx) error {
	labID, err := parseUUIDParam(c, "lab_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	day, period, err := parseSlotParams(c)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if err := ctl.Svc.DeleteLabSlot(c.UserContext(), labID, day, period); err != nil {
		return ctl.fail(c, "DeleteLabSlot", err)
	}
	return helper.JsonDeleted(c, "Slot lab dihapus", fiber.Map{"key": m.SlotKey(day, period)})
}

/* =========================
   Export XLSX
   ========================= */

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (ctl *TimetableController) ExportTeacherGrid(c *fiber.Ctx) error {
	teacherID, err := parseUUIDParam(c, "teacher_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	rows, err := ctl.Svc.TeacherSlots(c.UserContext(), teacherID)
	if err != nil {
		return ctl.fail(c, "ExportTeacherGrid", err)
	}
	return ctl.sendXLSX(c, "teacher-"+teacherID.String(), svc.TeacherExportCells(rows))
}

func (ctl *TimetableController) ExportLabGrid(c *fiber.Ctx) error {
	labID, err := parseUUIDParam(c, "lab_id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	rows, err := ctl.Svc.LabSlots(c.UserContext(), labID)
	if err != nil {
		return ctl.fail(c, "ExportLabGrid", err)
	}
	return ctl.sendXLSX(c, "lab-"+labID.String(), svc.LabExportCells(rows))
}

func (ctl *TimetableController) sendXLSX(c *fiber.Ctx, name string, cells []svc.ExportCell) error {
	var buf bytes.Buffer
	if err := svc.WriteGridXLSX(&buf, "Timetable "+name, cells, ctl.MaxPeriod); err != nil {
		log.Error().Err(err).Msg("[Timetable.Export] write xlsx")
		return helper.JsonError(c, http.StatusInternalServerError, "gagal membuat file xlsx")
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="timetable-%s.xlsx"`, name))
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
