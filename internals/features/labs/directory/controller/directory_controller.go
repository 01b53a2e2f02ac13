// file: internals/features/labs/directory/controller/directory_controller.go
package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	d "labschedule_backend/internals/features/labs/directory/dto"
	m "labschedule_backend/internals/features/labs/directory/model"
	helper "labschedule_backend/internals/helpers"
	"labschedule_backend/internals/helpers/apperr"
)

type DirectoryController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func New(db *gorm.DB, v *validator.Validate) *DirectoryController {
	if v == nil {
		v = validator.New()
	}
	return &DirectoryController{DB: db, Validate: v}
}

func parseID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, name+" is not a valid uuid")
	}
	return id, nil
}

/* =========================
   LABS
   ========================= */

// POST /api/labs
func (ctl *DirectoryController) CreateLab(c *fiber.Ctx) error {
	var req d.CreateLabRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonAppError(c, apperr.FromValidator(err))
	}
	if req.GradeFrom != nil && req.GradeTo != nil && *req.GradeFrom > *req.GradeTo {
		return helper.JsonAppError(c, apperr.Field("grade_to", "grade_to must be >= grade_from"))
	}

	lab := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(&lab).Error; err != nil {
		log.Error().Err(err).Msg("[Directory.CreateLab] insert")
		return helper.JsonAppError(c, err)
	}
	log.Info().Str("lab_id", lab.LabID.String()).Str("category", string(lab.Category().Kind)).Msg("[Directory.CreateLab] ok")
	return helper.JsonCreated(c, "Lab berhasil dibuat", d.FromLab(lab))
}

// GET /api/labs?q=
func (ctl *DirectoryController) ListLabs(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&m.LabModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(lab_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	var rows []m.LabModel
	if err := tx.Order("lab_name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "ok", d.FromLabs(rows), &pg)
}

// GET /api/labs/:lab_id
func (ctl *DirectoryController) GetLab(c *fiber.Ctx) error {
	id, err := parseID(c, "lab_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var lab m.LabModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("lab_id = ?", id).First(&lab).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonAppError(c, apperr.NotFound("lab", id.String()))
		}
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", d.FromLab(lab))
}

/* =========================
   TEACHERS
   ========================= */

// POST /api/teachers
func (ctl *DirectoryController) CreateTeacher(c *fiber.Ctx) error {
	var req d.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "invalid JSON body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(req); err != nil {
		return helper.JsonAppError(c, apperr.FromValidator(err))
	}

	t := req.ToModel()
	err := ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if t.TeacherHomeLabID != nil {
			var n int64
			if err := tx.Model(&m.LabModel{}).Where("lab_id = ?", *t.TeacherHomeLabID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return apperr.NotFound("lab", t.TeacherHomeLabID.String())
			}
		}
		return tx.Create(&t).Error
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, http.StatusConflict, "email sudah dipakai guru lain")
		}
		log.Warn().Err(err).Msg("[Directory.CreateTeacher] failed")
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "Guru berhasil dibuat", d.FromTeacher(t))
}

// GET /api/teachers?q=&home_lab_id=
func (ctl *DirectoryController) ListTeachers(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 200)

	tx := ctl.DB.WithContext(c.UserContext()).Model(&m.TeacherModel{})
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		tx = tx.Where("LOWER(teacher_name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if s := strings.TrimSpace(c.Query("home_lab_id")); s != "" {
		labID, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, "home_lab_id is not a valid uuid")
		}
		tx = tx.Where("teacher_home_lab_id = ?", labID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	var rows []m.TeacherModel
	if err := tx.Order("teacher_name ASC").Limit(p.Limit).Offset(p.Offset).Find(&rows).Error; err != nil {
		return helper.JsonAppError(c, err)
	}
	pg := helper.BuildPagination(total, p, len(rows))
	return helper.JsonList(c, "ok", d.FromTeachers(rows), &pg)
}

// GET /api/teachers/:teacher_id
func (ctl *DirectoryController) GetTeacher(c *fiber.Ctx) error {
	id, err := parseID(c, "teacher_id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var t m.TeacherModel
	if err := ctl.DB.WithContext(c.UserContext()).Where("teacher_id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonAppError(c, apperr.NotFound("teacher", id.String()))
		}
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "ok", d.FromTeacher(t))
}
