package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	dirModel "labschedule_backend/internals/features/labs/directory/model"
	d "labschedule_backend/internals/features/labs/practicals/dto"
	pm "labschedule_backend/internals/features/labs/practicals/model"
	tm "labschedule_backend/internals/features/labs/timetables/model"
	helper "labschedule_backend/internals/helpers"
	"labschedule_backend/internals/helpers/apperr"
)

/* =========================
   Booking
========================= */

// BookPractical membuat praktikum UPCOMING. Unique index upcoming_key adalah
// satu-satunya penjaga double booking; duplicate key → ConflictError berisi jadwal lama.
func (s *Service) BookPractical(ctx context.Context, req d.BookPracticalRequest) (*pm.PracticalScheduleModel, error) {
	req.Normalize()
	if err := s.Validate.Struct(req); err != nil {
		return nil, apperr.FromValidator(err)
	}

	day, grade, err := s.checkRequest(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.findTeacher(ctx, s.DB, req.TeacherID); err != nil {
		return nil, err
	}
	lab, err := s.findLab(ctx, s.DB, req.LabID)
	if err != nil {
		return nil, err
	}
	if cat := dirModel.CategoryOf(*lab); !cat.Allows(grade) {
		r := cat.Range
		return nil, &apperr.ValidationError{
			Message:      "grade out of allowed range",
			Violations:   []apperr.Violation{{Key: "grade", Value: fmt.Sprint(grade), Reason: apperr.ReasonGradeRange}},
			AllowedRange: &r,
		}
	}
	if err := s.checkGrids(ctx, req.TeacherID, req.LabID, day, req.Period); err != nil {
		return nil, err
	}

	row := pm.PracticalScheduleModel{
		PracticalScheduleTeacherID: req.TeacherID,
		PracticalScheduleLabID:     req.LabID,
		PracticalScheduleDate:      req.Date,
		PracticalSchedulePeriod:    req.Period,
		PracticalScheduleStatus:    pm.PracticalUpcoming,
		PracticalScheduleGrade:     grade,
		PracticalScheduleClassName: req.ClassName,
		PracticalScheduleSubject:   req.Subject,
		PracticalScheduleNotes:     req.Notes,
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, s.conflictFor(ctx, req.TeacherID, req.Date, req.Period)
		}
		return nil, apperr.Store("create practical", err)
	}

	log.Info().
		Str("practical_id", row.PracticalScheduleID.String()).
		Str("teacher_id", req.TeacherID.String()).
		Str("date", req.Date).
		Int("period", req.Period).
		Msg("[Practical.Book] created")
	return &row, nil
}

// checkRequest: tanggal hari sekolah, periode dalam batas, grade konsisten dengan kode kelas.
func (s *Service) checkRequest(req d.BookPracticalRequest) (tm.Day, int, error) {
	var viols []apperr.Violation

	var day tm.Day
	t, err := time.Parse(pm.DateLayout, req.Date)
	if err != nil {
		viols = append(viols, apperr.Violation{Key: "date", Value: req.Date, Reason: apperr.ReasonFormat})
	} else if dd, ok := tm.DayOf(t); !ok {
		viols = append(viols, apperr.Violation{Key: "date", Value: req.Date, Reason: "not_a_school_day"})
	} else {
		day = dd
	}

	if req.Period < 1 || req.Period > s.MaxPeriod {
		viols = append(viols, apperr.Violation{Key: "period", Value: fmt.Sprint(req.Period), Reason: apperr.ReasonField})
	}

	grade := 0
	if req.Grade != nil {
		grade = *req.Grade
	}
	if code, err := tm.ParseClassCode(req.ClassName); err == nil {
		if grade == 0 {
			grade = code.Grade
		} else if grade != code.Grade {
			viols = append(viols, apperr.Violation{Key: "grade", Value: fmt.Sprint(grade), Reason: "does_not_match_class_name"})
		}
	}
	if grade == 0 {
		viols = append(viols, apperr.Violation{Key: "grade", Reason: apperr.ReasonField})
	}

	if len(viols) > 0 {
		return "", 0, apperr.NewValidation("invalid booking request", viols...)
	}
	return day, grade, nil
}

// checkGrids: periode harus tersedia di grid guru dan grid lab pada hari itu.
// Bentrok dengan booking lain ditangani unique index, bukan di sini.
func (s *Service) checkGrids(ctx context.Context, teacherID, labID uuid.UUID, day tm.Day, period int) error {
	var viols []apperr.Violation
	key := tm.SlotKey(day, period)

	var n int64
	if err := s.DB.WithContext(ctx).Model(&tm.TeacherTimetableSlotModel{}).
		Where("teacher_timetable_slot_teacher_id = ? AND teacher_timetable_slot_day = ? AND teacher_timetable_slot_period = ? AND teacher_timetable_slot_available = ?",
			teacherID, day, period, true).
		Count(&n).Error; err != nil {
		return apperr.Store("check teacher grid", err)
	}
	if n == 0 {
		viols = append(viols, apperr.Violation{Key: key, Value: "teacher", Reason: "slot_unavailable"})
	}

	if err := s.DB.WithContext(ctx).Model(&tm.LabTimetableSlotModel{}).
		Where("lab_timetable_slot_lab_id = ? AND lab_timetable_slot_day = ? AND lab_timetable_slot_period = ? AND lab_timetable_slot_available = ?",
			labID, day, period, true).
		Count(&n).Error; err != nil {
		return apperr.Store("check lab grid", err)
	}
	if n == 0 {
		viols = append(viols, apperr.Violation{Key: key, Value: "lab", Reason: "slot_unavailable"})
	}

	if len(viols) > 0 {
		return apperr.NewValidation("period is not open in the timetable", viols...)
	}
	return nil
}

// conflictFor membaca jadwal yang memegang kunci. Dipanggil setelah insert gagal,
// di luar transaksi apa pun.
func (s *Service) conflictFor(ctx context.Context, teacherID uuid.UUID, date string, period int) error {
	key := pm.UpcomingKey(teacherID, date, period)
	var existing pm.PracticalScheduleModel
	err := s.DB.WithContext(ctx).
		Where("practical_schedule_upcoming_key = ?", key).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// pemegang kunci sudah berubah status; caller boleh ulang
			return &apperr.ConflictError{Message: "teacher already booked for this date and period"}
		}
		return apperr.Store("load conflicting practical", err)
	}
	log.Warn().
		Str("existing_id", existing.PracticalScheduleID.String()).
		Str("key", key).
		Msg("[Practical.Book] double booking rejected")
	return &apperr.ConflictError{
		Message:  "teacher already booked for this date and period",
		Existing: d.FromModel(existing),
	}
}

/* =========================
   Status transition
========================= */

// UpdateStatus hanya UPCOMING → COMPLETED | CANCELLED. Keluar dari UPCOMING membebaskan kunci slot.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req d.UpdateStatusRequest) (*pm.PracticalScheduleModel, error) {
	if err := s.Validate.Struct(req); err != nil {
		return nil, apperr.FromValidator(err)
	}

	var row pm.PracticalScheduleModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("practical_schedule_id = ?", id).First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("practical", id.String())
			}
			return err
		}
		if row.PracticalScheduleStatus != pm.PracticalUpcoming {
			return apperr.NewValidation("only UPCOMING practicals can change status", apperr.Violation{
				Key:    "status",
				Value:  string(row.PracticalScheduleStatus),
				Reason: "invalid_transition",
			})
		}
		row.PracticalScheduleStatus = req.Status
		return tx.Save(&row).Error
	})
	if err != nil {
		return nil, apperr.Store("update practical status", err)
	}
	log.Info().Str("practical_id", id.String()).Str("status", string(req.Status)).Msg("[Practical.UpdateStatus] ok")
	return &row, nil
}

/* =========================
   Read
========================= */

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*pm.PracticalScheduleModel, error) {
	var row pm.PracticalScheduleModel
	err := s.DB.WithContext(ctx).Where("practical_schedule_id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("practical", id.String())
	}
	if err != nil {
		return nil, apperr.Store("get practical", err)
	}
	return &row, nil
}

func (s *Service) List(ctx context.Context, q d.ListPracticalQuery) ([]pm.PracticalScheduleModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&pm.PracticalScheduleModel{})
	if q.TeacherID != nil {
		tx = tx.Where("practical_schedule_teacher_id = ?", *q.TeacherID)
	}
	if q.LabID != nil {
		tx = tx.Where("practical_schedule_lab_id = ?", *q.LabID)
	}
	if q.Status != nil {
		tx = tx.Where("practical_schedule_status = ?", *q.Status)
	}
	if q.Date != "" {
		tx = tx.Where("practical_schedule_date = ?", q.Date)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("count practicals", err)
	}

	var rows []pm.PracticalScheduleModel
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit).Offset(q.Offset)
	}
	if err := tx.
		Order("practical_schedule_date ASC").
		Order("practical_schedule_period ASC").
		Order("practical_schedule_created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, 0, apperr.Store("list practicals", err)
	}
	return rows, total, nil
}
