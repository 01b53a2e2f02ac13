package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	dirModel "labschedule_backend/internals/features/labs/directory/model"
	m "labschedule_backend/internals/features/labs/timetables/model"
	"labschedule_backend/internals/helpers/apperr"
)

type Service struct {
	DB        *gorm.DB
	Store     *GridStore
	Validator GridValidator
}

func New(db *gorm.DB, maxPeriod int) *Service {
	return &Service{
		DB:        db,
		Store:     NewGridStore(db),
		Validator: NewGridValidator(maxPeriod),
	}
}

type SaveResult struct {
	OwnerType m.OwnerType          `json:"owner_type"`
	OwnerID   uuid.UUID            `json:"owner_id"`
	SlotCount int                  `json:"slot_count"`
	Category  dirModel.LabCategory `json:"category"`
}

/* =========================
   Owner lookups
========================= */

func (s *Service) findTeacher(ctx context.Context, id uuid.UUID) (*dirModel.TeacherModel, error) {
	var t dirModel.TeacherModel
	err := s.DB.WithContext(ctx).Where("teacher_id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("teacher", id.String())
	}
	if err != nil {
		return nil, apperr.Store("find teacher", err)
	}
	return &t, nil
}

func (s *Service) findLab(ctx context.Context, id uuid.UUID) (*dirModel.LabModel, error) {
	var l dirModel.LabModel
	err := s.DB.WithContext(ctx).Where("lab_id = ?", id).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("lab", id.String())
	}
	if err != nil {
		return nil, apperr.Store("find lab", err)
	}
	return &l, nil
}

// teacherCategory: kategori home lab guru, default 1..13 kalau tidak punya home lab.
func (s *Service) teacherCategory(ctx context.Context, t *dirModel.TeacherModel) (dirModel.LabCategory, error) {
	if t.TeacherHomeLabID == nil || *t.TeacherHomeLabID == uuid.Nil {
		return dirModel.DefaultCategory(), nil
	}
	lab, err := s.findLab(ctx, *t.TeacherHomeLabID)
	if err != nil {
		return dirModel.LabCategory{}, err
	}
	return dirModel.CategoryOf(*lab), nil
}

/* =========================
   Bulk save
========================= */

func (s *Service) SaveTeacherGrid(ctx context.Context, teacherID uuid.UUID, grid map[string]string) (*SaveResult, error) {
	t, err := s.findTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	cat, err := s.teacherCategory(ctx, t)
	if err != nil {
		return nil, err
	}
	slots, err := s.Validator.Validate(grid, cat)
	if err != nil {
		return nil, err
	}

	n, err := s.Store.Replace(ctx, ReplaceInput{
		OwnerType: m.OwnerTeacher,
		OwnerID:   teacherID,
		Subject:   t.TeacherSubject,
		Slots:     slots,
		Grid:      grid,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("teacher_id", teacherID.String()).Int("slots", n).Msg("[Timetable.SaveTeacherGrid] replaced")
	return &SaveResult{OwnerType: m.OwnerTeacher, OwnerID: teacherID, SlotCount: n, Category: cat}, nil
}

func (s *Service) SaveLabGrid(ctx context.Context, labID uuid.UUID, grid map[string]string) (*SaveResult, error) {
	lab, err := s.findLab(ctx, labID)
	if err != nil {
		return nil, err
	}
	cat := dirModel.CategoryOf(*lab)
	slots, err := s.Validator.Validate(grid, cat)
	if err != nil {
		return nil, err
	}

	n, err := s.Store.Replace(ctx, ReplaceInput{
		OwnerType: m.OwnerLab,
		OwnerID:   labID,
		Slots:     slots,
		Grid:      grid,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("lab_id", labID.String()).Int("slots", n).Msg("[Timetable.SaveLabGrid] replaced")
	return &SaveResult{OwnerType: m.OwnerLab, OwnerID: labID, SlotCount: n, Category: cat}, nil
}

/* =========================
   Read
========================= */

func (s *Service) TeacherSlots(ctx context.Context, teacherID uuid.UUID) ([]m.TeacherTimetableSlotModel, error) {
	if _, err := s.findTeacher(ctx, teacherID); err != nil {
		return nil, err
	}
	return s.Store.TeacherSlots(ctx, teacherID)
}

func (s *Service) LabSlots(ctx context.Context, labID uuid.UUID) ([]m.LabTimetableSlotModel, error) {
	if _, err := s.findLab(ctx, labID); err != nil {
		return nil, err
	}
	return s.Store.LabSlots(ctx, labID)
}

func (s *Service) Revisions(ctx context.Context, ownerType m.OwnerType, ownerID uuid.UUID, limit int) ([]m.TimetableRevisionModel, error) {
	var err error
	switch ownerType {
	case m.OwnerTeacher:
		_, err = s.findTeacher(ctx, ownerID)
	case m.OwnerLab:
		_, err = s.findLab(ctx, ownerID)
	}
	if err != nil {
		return nil, err
	}
	return s.Store.Revisions(ctx, ownerType, ownerID, limit)
}

/* =========================
   Single slot
========================= */

// SlotEdit isi PATCH satu sel. Available nil = ikut kode kelas (terisi → tersedia).
type SlotEdit struct {
	ClassCode string
	Available *bool
}

func (e SlotEdit) apply(d SlotDraft) SlotDraft {
	if e.Available != nil {
		d.Available = *e.Available
	}
	return d
}

func (s *Service) SetTeacherSlot(ctx context.Context, teacherID uuid.UUID, day m.Day, period int, edit SlotEdit) (*m.TeacherTimetableSlotModel, error) {
	t, err := s.findTeacher(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	cat, err := s.teacherCategory(ctx, t)
	if err != nil {
		return nil, err
	}
	d, err := s.Validator.ValidateCell(day, period, edit.ClassCode, cat)
	if err != nil {
		return nil, err
	}
	return s.Store.PutTeacherSlot(ctx, teacherID, t.TeacherSubject, edit.apply(d))
}

func (s *Service) SetLabSlot(ctx context.Context, labID uuid.UUID, day m.Day, period int, edit SlotEdit) (*m.LabTimetableSlotModel, error) {
	lab, err := s.findLab(ctx, labID)
	if err != nil {
		return nil, err
	}
	d, err := s.Validator.ValidateCell(day, period, edit.ClassCode, dirModel.CategoryOf(*lab))
	if err != nil {
		return nil, err
	}
	return s.Store.PutLabSlot(ctx, labID, edit.apply(d))
}

func (s *Service) DeleteTeacherSlot(ctx context.Context, teacherID uuid.UUID, day m.Day, period int) error {
	if _, err := s.findTeacher(ctx, teacherID); err != nil {
		return err
	}
	return s.Store.DeleteTeacherSlot(ctx, teacherID, day, period)
}

func (s *Service) DeleteLabSlot(ctx context.Context, labID uuid.UUID, day m.Day, period int) error {
	if _, err := s.findLab(ctx, labID); err != nil {
		return err
	}
	return s.Store.DeleteLabSlot(ctx, labID, day, period)
}
