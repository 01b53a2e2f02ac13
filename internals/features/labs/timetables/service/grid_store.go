// file: internals/features/labs/timetables/service/grid_store.go
package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dirModel "labschedule_backend/internals/features/labs/directory/model"
	m "labschedule_backend/internals/features/labs/timetables/model"
	"labschedule_backend/internals/helpers/apperr"
)

const insertBatchSize = 100

// GridStore persistensi dua grid mingguan (guru & lab).
type GridStore struct{ DB *gorm.DB }

func NewGridStore(db *gorm.DB) *GridStore { return &GridStore{DB: db} }

type ReplaceInput struct {
	OwnerType m.OwnerType
	OwnerID   uuid.UUID
	Subject   string // hanya untuk grid guru
	Slots     []SlotDraft
	Grid      map[string]string // snapshot mentah untuk revisi
}

// Replace adalah primitive bulk-replace: lock baris pemilik, hapus semua slot lama,
// insert slot baru, catat revisi. Semua dalam satu transaksi; gagal di tengah = rollback.
func (s *GridStore) Replace(ctx context.Context, in ReplaceInput) (int, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, in.OwnerType, in.OwnerID); err != nil {
			return err
		}

		switch in.OwnerType {
		case m.OwnerTeacher:
			if err := tx.Where("teacher_timetable_slot_teacher_id = ?", in.OwnerID).
				Delete(&m.TeacherTimetableSlotModel{}).Error; err != nil {
				return err
			}
			rows := teacherRows(in.OwnerID, in.Subject, in.Slots)
			if len(rows) > 0 {
				if err := tx.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
					return err
				}
			}
		case m.OwnerLab:
			if err := tx.Where("lab_timetable_slot_lab_id = ?", in.OwnerID).
				Delete(&m.LabTimetableSlotModel{}).Error; err != nil {
				return err
			}
			rows := labRows(in.OwnerID, in.Slots)
			if len(rows) > 0 {
				if err := tx.CreateInBatches(&rows, insertBatchSize).Error; err != nil {
					return err
				}
			}
		default:
			return apperr.Field("owner_type", "unknown timetable owner")
		}

		rev := m.TimetableRevisionModel{
			TimetableRevisionOwnerType: in.OwnerType,
			TimetableRevisionOwnerID:   in.OwnerID,
			TimetableRevisionGrid:      snapshotJSON(in.Grid),
			TimetableRevisionSlotCount: len(in.Slots),
		}
		return tx.Create(&rev).Error
	})
	if err != nil {
		return 0, apperr.Store("replace timetable", err)
	}
	return len(in.Slots), nil
}

// lockOwner SELECT ... FOR UPDATE pada baris guru/lab; bulk save pemilik yang sama
// jadi berurutan. SQLite mengabaikan klausa locking (single writer).
func lockOwner(tx *gorm.DB, ownerType m.OwnerType, ownerID uuid.UUID) error {
	locking := clause.Locking{Strength: "UPDATE"}
	var err error
	switch ownerType {
	case m.OwnerTeacher:
		var t dirModel.TeacherModel
		err = tx.Clauses(locking).Where("teacher_id = ?", ownerID).First(&t).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("teacher", ownerID.String())
		}
	case m.OwnerLab:
		var l dirModel.LabModel
		err = tx.Clauses(locking).Where("lab_id = ?", ownerID).First(&l).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("lab", ownerID.String())
		}
	}
	return err
}

func teacherRows(teacherID uuid.UUID, subject string, slots []SlotDraft) []m.TeacherTimetableSlotModel {
	rows := make([]m.TeacherTimetableSlotModel, 0, len(slots))
	for _, d := range slots {
		rows = append(rows, m.TeacherTimetableSlotModel{
			TeacherTimetableSlotTeacherID: teacherID,
			TeacherTimetableSlotDay:       d.Day,
			TeacherTimetableSlotPeriod:    d.Period,
			TeacherTimetableSlotSubject:   subject,
			TeacherTimetableSlotGrade:     d.Grade,
			TeacherTimetableSlotClassCode: d.ClassCode,
			TeacherTimetableSlotAvailable: d.Available,
		})
	}
	return rows
}

func labRows(labID uuid.UUID, slots []SlotDraft) []m.LabTimetableSlotModel {
	rows := make([]m.LabTimetableSlotModel, 0, len(slots))
	for _, d := range slots {
		rows = append(rows, m.LabTimetableSlotModel{
			LabTimetableSlotLabID:     labID,
			LabTimetableSlotDay:       d.Day,
			LabTimetableSlotPeriod:    d.Period,
			LabTimetableSlotClassCode: d.ClassCode,
			LabTimetableSlotAvailable: d.Available,
		})
	}
	return rows
}

func snapshotJSON(grid map[string]string) datatypes.JSONMap {
	out := make(datatypes.JSONMap, len(grid))
	for k, v := range grid {
		out[k] = v
	}
	return out
}

/* =========================
   Read
========================= */

func (s *GridStore) TeacherSlots(ctx context.Context, teacherID uuid.UUID) ([]m.TeacherTimetableSlotModel, error) {
	var rows []m.TeacherTimetableSlotModel
	err := s.DB.WithContext(ctx).
		Where("teacher_timetable_slot_teacher_id = ?", teacherID).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("list teacher slots", err)
	}
	sortTeacherSlots(rows)
	return rows, nil
}

func (s *GridStore) LabSlots(ctx context.Context, labID uuid.UUID) ([]m.LabTimetableSlotModel, error) {
	var rows []m.LabTimetableSlotModel
	err := s.DB.WithContext(ctx).
		Where("lab_timetable_slot_lab_id = ?", labID).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("list lab slots", err)
	}
	sortLabSlots(rows)
	return rows, nil
}

func (s *GridStore) Revisions(ctx context.Context, ownerType m.OwnerType, ownerID uuid.UUID, limit int) ([]m.TimetableRevisionModel, error) {
	if limit <= 0 {
		limit = 20
	}
	var rows []m.TimetableRevisionModel
	err := s.DB.WithContext(ctx).
		Where("timetable_revision_owner_type = ? AND timetable_revision_owner_id = ?", ownerType, ownerID).
		Order("timetable_revision_created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Store("list timetable revisions", err)
	}
	return rows, nil
}

/* =========================
   Single slot (edit / delete)
========================= */

// PutTeacherSlot upsert satu sel di bawah lock pemilik yang sama dengan bulk save.
func (s *GridStore) PutTeacherSlot(ctx context.Context, teacherID uuid.UUID, subject string, d SlotDraft) (*m.TeacherTimetableSlotModel, error) {
	var out m.TeacherTimetableSlotModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, m.OwnerTeacher, teacherID); err != nil {
			return err
		}
		err := tx.Where(
			"teacher_timetable_slot_teacher_id = ? AND teacher_timetable_slot_day = ? AND teacher_timetable_slot_period = ?",
			teacherID, d.Day, d.Period,
		).First(&out).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = teacherRows(teacherID, subject, []SlotDraft{d})[0]
			return tx.Create(&out).Error
		case err != nil:
			return err
		}
		out.TeacherTimetableSlotSubject = subject
		out.TeacherTimetableSlotGrade = d.Grade
		out.TeacherTimetableSlotClassCode = d.ClassCode
		out.TeacherTimetableSlotAvailable = d.Available
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, apperr.Store("put teacher slot", err)
	}
	return &out, nil
}

func (s *GridStore) PutLabSlot(ctx context.Context, labID uuid.UUID, d SlotDraft) (*m.LabTimetableSlotModel, error) {
	var out m.LabTimetableSlotModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockOwner(tx, m.OwnerLab, labID); err != nil {
			return err
		}
		err := tx.Where(
			"lab_timetable_slot_lab_id = ? AND lab_timetable_slot_day = ? AND lab_timetable_slot_period = ?",
			labID, d.Day, d.Period,
		).First(&out).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			out = labRows(labID, []SlotDraft{d})[0]
			return tx.Create(&out).Error
		case err != nil:
			return err
		}
		out.LabTimetableSlotClassCode = d.ClassCode
		out.LabTimetableSlotAvailable = d.Available
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, apperr.Store("put lab slot", err)
	}
	return &out, nil
}

// DeleteTeacherSlot mengembalikan NotFound kalau sel memang tidak ada.
func (s *GridStore) DeleteTeacherSlot(ctx context.Context, teacherID uuid.UUID, day m.Day, period int) error {
	res := s.DB.WithContext(ctx).
		Where("teacher_timetable_slot_teacher_id = ? AND teacher_timetable_slot_day = ? AND teacher_timetable_slot_period = ?",
			teacherID, day, period).
		Delete(&m.TeacherTimetableSlotModel{})
	if res.Error != nil {
		return apperr.Store("delete teacher slot", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("teacher timetable slot", m.SlotKey(day, period))
	}
	return nil
}

func (s *GridStore) DeleteLabSlot(ctx context.Context, labID uuid.UUID, day m.Day, period int) error {
	res := s.DB.WithContext(ctx).
		Where("lab_timetable_slot_lab_id = ? AND lab_timetable_slot_day = ? AND lab_timetable_slot_period = ?",
			labID, day, period).
		Delete(&m.LabTimetableSlotModel{})
	if res.Error != nil {
		return apperr.Store("delete lab slot", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("lab timetable slot", m.SlotKey(day, period))
	}
	return nil
}

func sortTeacherSlots(rows []m.TeacherTimetableSlotModel) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.TeacherTimetableSlotDay != b.TeacherTimetableSlotDay {
			return a.TeacherTimetableSlotDay.Index() < b.TeacherTimetableSlotDay.Index()
		}
		return a.TeacherTimetableSlotPeriod < b.TeacherTimetableSlotPeriod
	})
}

func sortLabSlots(rows []m.LabTimetableSlotModel) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.LabTimetableSlotDay != b.LabTimetableSlotDay {
			return a.LabTimetableSlotDay.Index() < b.LabTimetableSlotDay.Index()
		}
		return a.LabTimetableSlotPeriod < b.LabTimetableSlotPeriod
	})
}
