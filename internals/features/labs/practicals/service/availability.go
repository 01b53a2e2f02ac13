package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	pm "labschedule_backend/internals/features/labs/practicals/model"
	tm "labschedule_backend/internals/features/labs/timetables/model"
	"labschedule_backend/internals/helpers/apperr"
)

// AvailabilityQuery input resolver. Day boleh kosong kalau Date diisi.
type AvailabilityQuery struct {
	TeacherID uuid.UUID
	LabID     uuid.UUID
	Day       tm.Day
	Date      string // opsional, YYYY-MM-DD
}

// normalize mengisi Day dari Date dan mengumpulkan semua field yang salah.
func (q AvailabilityQuery) normalize() (AvailabilityQuery, error) {
	var viols []apperr.Violation
	if q.TeacherID == uuid.Nil {
		viols = append(viols, apperr.Violation{Key: "teacher_id", Reason: apperr.ReasonField})
	}
	if q.LabID == uuid.Nil {
		viols = append(viols, apperr.Violation{Key: "lab_id", Reason: apperr.ReasonField})
	}

	q.Date = strings.TrimSpace(q.Date)
	if q.Date != "" {
		t, err := time.Parse(pm.DateLayout, q.Date)
		if err != nil {
			viols = append(viols, apperr.Violation{Key: "date", Value: q.Date, Reason: apperr.ReasonFormat})
		} else if d, ok := tm.DayOf(t); !ok {
			viols = append(viols, apperr.Violation{Key: "date", Value: q.Date, Reason: "not_a_school_day"})
		} else if q.Day == "" {
			q.Day = d
		} else if q.Day != d {
			viols = append(viols, apperr.Violation{Key: "day", Value: string(q.Day), Reason: "does_not_match_date"})
		}
	}
	if q.Day == "" && q.Date == "" {
		viols = append(viols, apperr.Violation{Key: "day", Reason: apperr.ReasonField})
	} else if q.Day != "" && !q.Day.Valid() {
		viols = append(viols, apperr.Violation{Key: "day", Value: string(q.Day), Reason: apperr.ReasonFormat})
	}

	if len(viols) > 0 {
		return q, apperr.NewValidation("invalid availability query", viols...)
	}
	return q, nil
}

// AvailableSlots = (periode guru tersedia ∩ periode lab tersedia) − periode yang
// sudah dipakai praktikum UPCOMING di lab itu. Hasil urut naik.
func (s *Service) AvailableSlots(ctx context.Context, q AvailabilityQuery) ([]int, error) {
	q, err := q.normalize()
	if err != nil {
		return nil, err
	}
	if _, err := s.findTeacher(ctx, s.DB, q.TeacherID); err != nil {
		return nil, err
	}
	if _, err := s.findLab(ctx, s.DB, q.LabID); err != nil {
		return nil, err
	}

	teacherPeriods, err := s.teacherPeriods(ctx, q.TeacherID, q.Day)
	if err != nil {
		return nil, err
	}
	labPeriods, err := s.labPeriods(ctx, q.LabID, q.Day)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookedPeriods(ctx, q.LabID, q.Day, q.Date)
	if err != nil {
		return nil, err
	}

	labSet := make(map[int]struct{}, len(labPeriods))
	for _, p := range labPeriods {
		labSet[p] = struct{}{}
	}
	out := make([]int, 0, len(teacherPeriods))
	seen := make(map[int]struct{}, len(teacherPeriods))
	for _, p := range teacherPeriods {
		if _, ok := labSet[p]; !ok {
			continue
		}
		if _, ok := booked[p]; ok {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Ints(out)
	return out, nil
}

func (s *Service) teacherPeriods(ctx context.Context, teacherID uuid.UUID, day tm.Day) ([]int, error) {
	var periods []int
	err := s.DB.WithContext(ctx).
		Model(&tm.TeacherTimetableSlotModel{}).
		Where("teacher_timetable_slot_teacher_id = ? AND teacher_timetable_slot_day = ? AND teacher_timetable_slot_available = ?",
			teacherID, day, true).
		Pluck("teacher_timetable_slot_period", &periods).Error
	if err != nil {
		return nil, apperr.Store("teacher periods", err)
	}
	return periods, nil
}

func (s *Service) labPeriods(ctx context.Context, labID uuid.UUID, day tm.Day) ([]int, error) {
	var periods []int
	err := s.DB.WithContext(ctx).
		Model(&tm.LabTimetableSlotModel{}).
		Where("lab_timetable_slot_lab_id = ? AND lab_timetable_slot_day = ? AND lab_timetable_slot_available = ?",
			labID, day, true).
		Pluck("lab_timetable_slot_period", &periods).Error
	if err != nil {
		return nil, apperr.Store("lab periods", err)
	}
	return periods, nil
}

// bookedPeriods: praktikum UPCOMING di lab (guru mana pun). Dengan date hanya tanggal itu,
// tanpa date semua tanggal yang jatuh di hari yang sama.
func (s *Service) bookedPeriods(ctx context.Context, labID uuid.UUID, day tm.Day, date string) (map[int]struct{}, error) {
	type row struct {
		Date   string `gorm:"column:practical_schedule_date"`
		Period int    `gorm:"column:practical_schedule_period"`
	}
	var rows []row

	tx := s.DB.WithContext(ctx).
		Model(&pm.PracticalScheduleModel{}).
		Select("practical_schedule_date, practical_schedule_period").
		Where("practical_schedule_lab_id = ? AND practical_schedule_status = ?", labID, pm.PracticalUpcoming)
	if date != "" {
		tx = tx.Where("practical_schedule_date = ?", date)
	}
	if err := tx.Scan(&rows).Error; err != nil {
		return nil, apperr.Store("booked periods", err)
	}

	out := make(map[int]struct{}, len(rows))
	for _, r := range rows {
		if date == "" {
			t, err := time.Parse(pm.DateLayout, r.Date)
			if err != nil {
				continue
			}
			if d, ok := tm.DayOf(t); !ok || d != day {
				continue
			}
		}
		out[r.Period] = struct{}{}
	}
	return out, nil
}
