package service

import (
	"context"

	"github.com/google/uuid"

	d "labschedule_backend/internals/features/labs/practicals/dto"
	pm "labschedule_backend/internals/features/labs/practicals/model"
	"labschedule_backend/internals/helpers/apperr"
)

type conflictGroup struct {
	LabID  uuid.UUID `gorm:"column:conflict_lab_id"`
	Date   string    `gorm:"column:conflict_date"`
	Period int       `gorm:"column:conflict_period"`
	Count  int64     `gorm:"column:conflict_count"`
}

// ListScheduleConflicts: audit saja. Lebih dari satu praktikum non-CANCELLED di
// (lab, tanggal, periode) yang sama dilaporkan, tidak ada yang diubah.
func (s *Service) ListScheduleConflicts(ctx context.Context) ([]d.ConflictResponse, error) {
	var groups []conflictGroup
	err := s.DB.WithContext(ctx).
		Model(&pm.PracticalScheduleModel{}).
		Select(`practical_schedule_lab_id AS conflict_lab_id,
			practical_schedule_date AS conflict_date,
			practical_schedule_period AS conflict_period,
			COUNT(*) AS conflict_count`).
		Where("practical_schedule_status <> ?", pm.PracticalCancelled).
		Group("practical_schedule_lab_id, practical_schedule_date, practical_schedule_period").
		Having("COUNT(*) > 1").
		Order("conflict_date ASC").
		Order("conflict_period ASC").
		Scan(&groups).Error
	if err != nil {
		return nil, apperr.Store("list conflicts", err)
	}

	out := make([]d.ConflictResponse, 0, len(groups))
	for _, g := range groups {
		var ids []uuid.UUID
		if err := s.DB.WithContext(ctx).
			Model(&pm.PracticalScheduleModel{}).
			Where("practical_schedule_lab_id = ? AND practical_schedule_date = ? AND practical_schedule_period = ? AND practical_schedule_status <> ?",
				g.LabID, g.Date, g.Period, pm.PracticalCancelled).
			Order("practical_schedule_created_at ASC").
			Pluck("practical_schedule_id", &ids).Error; err != nil {
			return nil, apperr.Store("list conflict ids", err)
		}
		out = append(out, d.ConflictResponse{
			LabID:       g.LabID,
			Date:        g.Date,
			Period:      g.Period,
			Count:       g.Count,
			ScheduleIDs: ids,
		})
	}
	return out, nil
}
