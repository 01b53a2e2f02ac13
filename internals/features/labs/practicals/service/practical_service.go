package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dirModel "labschedule_backend/internals/features/labs/directory/model"
	"labschedule_backend/internals/helpers/apperr"
)

type Service struct {
	DB        *gorm.DB
	Validate  *validator.Validate
	MaxPeriod int
}

func New(db *gorm.DB, v *validator.Validate, maxPeriod int) *Service {
	if v == nil {
		v = validator.New()
	}
	return &Service{DB: db, Validate: v, MaxPeriod: maxPeriod}
}

func (s *Service) findTeacher(ctx context.Context, db *gorm.DB, id uuid.UUID) (*dirModel.TeacherModel, error) {
	var t dirModel.TeacherModel
	err := db.WithContext(ctx).Where("teacher_id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("teacher", id.String())
	}
	if err != nil {
		return nil, apperr.Store("find teacher", err)
	}
	return &t, nil
}

func (s *Service) findLab(ctx context.Context, db *gorm.DB, id uuid.UUID) (*dirModel.LabModel, error) {
	var l dirModel.LabModel
	err := db.WithContext(ctx).Where("lab_id = ?", id).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("lab", id.String())
	}
	if err != nil {
		return nil, apperr.Store("find lab", err)
	}
	return &l, nil
}
