// file: internals/features/labs/directory/model/lab_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabModel struct {
	LabID   uuid.UUID `json:"lab_id"   gorm:"column:lab_id;type:char(36);primaryKey"`
	LabName string    `json:"lab_name" gorm:"column:lab_name;type:varchar(160);not null"`

	// Rentang kelas tersimpan; hanya berlaku untuk kategori Custom (lihat CategoryOf)
	LabGradeFrom *int `json:"lab_grade_from,omitempty" gorm:"column:lab_grade_from"`
	LabGradeTo   *int `json:"lab_grade_to,omitempty"   gorm:"column:lab_grade_to"`

	LabLocation *string `json:"lab_location,omitempty" gorm:"column:lab_location;type:varchar(160)"`
	LabIsActive bool    `json:"lab_is_active"          gorm:"column:lab_is_active;not null;default:true"`

	LabCreatedAt time.Time `json:"lab_created_at" gorm:"column:lab_created_at;autoCreateTime"`
	LabUpdatedAt time.Time `json:"lab_updated_at" gorm:"column:lab_updated_at;autoUpdateTime"`
}

func (LabModel) TableName() string { return "labs" }

func (m *LabModel) BeforeCreate(tx *gorm.DB) error {
	if m.LabID == uuid.Nil {
		m.LabID = uuid.New()
	}
	return nil
}

func (m LabModel) Category() LabCategory { return CategoryOf(m) }
