// file: internals/features/labs/directory/model/teacher_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeacherModel struct {
	TeacherID      uuid.UUID `json:"teacher_id"      gorm:"column:teacher_id;type:char(36);primaryKey"`
	TeacherName    string    `json:"teacher_name"    gorm:"column:teacher_name;type:varchar(160);not null"`
	TeacherEmail   *string   `json:"teacher_email,omitempty" gorm:"column:teacher_email;type:varchar(255);uniqueIndex:uq_teachers_email"`
	TeacherSubject string    `json:"teacher_subject" gorm:"column:teacher_subject;type:varchar(120);not null;default:''"`

	// Lab utama; grid guru divalidasi terhadap kategori lab ini bila diisi
	TeacherHomeLabID *uuid.UUID `json:"teacher_home_lab_id,omitempty" gorm:"column:teacher_home_lab_id;type:char(36);index"`

	TeacherCreatedAt time.Time `json:"teacher_created_at" gorm:"column:teacher_created_at;autoCreateTime"`
	TeacherUpdatedAt time.Time `json:"teacher_updated_at" gorm:"column:teacher_updated_at;autoUpdateTime"`
}

func (TeacherModel) TableName() string { return "teachers" }

func (m *TeacherModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherID == uuid.Nil {
		m.TeacherID = uuid.New()
	}
	return nil
}
