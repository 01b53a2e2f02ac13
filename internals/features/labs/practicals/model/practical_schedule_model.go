// file: internals/features/labs/practicals/model/practical_schedule_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Enum
========================= */

type PracticalStatus string

const (
	PracticalUpcoming  PracticalStatus = "UPCOMING"
	PracticalCompleted PracticalStatus = "COMPLETED"
	PracticalCancelled PracticalStatus = "CANCELLED"
)

func (s PracticalStatus) Valid() bool {
	switch s {
	case PracticalUpcoming, PracticalCompleted, PracticalCancelled:
		return true
	}
	return false
}

const DateLayout = "2006-01-02"

/* =========================
   Model: PracticalScheduleModel
========================= */

type PracticalScheduleModel struct {
	PracticalScheduleID uuid.UUID `json:"practical_schedule_id" gorm:"column:practical_schedule_id;type:char(36);primaryKey"`

	PracticalScheduleTeacherID uuid.UUID `json:"practical_schedule_teacher_id" gorm:"column:practical_schedule_teacher_id;type:char(36);not null;index"`
	PracticalScheduleLabID     uuid.UUID `json:"practical_schedule_lab_id"     gorm:"column:practical_schedule_lab_id;type:char(36);not null;index:idx_practical_lab_date,priority:1"`

	// YYYY-MM-DD
	PracticalScheduleDate   string `json:"practical_schedule_date"   gorm:"column:practical_schedule_date;type:varchar(10);not null;index:idx_practical_lab_date,priority:2"`
	PracticalSchedulePeriod int    `json:"practical_schedule_period" gorm:"column:practical_schedule_period;not null"`

	PracticalScheduleStatus PracticalStatus `json:"practical_schedule_status" gorm:"column:practical_schedule_status;type:varchar(12);not null;default:'UPCOMING'"`

	PracticalScheduleGrade     int     `json:"practical_schedule_grade"      gorm:"column:practical_schedule_grade;not null"`
	PracticalScheduleClassName string  `json:"practical_schedule_class_name" gorm:"column:practical_schedule_class_name;type:varchar(20);not null"`
	PracticalScheduleSubject   string  `json:"practical_schedule_subject"    gorm:"column:practical_schedule_subject;type:varchar(120);not null"`
	PracticalScheduleNotes     *string `json:"practical_schedule_notes,omitempty" gorm:"column:practical_schedule_notes;type:text"`

	// "teacher|date|period" selama UPCOMING, NULL setelahnya.
	// Unique index di kolom ini = at most one UPCOMING per (teacher, date, period).
	PracticalScheduleUpcomingKey *string `json:"-" gorm:"column:practical_schedule_upcoming_key;type:varchar(80);uniqueIndex:uq_practical_upcoming_teacher_slot"`

	PracticalScheduleCreatedAt time.Time `json:"practical_schedule_created_at" gorm:"column:practical_schedule_created_at;autoCreateTime"`
	PracticalScheduleUpdatedAt time.Time `json:"practical_schedule_updated_at" gorm:"column:practical_schedule_updated_at;autoUpdateTime"`
}

func (PracticalScheduleModel) TableName() string { return "practical_schedules" }

func UpcomingKey(teacherID uuid.UUID, date string, period int) string {
	return fmt.Sprintf("%s|%s|%d", teacherID, date, period)
}

// SyncUpcomingKey menyelaraskan kolom kunci dengan status.
func (m *PracticalScheduleModel) SyncUpcomingKey() {
	if m.PracticalScheduleStatus == PracticalUpcoming {
		k := UpcomingKey(m.PracticalScheduleTeacherID, m.PracticalScheduleDate, m.PracticalSchedulePeriod)
		m.PracticalScheduleUpcomingKey = &k
		return
	}
	m.PracticalScheduleUpcomingKey = nil
}

func (m *PracticalScheduleModel) BeforeCreate(tx *gorm.DB) error {
	if m.PracticalScheduleID == uuid.Nil {
		m.PracticalScheduleID = uuid.New()
	}
	if m.PracticalScheduleStatus == "" {
		m.PracticalScheduleStatus = PracticalUpcoming
	}
	m.SyncUpcomingKey()
	return nil
}

func (m *PracticalScheduleModel) BeforeSave(tx *gorm.DB) error {
	m.SyncUpcomingKey()
	return nil
}
