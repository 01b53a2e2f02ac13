// file: internals/features/labs/timetables/model/timetable_slot_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Teacher timetable
========================= */

type TeacherTimetableSlotModel struct {
	TeacherTimetableSlotID uuid.UUID `json:"teacher_timetable_slot_id" gorm:"column:teacher_timetable_slot_id;type:char(36);primaryKey"`

	// (teacher, day, period) unik
	TeacherTimetableSlotTeacherID uuid.UUID `json:"teacher_timetable_slot_teacher_id" gorm:"column:teacher_timetable_slot_teacher_id;type:char(36);not null;uniqueIndex:uq_teacher_slot_owner_day_period,priority:1"`
	TeacherTimetableSlotDay       Day       `json:"teacher_timetable_slot_day"        gorm:"column:teacher_timetable_slot_day;type:varchar(10);not null;uniqueIndex:uq_teacher_slot_owner_day_period,priority:2"`
	TeacherTimetableSlotPeriod    int       `json:"teacher_timetable_slot_period"     gorm:"column:teacher_timetable_slot_period;not null;uniqueIndex:uq_teacher_slot_owner_day_period,priority:3"`

	TeacherTimetableSlotSubject   string `json:"teacher_timetable_slot_subject"    gorm:"column:teacher_timetable_slot_subject;type:varchar(120);not null;default:''"`
	TeacherTimetableSlotGrade     int    `json:"teacher_timetable_slot_grade"      gorm:"column:teacher_timetable_slot_grade;not null;default:0"`
	TeacherTimetableSlotClassCode string `json:"teacher_timetable_slot_class_code" gorm:"column:teacher_timetable_slot_class_code;type:varchar(3);not null;default:''"`
	TeacherTimetableSlotAvailable bool   `json:"teacher_timetable_slot_available"  gorm:"column:teacher_timetable_slot_available;not null;default:false"`

	TeacherTimetableSlotCreatedAt time.Time `json:"teacher_timetable_slot_created_at" gorm:"column:teacher_timetable_slot_created_at;autoCreateTime"`
	TeacherTimetableSlotUpdatedAt time.Time `json:"teacher_timetable_slot_updated_at" gorm:"column:teacher_timetable_slot_updated_at;autoUpdateTime"`
}

func (TeacherTimetableSlotModel) TableName() string { return "teacher_timetable_slots" }

func (m *TeacherTimetableSlotModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeacherTimetableSlotID == uuid.Nil {
		m.TeacherTimetableSlotID = uuid.New()
	}
	return nil
}

/* =========================
   Lab timetable
========================= */

type LabTimetableSlotModel struct {
	LabTimetableSlotID uuid.UUID `json:"lab_timetable_slot_id" gorm:"column:lab_timetable_slot_id;type:char(36);primaryKey"`

	// (lab, day, period) unik
	LabTimetableSlotLabID  uuid.UUID `json:"lab_timetable_slot_lab_id" gorm:"column:lab_timetable_slot_lab_id;type:char(36);not null;uniqueIndex:uq_lab_slot_owner_day_period,priority:1"`
	LabTimetableSlotDay    Day       `json:"lab_timetable_slot_day"    gorm:"column:lab_timetable_slot_day;type:varchar(10);not null;uniqueIndex:uq_lab_slot_owner_day_period,priority:2"`
	LabTimetableSlotPeriod int       `json:"lab_timetable_slot_period" gorm:"column:lab_timetable_slot_period;not null;uniqueIndex:uq_lab_slot_owner_day_period,priority:3"`

	LabTimetableSlotClassCode string `json:"lab_timetable_slot_class_code" gorm:"column:lab_timetable_slot_class_code;type:varchar(3);not null;default:''"`
	LabTimetableSlotAvailable bool   `json:"lab_timetable_slot_available"  gorm:"column:lab_timetable_slot_available;not null;default:false"`

	LabTimetableSlotCreatedAt time.Time `json:"lab_timetable_slot_created_at" gorm:"column:lab_timetable_slot_created_at;autoCreateTime"`
	LabTimetableSlotUpdatedAt time.Time `json:"lab_timetable_slot_updated_at" gorm:"column:lab_timetable_slot_updated_at;autoUpdateTime"`
}

func (LabTimetableSlotModel) TableName() string { return "lab_timetable_slots" }

func (m *LabTimetableSlotModel) BeforeCreate(tx *gorm.DB) error {
	if m.LabTimetableSlotID == uuid.Nil {
		m.LabTimetableSlotID = uuid.New()
	}
	return nil
}
