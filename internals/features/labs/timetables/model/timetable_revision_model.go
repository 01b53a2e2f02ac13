// file: internals/features/labs/timetables/model/timetable_revision_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OwnerType string

const (
	OwnerTeacher OwnerType = "teacher"
	OwnerLab     OwnerType = "lab"
)

// TimetableRevisionModel jejak setiap bulk save (grid mentah yang dikirim).
type TimetableRevisionModel struct {
	TimetableRevisionID        uuid.UUID         `json:"timetable_revision_id"         gorm:"column:timetable_revision_id;type:char(36);primaryKey"`
	TimetableRevisionOwnerType OwnerType         `json:"timetable_revision_owner_type" gorm:"column:timetable_revision_owner_type;type:varchar(10);not null;index:idx_timetable_revision_owner,priority:1"`
	TimetableRevisionOwnerID   uuid.UUID         `json:"timetable_revision_owner_id"   gorm:"column:timetable_revision_owner_id;type:char(36);not null;index:idx_timetable_revision_owner,priority:2"`
	TimetableRevisionGrid      datatypes.JSONMap `json:"timetable_revision_grid"       gorm:"column:timetable_revision_grid"`
	TimetableRevisionSlotCount int               `json:"timetable_revision_slot_count" gorm:"column:timetable_revision_slot_count;not null;default:0"`
	TimetableRevisionCreatedAt time.Time         `json:"timetable_revision_created_at" gorm:"column:timetable_revision_created_at;autoCreateTime"`
}

func (TimetableRevisionModel) TableName() string { return "timetable_revisions" }

func (m *TimetableRevisionModel) BeforeCreate(tx *gorm.DB) error {
	if m.TimetableRevisionID == uuid.Nil {
		m.TimetableRevisionID = uuid.New()
	}
	return nil
}
