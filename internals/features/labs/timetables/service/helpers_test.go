package service

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "labschedule_backend/internals/databases"
	dirModel "labschedule_backend/internals/features/labs/directory/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createLab(t *testing.T, db *gorm.DB, name string) dirModel.LabModel {
	t.Helper()
	lab := dirModel.LabModel{LabName: name, LabIsActive: true}
	if err := db.Create(&lab).Error; err != nil {
		t.Fatal(err)
	}
	return lab
}

func createTeacher(t *testing.T, db *gorm.DB, homeLab *uuid.UUID) dirModel.TeacherModel {
	t.Helper()
	tc := dirModel.TeacherModel{TeacherName: "Rina", TeacherSubject: "Science", TeacherHomeLabID: homeLab}
	if err := db.Create(&tc).Error; err != nil {
		t.Fatal(err)
	}
	return tc
}
