package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	database "labschedule_backend/internals/databases"
	dirModel "labschedule_backend/internals/features/labs/directory/model"
	d "labschedule_backend/internals/features/labs/practicals/dto"
	ttService "labschedule_backend/internals/features/labs/timetables/service"
)

type fixture struct {
	db      *gorm.DB
	svc     *Service
	tt      *ttService.Service
	lab     dirModel.LabModel
	teacher dirModel.TeacherModel
}

func newFixture(t *testing.T) *fixture {
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

	f := &fixture{db: db, svc: New(db, nil, 8), tt: ttService.New(db, 8)}
	f.lab = dirModel.LabModel{LabName: "Science Lab A", LabIsActive: true}
	if err := db.Create(&f.lab).Error; err != nil {
		t.Fatal(err)
	}
	f.teacher = f.addTeacher(t, "Rina")
	return f
}

func (f *fixture) addTeacher(t *testing.T, name string) dirModel.TeacherModel {
	t.Helper()
	tc := dirModel.TeacherModel{TeacherName: name, TeacherSubject: "Science", TeacherHomeLabID: &f.lab.LabID}
	if err := f.db.Create(&tc).Error; err != nil {
		t.Fatal(err)
	}
	return tc
}

func (f *fixture) teacherGrid(t *testing.T, teacherID uuid.UUID, grid map[string]string) {
	t.Helper()
	if _, err := f.tt.SaveTeacherGrid(context.Background(), teacherID, grid); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) labGrid(t *testing.T, grid map[string]string) {
	t.Helper()
	if _, err := f.tt.SaveLabGrid(context.Background(), f.lab.LabID, grid); err != nil {
		t.Fatal(err)
	}
}

func (f *fixture) request(teacherID uuid.UUID, date string, period int) d.BookPracticalRequest {
	return d.BookPracticalRequest{
		TeacherID: teacherID,
		LabID:     f.lab.LabID,
		Date:      date,
		Period:    period,
		ClassName: "9B",
		Subject:   "Science",
	}
}
