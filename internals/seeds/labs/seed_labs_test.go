package labs

import (
	"testing"

	database "labschedule_backend/internals/databases"
	"labschedule_backend/internals/features/labs/directory/model"
)

func TestSeedLabsIsIdempotent(t *testing.T) {
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	seed := []LabSeed{
		{LabName: "Science Lab A", LabLocation: "Gedung A", Teachers: []TeacherSeed{
			{TeacherName: "Rina", TeacherEmail: "rina@school.test", TeacherSubject: "Science"},
		}},
		{LabName: "Chemistry Lab"},
	}
	for i := 0; i < 2; i++ {
		if err := SeedLabs(db, seed); err != nil {
			t.Fatal(err)
		}
	}

	var labs, teachers int64
	db.Model(&model.LabModel{}).Count(&labs)
	db.Model(&model.TeacherModel{}).Count(&teachers)
	if labs != 2 || teachers != 1 {
		t.Fatalf("labs=%d teachers=%d", labs, teachers)
	}

	var tc model.TeacherModel
	if err := db.First(&tc).Error; err != nil {
		t.Fatal(err)
	}
	if tc.TeacherHomeLabID == nil {
		t.Fatal("home lab not linked")
	}
}

func TestSeedLabsFromJSON(t *testing.T) {
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	if err := SeedLabsFromJSON(db, "data_labs.json"); err != nil {
		t.Fatal(err)
	}
	var n int64
	db.Model(&model.LabModel{}).Count(&n)
	if n != 4 {
		t.Fatalf("labs %d", n)
	}
}
