package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	d "labschedule_backend/internals/features/labs/practicals/dto"
	pm "labschedule_backend/internals/features/labs/practicals/model"
	tm "labschedule_backend/internals/features/labs/timetables/model"
	"labschedule_backend/internals/helpers/apperr"
)

func contains(ps []int, p int) bool {
	for _, v := range ps {
		if v == p {
			return true
		}
	}
	return false
}

func TestAvailableSlotsScienceLabScenario(t *testing.T) {
	f := newFixture(t)
	f.teacherGrid(t, f.teacher.TeacherID, map[string]string{"MONDAY-3": "9B"})
	f.labGrid(t, map[string]string{"MONDAY-3": "9B"})

	got, err := f.svc.AvailableSlots(context.Background(), AvailabilityQuery{
		TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Day: tm.Monday,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !contains(got, 3) {
		t.Fatalf("period 3 missing: %v", got)
	}
}

func TestAvailableSlotsIsSubsetOfIntersection(t *testing.T) {
	f := newFixture(t)
	f.teacherGrid(t, f.teacher.TeacherID, map[string]string{
		"MONDAY-1": "9A", "MONDAY-2": "9A", "MONDAY-3": "", "MONDAY-5": "10B", "MONDAY-7": "8C",
	})
	f.labGrid(t, map[string]string{
		"MONDAY-2": "9A", "MONDAY-3": "9A", "MONDAY-5": "", "MONDAY-6": "9A", "MONDAY-7": "7A",
	})

	got, err := f.svc.AvailableSlots(context.Background(), AvailabilityQuery{
		TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Day: tm.Monday,
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{2, 7}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestAvailableSlotsExcludesBookedPeriods(t *testing.T) {
	f := newFixture(t)
	other := f.addTeacher(t, "Dimas")
	grid := map[string]string{"TUESDAY-1": "9A", "TUESDAY-2": "9B", "TUESDAY-3": "9C"}
	f.teacherGrid(t, f.teacher.TeacherID, grid)
	f.teacherGrid(t, other.TeacherID, grid)
	f.labGrid(t, grid)
	ctx := context.Background()

	// guru lain memakai lab di periode 2
	booked, err := f.svc.BookPractical(ctx, f.request(other.TeacherID, "2026-02-03", 2))
	if err != nil {
		t.Fatal(err)
	}

	onDate, err := f.svc.AvailableSlots(ctx, AvailabilityQuery{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Date: "2026-02-03"})
	if err != nil {
		t.Fatal(err)
	}
	if contains(onDate, 2) || !contains(onDate, 1) || !contains(onDate, 3) {
		t.Fatalf("on date: %v", onDate)
	}

	anyTuesday, err := f.svc.AvailableSlots(ctx, AvailabilityQuery{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Day: tm.Tuesday})
	if err != nil {
		t.Fatal(err)
	}
	if contains(anyTuesday, 2) {
		t.Fatalf("weekday view returned booked period: %v", anyTuesday)
	}

	nextWeek, err := f.svc.AvailableSlots(ctx, AvailabilityQuery{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Date: "2026-02-10"})
	if err != nil {
		t.Fatal(err)
	}
	if !contains(nextWeek, 2) {
		t.Fatalf("other date blocked: %v", nextWeek)
	}

	if _, err := f.svc.UpdateStatus(ctx, booked.PracticalScheduleID, d.UpdateStatusRequest{Status: pm.PracticalCancelled}); err != nil {
		t.Fatal(err)
	}
	onDate, err = f.svc.AvailableSlots(ctx, AvailabilityQuery{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Date: "2026-02-03"})
	if err != nil {
		t.Fatal(err)
	}
	if !contains(onDate, 2) {
		t.Fatalf("cancelled booking still blocks: %v", onDate)
	}
}

func TestAvailableSlotsValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []AvailabilityQuery{
		{},
		{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID},
		{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Day: "SUNDAY"},
		{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Date: "2026-02-01"},
		{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Date: "03-02-2026"},
		{TeacherID: f.teacher.TeacherID, LabID: f.lab.LabID, Day: tm.Monday, Date: "2026-02-03"},
	}
	for i, q := range cases {
		_, err := f.svc.AvailableSlots(ctx, q)
		var ve *apperr.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d: want ValidationError, got %v", i, err)
		}
	}

	_, err := f.svc.AvailableSlots(ctx, AvailabilityQuery{TeacherID: uuid.New(), LabID: f.lab.LabID, Day: tm.Monday})
	var ne *apperr.NotFoundError
	if !errors.As(err, &ne) || ne.Resource != "teacher" {
		t.Fatalf("want teacher NotFoundError, got %v", err)
	}
	_, err = f.svc.AvailableSlots(ctx, AvailabilityQuery{TeacherID: f.teacher.TeacherID, LabID: uuid.New(), Day: tm.Monday})
	if !errors.As(err, &ne) || ne.Resource != "lab" {
		t.Fatalf("want lab NotFoundError, got %v", err)
	}
}
