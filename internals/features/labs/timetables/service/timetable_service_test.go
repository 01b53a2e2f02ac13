package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	dirModel "labschedule_backend/internals/features/labs/directory/model"
	m "labschedule_backend/internals/features/labs/timetables/model"
	"labschedule_backend/internals/helpers/apperr"
)

func labGrid(t *testing.T, s *Service, labID uuid.UUID) map[string]string {
	t.Helper()
	rows, err := s.LabSlots(context.Background(), labID)
	if err != nil {
		t.Fatal(err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[m.SlotKey(r.LabTimetableSlotDay, r.LabTimetableSlotPeriod)] = r.LabTimetableSlotClassCode
	}
	return out
}

func TestSaveLabGridIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 8)
	lab := createLab(t, db, "Science Lab A")
	grid := map[string]string{"MONDAY-3": "9B", "MONDAY-4": "", "TUESDAY-1": " 10A "}
	ctx := context.Background()

	if _, err := s.SaveLabGrid(ctx, lab.LabID, grid); err != nil {
		t.Fatal(err)
	}
	first := labGrid(t, s, lab.LabID)
	res, err := s.SaveLabGrid(ctx, lab.LabID, grid)
	if err != nil {
		t.Fatal(err)
	}
	second := labGrid(t, s, lab.LabID)

	if res.SlotCount != 3 || len(second) != 3 {
		t.Fatalf("slot count %d, stored %v", res.SlotCount, second)
	}
	for k, v := range first {
		if second[k] != v {
			t.Fatalf("%s changed: %q -> %q", k, v, second[k])
		}
	}
	if second["TUESDAY-1"] != "10A" {
		t.Fatalf("class code not canonical: %q", second["TUESDAY-1"])
	}
	if res.Category.Kind != dirModel.CategoryGeneral {
		t.Fatalf("category %+v", res.Category)
	}
}

func TestSaveLabGridRejectedWritesNothing(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 8)
	lab := createLab(t, db, "Science Lab A")
	ctx := context.Background()

	if _, err := s.SaveLabGrid(ctx, lab.LabID, map[string]string{"FRIDAY-1": "8C"}); err != nil {
		t.Fatal(err)
	}
	_, err := s.SaveLabGrid(ctx, lab.LabID, map[string]string{"MONDAY-3": "abc"})
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	got := labGrid(t, s, lab.LabID)
	if len(got) != 1 || got["FRIDAY-1"] != "8C" {
		t.Fatalf("previous grid touched: %v", got)
	}
	revs, err := s.Revisions(ctx, m.OwnerLab, lab.LabID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(revs) != 1 {
		t.Fatalf("rejected save recorded a revision: %d", len(revs))
	}
}

func TestReplaceRollsBackOnInsertFailure(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 8)
	lab := createLab(t, db, "Computer Lab")
	ctx := context.Background()

	if _, err := s.SaveLabGrid(ctx, lab.LabID, map[string]string{"MONDAY-1": "7A", "MONDAY-2": "7B"}); err != nil {
		t.Fatal(err)
	}

	// dua draft di sel yang sama melanggar unique index di tengah transaksi
	dup := []SlotDraft{
		{Day: m.Monday, Period: 5, ClassCode: "8A", Grade: 8, Available: true},
		{Day: m.Monday, Period: 5, ClassCode: "8B", Grade: 8, Available: true},
	}
	_, err := s.Store.Replace(ctx, ReplaceInput{OwnerType: m.OwnerLab, OwnerID: lab.LabID, Slots: dup})
	var se *apperr.StoreError
	if !errors.As(err, &se) {
		t.Fatalf("want StoreError, got %v", err)
	}

	got := labGrid(t, s, lab.LabID)
	if len(got) != 2 || got["MONDAY-1"] != "7A" || got["MONDAY-2"] != "7B" {
		t.Fatalf("grid not rolled back: %v", got)
	}
	revs, _ := s.Revisions(ctx, m.OwnerLab, lab.LabID, 10)
	if len(revs) != 1 {
		t.Fatalf("revision not rolled back: %d", len(revs))
	}
}

func TestSaveEmptyGridClearsTimetable(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 8)
	lab := createLab(t, db, "Computer Lab")
	ctx := context.Background()

	if _, err := s.SaveLabGrid(ctx, lab.LabID, map[string]string{"MONDAY-1": "7A"}); err != nil {
		t.Fatal(err)
	}
	res, err := s.SaveLabGrid(ctx, lab.LabID, map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	if res.SlotCount != 0 || len(labGrid(t, s, lab.LabID)) != 0 {
		t.Fatal("timetable not cleared")
	}
}

func TestSaveGridUnknownOwner(t *testing.T) {
	s := New(newTestDB(t), 8)
	_, err := s.SaveLabGrid(context.Background(), uuid.New(), map[string]string{"MONDAY-1": "7A"})
	var ne *apperr.NotFoundError
	if !errors.As(err, &ne) || ne.Resource != "lab" {
		t.Fatalf("want lab NotFoundError, got %v", err)
	}
	_, err = s.SaveTeacherGrid(context.Background(), uuid.New(), nil)
	if !errors.As(err, &ne) || ne.Resource != "teacher" {
		t.Fatalf("want teacher NotFoundError, got %v", err)
	}
}

func TestSaveTeacherGridUsesHomeLabCategory(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 8)
	bio := createLab(t, db, "Biology Lab")
	ctx := context.Background()

	withHome := createTeacher(t, db, &bio.LabID)
	_, err := s.SaveTeacherGrid(ctx, withHome.TeacherID, map[string]string{"MONDAY-1": "9B"})
	ve := mustValidationError(t, err)
	if ve.AllowedRange == nil || ve.AllowedRange.Min != 12 || ve.AllowedRange.Max != 13 {
		t.Fatalf("allowed range %+v", ve.AllowedRange)
	}

	noHome := createTeacher(t, db, nil)
	res, err := s.SaveTeacherGrid(ctx, noHome.TeacherID, map[string]string{"MONDAY-1": "1A", "MONDAY-2": "13B"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Category.Kind != dirModel.CategoryCustom || res.SlotCount != 2 {
		t.Fatalf("result %+v", res)
	}
	rows, err := s.TeacherSlots(ctx, noHome.TeacherID)
	if err != nil {
		t.Fatal(err)
	}
	if rows[0].TeacherTimetableSlotSubject != "Science" || rows[1].TeacherTimetableSlotGrade != 13 {
		t.Fatalf("rows %+v", rows)
	}
}

func TestRevisionsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 8)
	lab := createLab(t, db, "Computer Lab")
	ctx := context.Background()

	if _, err := s.SaveLabGrid(ctx, lab.LabID, map[string]string{"MONDAY-1": "7A"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveLabGrid(ctx, lab.LabID, map[string]string{"MONDAY-1": "7A", "MONDAY-2": "7B", "bogus": "x"}); err != nil {
		t.Fatal(err)
	}
	revs, err := s.Revisions(ctx, m.OwnerLab, lab.LabID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(revs) != 2 || revs[0].TimetableRevisionSlotCount != 2 || revs[1].TimetableRevisionSlotCount != 1 {
		t.Fatalf("revisions %+v", revs)
	}
	// snapshot menyimpan grid mentah, termasuk kunci yang dibuang
	if revs[0].TimetableRevisionGrid["bogus"] != "x" {
		t.Fatalf("snapshot %v", revs[0].TimetableRevisionGrid)
	}
}

func TestSingleSlotEditAndDelete(t *testing.T) {
	db := newTestDB(t)
	s := New(db, 8)
	lab := createLab(t, db, "Science Lab A")
	ctx := context.Background()

	slot, err := s.SetLabSlot(ctx, lab.LabID, m.Wednesday, 4, SlotEdit{ClassCode: "8A"})
	if err != nil {
		t.Fatal(err)
	}
	if slot.LabTimetableSlotClassCode != "8A" || !slot.LabTimetableSlotAvailable {
		t.Fatalf("slot %+v", slot)
	}

	closed := false
	slot, err = s.SetLabSlot(ctx, lab.LabID, m.Wednesday, 4, SlotEdit{ClassCode: "9A", Available: &closed})
	if err != nil {
		t.Fatal(err)
	}
	if slot.LabTimetableSlotClassCode != "9A" || slot.LabTimetableSlotAvailable {
		t.Fatalf("slot %+v", slot)
	}
	if got := labGrid(t, s, lab.LabID); len(got) != 1 {
		t.Fatalf("upsert duplicated the cell: %v", got)
	}

	if _, err := s.SetLabSlot(ctx, lab.LabID, m.Wednesday, 4, SlotEdit{ClassCode: "12A"}); err == nil {
		t.Fatal("12A accepted by science lab")
	}

	if err := s.DeleteLabSlot(ctx, lab.LabID, m.Wednesday, 4); err != nil {
		t.Fatal(err)
	}
	err = s.DeleteLabSlot(ctx, lab.LabID, m.Wednesday, 4)
	var ne *apperr.NotFoundError
	if !errors.As(err, &ne) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
}
