package service

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	m "labschedule_backend/internals/features/labs/timetables/model"
)

func TestWriteGridXLSX(t *testing.T) {
	cells := []ExportCell{
		{Day: m.Monday, Period: 1, ClassCode: "9B", Available: true},
		{Day: m.Tuesday, Period: 2, ClassCode: "10A", Available: false},
		{Day: m.Friday, Period: 8, Available: false},
		{Day: m.Friday, Period: 9, ClassCode: "7A", Available: true}, // di luar grid
	}
	var buf bytes.Buffer
	if err := WriteGridXLSX(&buf, "Timetable lab", cells, 8); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	want := map[string]string{
		"A1":  "Timetable lab",
		"A2":  "Period",
		"B2":  "MONDAY",
		"F2":  "FRIDAY",
		"A3":  "1",
		"A10": "8",
		"B3":  "9B",
		"C4":  "10A (x)",
		"F10": "-",
		"A11": "",
	}
	for cell, v := range want {
		got, err := f.GetCellValue(exportSheet, cell)
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Fatalf("%s: got %q want %q", cell, got, v)
		}
	}
}
