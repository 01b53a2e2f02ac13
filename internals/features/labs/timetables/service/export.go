package service

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	m "labschedule_backend/internals/features/labs/timetables/model"
)

// ExportCell satu sel untuk workbook; dipisah dari model supaya grid guru & lab sama.
type ExportCell struct {
	Day       m.Day
	Period    int
	ClassCode string
	Available bool
}

const exportSheet = "Timetable"

// WriteGridXLSX menulis grid periode × hari ke w. Kode kelas pada sel yang ditutup diberi tanda "(x)".
func WriteGridXLSX(w io.Writer, title string, cells []ExportCell, maxPeriod int) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := file.SetCellValue(exportSheet, "A1", title); err != nil {
		return err
	}
	if err := file.SetCellValue(exportSheet, "A2", "Period"); err != nil {
		return err
	}
	for i, d := range m.Weekdays {
		cell, _ := excelize.CoordinatesToCellName(i+2, 2)
		if err := file.SetCellValue(exportSheet, cell, string(d)); err != nil {
			return err
		}
	}
	for p := 1; p <= maxPeriod; p++ {
		cell, _ := excelize.CoordinatesToCellName(1, p+2)
		if err := file.SetCellValue(exportSheet, cell, p); err != nil {
			return err
		}
	}

	for _, c := range cells {
		col := c.Day.Index()
		if col < 0 || c.Period < 1 || c.Period > maxPeriod {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(col+2, c.Period+2)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(exportSheet, cell, exportLabel(c)); err != nil {
			return err
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func exportLabel(c ExportCell) string {
	switch {
	case c.Available:
		return c.ClassCode
	case c.ClassCode != "":
		return c.ClassCode + " (x)"
	default:
		return "-"
	}
}

func TeacherExportCells(rows []m.TeacherTimetableSlotModel) []ExportCell {
	out := make([]ExportCell, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportCell{
			Day:       r.TeacherTimetableSlotDay,
			Period:    r.TeacherTimetableSlotPeriod,
			ClassCode: r.TeacherTimetableSlotClassCode,
			Available: r.TeacherTimetableSlotAvailable,
		})
	}
	return out
}

func LabExportCells(rows []m.LabTimetableSlotModel) []ExportCell {
	out := make([]ExportCell, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportCell{
			Day:       r.LabTimetableSlotDay,
			Period:    r.LabTimetableSlotPeriod,
			ClassCode: r.LabTimetableSlotClassCode,
			Available: r.LabTimetableSlotAvailable,
		})
	}
	return out
}
