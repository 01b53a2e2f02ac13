package service

import (
	"sort"
	"strings"

	dirModel "labschedule_backend/internals/features/labs/directory/model"
	m "labschedule_backend/internals/features/labs/timetables/model"
	"labschedule_backend/internals/helpers/apperr"
)

// SlotDraft satu sel grid yang sudah lolos validasi, siap di-insert.
type SlotDraft struct {
	Day       m.Day
	Period    int
	ClassCode string // kanonik, "" = kosong
	Grade     int
	Available bool
}

// GridValidator memeriksa grid mingguan sebelum menggantikan grid tersimpan.
type GridValidator struct {
	MaxPeriod int
}

func NewGridValidator(maxPeriod int) GridValidator {
	return GridValidator{MaxPeriod: maxPeriod}
}

// Validate: kunci rusak dibuang diam-diam; kode kelas rusak atau grade di luar
// rentang kategori menolak seluruh grid dengan daftar lengkap pelanggaran.
func (v GridValidator) Validate(grid map[string]string, cat dirModel.LabCategory) ([]SlotDraft, error) {
	var (
		drafts      = make([]SlotDraft, 0, len(grid))
		formatViols []apperr.Violation
		rangeViols  []apperr.Violation
		seen        = make(map[string]struct{}, len(grid))
	)

	for key, raw := range grid {
		day, period, ok := m.ParseSlotKey(key, v.MaxPeriod)
		if !ok {
			continue
		}
		// satu draft per (day, period)
		canon := m.SlotKey(day, period)
		if _, dup := seen[canon]; dup {
			continue
		}
		seen[canon] = struct{}{}
		d, viol := v.cell(day, period, raw, cat)
		if viol != nil {
			if viol.Reason == apperr.ReasonFormat {
				formatViols = append(formatViols, *viol)
			} else {
				rangeViols = append(rangeViols, *viol)
			}
			continue
		}
		drafts = append(drafts, d)
	}

	if len(formatViols) > 0 || len(rangeViols) > 0 {
		return nil, gridError(formatViols, rangeViols, cat)
	}

	SortDrafts(drafts)
	return drafts, nil
}

// ValidateCell dipakai edit satu slot; aturannya sama dengan Validate.
func (v GridValidator) ValidateCell(day m.Day, period int, raw string, cat dirModel.LabCategory) (SlotDraft, error) {
	if !day.Valid() || period < 1 || period > v.MaxPeriod {
		return SlotDraft{}, apperr.NewValidation("invalid slot key", apperr.Violation{
			Key:    m.SlotKey(day, period),
			Reason: apperr.ReasonField,
		})
	}
	d, viol := v.cell(day, period, raw, cat)
	if viol == nil {
		return d, nil
	}
	if viol.Reason == apperr.ReasonFormat {
		return SlotDraft{}, gridError([]apperr.Violation{*viol}, nil, cat)
	}
	return SlotDraft{}, gridError(nil, []apperr.Violation{*viol}, cat)
}

func (v GridValidator) cell(day m.Day, period int, raw string, cat dirModel.LabCategory) (SlotDraft, *apperr.Violation) {
	key := m.SlotKey(day, period)
	d := SlotDraft{Day: day, Period: period}
	if strings.TrimSpace(raw) == "" {
		return d, nil
	}
	code, err := m.ParseClassCode(raw)
	if err != nil {
		return d, &apperr.Violation{Key: key, Value: raw, Reason: apperr.ReasonFormat}
	}
	if !cat.Allows(code.Grade) {
		return d, &apperr.Violation{Key: key, Value: code.String(), Reason: apperr.ReasonGradeRange}
	}
	d.ClassCode = code.String()
	d.Grade = code.Grade
	d.Available = true
	return d, nil
}

func gridError(formatViols, rangeViols []apperr.Violation, cat dirModel.LabCategory) error {
	sortViolations(formatViols)
	sortViolations(rangeViols)

	msg := "grade out of allowed range"
	if len(formatViols) > 0 {
		msg = "invalid class code format"
	}
	ve := apperr.NewValidation(msg, append(formatViols, rangeViols...)...)
	if len(rangeViols) > 0 {
		r := cat.Range
		ve.AllowedRange = &r
	}
	return ve
}

func SortDrafts(ds []SlotDraft) {
	sort.Slice(ds, func(i, j int) bool {
		if ds[i].Day != ds[j].Day {
			return ds[i].Day.Index() < ds[j].Day.Index()
		}
		return ds[i].Period < ds[j].Period
	})
}

func sortViolations(vs []apperr.Violation) {
	sort.Slice(vs, func(i, j int) bool { return keyLess(vs[i].Key, vs[j].Key) })
}

func keyLess(a, b string) bool {
	da, pa, okA := m.ParseSlotKey(a, 1<<30)
	db, pb, okB := m.ParseSlotKey(b, 1<<30)
	if !okA || !okB {
		return a < b
	}
	if da != db {
		return da.Index() < db.Index()
	}
	return pa < pb
}
