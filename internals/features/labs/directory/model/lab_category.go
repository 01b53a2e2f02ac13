package model

import (
	"strings"

	"labschedule_backend/internals/helpers/apperr"
)

type CategoryKind string

const (
	CategoryGeneral     CategoryKind = "general"     // lab sains umum (IPA)
	CategorySpecialized CategoryKind = "specialized" // biologi / fisika / kimia
	CategoryCustom      CategoryKind = "custom"
)

const (
	MinGrade = 1
	MaxGrade = 13
)

// LabCategory menentukan rentang kelas yang boleh memakai lab.
type LabCategory struct {
	Kind  CategoryKind      `json:"kind"`
	Range apperr.GradeRange `json:"range"`
}

func General() LabCategory {
	return LabCategory{Kind: CategoryGeneral, Range: apperr.GradeRange{Min: 6, Max: 11}}
}

func Specialized() LabCategory {
	return LabCategory{Kind: CategorySpecialized, Range: apperr.GradeRange{Min: 12, Max: 13}}
}

func Custom(min, max int) LabCategory {
	return LabCategory{Kind: CategoryCustom, Range: apperr.GradeRange{Min: min, Max: max}}
}

// DefaultCategory dipakai untuk pemilik grid tanpa lab (guru tanpa home lab).
func DefaultCategory() LabCategory { return Custom(MinGrade, MaxGrade) }

func (c LabCategory) Allows(grade int) bool { return c.Range.Contains(grade) }

var specializedKeywords = []string{"biology", "physics", "chemistry"}

// CategoryOf: kategori dari nama lab menimpa rentang tersimpan.
// Kata kunci spesialis dicek lebih dulu, jadi "Biology Science Lab" tetap Specialized.
func CategoryOf(lab LabModel) LabCategory {
	name := strings.ToLower(lab.LabName)
	for _, kw := range specializedKeywords {
		if strings.Contains(name, kw) {
			return Specialized()
		}
	}
	if strings.Contains(name, "science") {
		return General()
	}

	min, max := MinGrade, MaxGrade
	if lab.LabGradeFrom != nil && *lab.LabGradeFrom > 0 {
		min = *lab.LabGradeFrom
	}
	if lab.LabGradeTo != nil && *lab.LabGradeTo > 0 {
		max = *lab.LabGradeTo
	}
	// baris lama/seed bisa tersimpan terbalik
	if min > max {
		min, max = max, min
	}
	return Custom(min, max)
}
