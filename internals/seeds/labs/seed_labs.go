package labs

import (
	"errors"
	"fmt"
	"os"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"labschedule_backend/internals/features/labs/directory/model"
)

type TeacherSeed struct {
	TeacherName    string `json:"teacher_name"`
	TeacherEmail   string `json:"teacher_email"`
	TeacherSubject string `json:"teacher_subject"`
}

type LabSeed struct {
	LabName      string        `json:"lab_name"`
	LabGradeFrom *int          `json:"lab_grade_from"`
	LabGradeTo   *int          `json:"lab_grade_to"`
	LabLocation  string        `json:"lab_location"`
	Teachers     []TeacherSeed `json:"teachers"`
}

func SeedLabsFromJSON(db *gorm.DB, filePath string) error {
	log.Info().Str("file", filePath).Msg("📥 Membaca file seed labs")

	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var labs []LabSeed
	if err := sonic.Unmarshal(raw, &labs); err != nil {
		return fmt.Errorf("decode seed file: %w", err)
	}
	return SeedLabs(db, labs)
}

// SeedLabs idempotent: lab dicocokkan dari nama, guru dari email.
func SeedLabs(db *gorm.DB, labs []LabSeed) error {
	for _, s := range labs {
		var lab model.LabModel
		err := db.Where("lab_name = ?", s.LabName).First(&lab).Error
		switch {
		case err == nil:
			log.Info().Msgf("ℹ️ Lab %s sudah ada, lewati...", s.LabName)
		case errors.Is(err, gorm.ErrRecordNotFound):
			lab = model.LabModel{
				LabName:      s.LabName,
				LabGradeFrom: s.LabGradeFrom,
				LabGradeTo:   s.LabGradeTo,
				LabIsActive:  true,
			}
			if s.LabLocation != "" {
				loc := s.LabLocation
				lab.LabLocation = &loc
			}
			if err := db.Create(&lab).Error; err != nil {
				return fmt.Errorf("insert lab %s: %w", s.LabName, err)
			}
			log.Info().Msgf("✅ Berhasil insert lab %s (%s)", lab.LabName, lab.Category().Kind)
		default:
			return fmt.Errorf("find lab %s: %w", s.LabName, err)
		}

		for _, ts := range s.Teachers {
			var n int64
			if err := db.Model(&model.TeacherModel{}).Where("teacher_email = ?", ts.TeacherEmail).Count(&n).Error; err != nil {
				return fmt.Errorf("find teacher %s: %w", ts.TeacherEmail, err)
			}
			if n > 0 {
				continue
			}
			email := ts.TeacherEmail
			homeLab := lab.LabID
			t := model.TeacherModel{
				TeacherName:      ts.TeacherName,
				TeacherEmail:     &email,
				TeacherSubject:   ts.TeacherSubject,
				TeacherHomeLabID: &homeLab,
			}
			if err := db.Create(&t).Error; err != nil {
				return fmt.Errorf("insert teacher %s: %w", ts.TeacherEmail, err)
			}
			log.Info().Msgf("✅ Berhasil insert guru %s", t.TeacherName)
		}
	}
	return nil
}
