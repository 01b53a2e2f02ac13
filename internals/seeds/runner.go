package seeds

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	labs "labschedule_backend/internals/seeds/labs"
)

func RunAllSeeds(db *gorm.DB) {
	//* Labs + guru
	if err := labs.SeedLabsFromJSON(db, "internals/seeds/labs/data_labs.json"); err != nil {
		log.Error().Err(err).Msg("❌ Seed labs gagal")
		return
	}
	log.Info().Msg("🌱 Seed selesai")
}
