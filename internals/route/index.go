// file: internals/route/index.go
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"labschedule_backend/internals/configs"
	"labschedule_backend/internals/middlewares"
	routeDetails "labschedule_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== API =====================
	api := app.Group("/api",
		middlewares.GlobalRateLimiter(),
		middlewares.WriteRateLimiter(),
	)

	maxPeriod := configs.MaxPeriod()
	log.Info().Int("max_period", maxPeriod).Msg("[INFO] Mounting Lab routes...")
	routeDetails.LabRoutes(api, db, maxPeriod)
}
