package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dirRoute "labschedule_backend/internals/features/labs/directory/route"
	prRoute "labschedule_backend/internals/features/labs/practicals/route"
	ttRoute "labschedule_backend/internals/features/labs/timetables/route"
)

// LabRoutes memasang semua route penjadwalan lab di bawah api.
func LabRoutes(api fiber.Router, db *gorm.DB, maxPeriod int) {
	dirRoute.DirectoryRoutes(api, db)
	ttRoute.TimetableRoutes(api, db, maxPeriod)
	prRoute.PracticalRoutes(api, db, maxPeriod)
}
