// file: internals/features/labs/practicals/route/practical_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	prCtl "labschedule_backend/internals/features/labs/practicals/controller"
)

// PracticalRoutes booking praktikum + resolver slot + audit bentrok.
func PracticalRoutes(r fiber.Router, db *gorm.DB, maxPeriod int) {
	ctl := prCtl.New(db, nil, maxPeriod)

	r.Get("/availability", ctl.Availability)

	p := r.Group("/practicals")
	p.Get("/", ctl.List)
	p.Post("/", ctl.Book)
	p.Get("/conflicts", ctl.Conflicts) // harus sebelum "/:id"
	p.Get("/:id", ctl.Get)
	p.Patch("/:id/status", ctl.UpdateStatus)
}
