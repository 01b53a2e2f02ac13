// file: internals/features/labs/directory/route/directory_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dirCtl "labschedule_backend/internals/features/labs/directory/controller"
)

func DirectoryRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dirCtl.New(db, nil)

	labs := r.Group("/labs")
	labs.Get("/", ctl.ListLabs)
	labs.Post("/", ctl.CreateLab)
	labs.Get("/:lab_id", ctl.GetLab)

	teachers := r.Group("/teachers")
	teachers.Get("/", ctl.ListTeachers)
	teachers.Post("/", ctl.CreateTeacher)
	teachers.Get("/:teacher_id", ctl.GetTeacher)
}
