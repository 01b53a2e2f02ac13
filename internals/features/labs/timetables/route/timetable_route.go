// file: internals/features/labs/timetables/route/timetable_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ttCtl "labschedule_backend/internals/features/labs/timetables/controller"
)

// TimetableRoutes grid mingguan guru & lab.
//
//	api := app.Group("/api")
//	route.TimetableRoutes(api, db, configs.MaxPeriod())
func TimetableRoutes(r fiber.Router, db *gorm.DB, maxPeriod int) {
	ctl := ttCtl.New(db, nil, maxPeriod)

	t := r.Group("/teachers/:teacher_id/timetable")
	t.Get("/", ctl.GetTeacherGrid)
	t.Put("/", ctl.SaveTeacherGrid)
	t.Get("/revisions", ctl.TeacherRevisions)
	t.Get("/export", ctl.ExportTeacherGrid)
	t.Patch("/slots/:day/:period", ctl.PatchTeacherSlot)
	t.Delete("/slots/:day/:period", ctl.DeleteTeacherSlot)

	l := r.Group("/labs/:lab_id/timetable")
	l.Get("/", ctl.GetLabGrid)
	l.Put("/", ctl.SaveLabGrid)
	l.Get("/revisions", ctl.LabRevisions)
	l.Get("/export", ctl.ExportLabGrid)
	l.Patch("/slots/:day/:period", ctl.PatchLabSlot)
	l.Delete("/slots/:day/:period", ctl.DeleteLabSlot)
}
