package route

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	database "labschedule_backend/internals/databases"
	dirModel "labschedule_backend/internals/features/labs/directory/model"
)

type gradeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	ErrorCode    string          `json:"error_code"`
	Violations   []string        `json:"violations"`
	AllowedRange *gradeRange     `json:"allowed_range"`
	Data         json.RawMessage `json:"data"`
}

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	app := fiber.New()
	TimetableRoutes(app.Group("/api"), db, 8)
	return app, db
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, envelope) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func TestPutLabTimetableOutOfRange(t *testing.T) {
	app, db := setup(t)
	lab := dirModel.LabModel{LabName: "Science Lab A"}
	if err := db.Create(&lab).Error; err != nil {
		t.Fatal(err)
	}

	resp, env := do(t, app, http.MethodPut, "/api/labs/"+lab.LabID.String()+"/timetable", `{"grid":{"MONDAY-3":"14A"}}`)
	if resp.StatusCode != fiber.StatusUnprocessableEntity {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if len(env.Violations) != 1 || env.Violations[0] != "MONDAY-3 (14A)" {
		t.Fatalf("violations %v", env.Violations)
	}
	if env.AllowedRange == nil || env.AllowedRange.Min != 6 || env.AllowedRange.Max != 11 {
		t.Fatalf("allowed range %+v", env.AllowedRange)
	}
}

func TestPutAndGetLabTimetable(t *testing.T) {
	app, db := setup(t)
	lab := dirModel.LabModel{LabName: "Science Lab A"}
	if err := db.Create(&lab).Error; err != nil {
		t.Fatal(err)
	}
	base := "/api/labs/" + lab.LabID.String() + "/timetable"

	resp, _ := do(t, app, http.MethodPut, base, `{"grid":{"MONDAY-3":"9B","MONDAY-4":""}}`)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("put status %d", resp.StatusCode)
	}

	resp, env := do(t, app, http.MethodGet, base, "")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("get status %d", resp.StatusCode)
	}
	var data struct {
		Grid map[string]string `json:"grid"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatal(err)
	}
	if data.Grid["MONDAY-3"] != "9B" || data.Grid["MONDAY-4"] != "" || len(data.Grid) != 2 {
		t.Fatalf("grid %v", data.Grid)
	}
}

func TestTimetableRouteErrors(t *testing.T) {
	app, db := setup(t)
	teacher := dirModel.TeacherModel{TeacherName: "Rina"}
	if err := db.Create(&teacher).Error; err != nil {
		t.Fatal(err)
	}

	if resp, _ := do(t, app, http.MethodPut, "/api/teachers/not-a-uuid/timetable", `{}`); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad uuid: %d", resp.StatusCode)
	}
	if resp, _ := do(t, app, http.MethodGet, "/api/labs/6f1c2a7e-5b7e-4c1e-9d55-0a4b1f0e2c11/timetable", ""); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("unknown lab: %d", resp.StatusCode)
	}
	base := "/api/teachers/" + teacher.TeacherID.String() + "/timetable"
	if resp, _ := do(t, app, http.MethodPatch, base+"/slots/SUNDAY/1", `{"class_code":"9A"}`); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("bad day: %d", resp.StatusCode)
	}
	resp, env := do(t, app, http.MethodPatch, base+"/slots/MONDAY/2", `{"class_code":"123456"}`)
	if resp.StatusCode != fiber.StatusUnprocessableEntity || env.ErrorCode != "VALIDATION_ERROR" || len(env.Violations) != 1 {
		t.Fatalf("patch validation: %d %+v", resp.StatusCode, env)
	}
	if env.Violations[0] != "ClassCode (123456)" {
		t.Fatalf("violation %q", env.Violations[0])
	}
	if resp, _ := do(t, app, http.MethodPatch, base+"/slots/monday/2", `{"class_code":"9A"}`); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("patch: %d", resp.StatusCode)
	}
	if resp, _ := do(t, app, http.MethodDelete, base+"/slots/MONDAY/2", ""); resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete: %d", resp.StatusCode)
	}
	if resp, _ := do(t, app, http.MethodDelete, base+"/slots/MONDAY/2", ""); resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("second delete: %d", resp.StatusCode)
	}
}

func TestExportLabTimetable(t *testing.T) {
	app, db := setup(t)
	lab := dirModel.LabModel{LabName: "Computer Lab"}
	if err := db.Create(&lab).Error; err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/labs/"+lab.LabID.String()+"/timetable/export", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get(fiber.HeaderContentType); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("content type %q", ct)
	}
}
