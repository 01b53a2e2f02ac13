package route

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	database "labschedule_backend/internals/databases"
)

func send(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
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
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestDirectoryRoutes(t *testing.T) {
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	app := fiber.New()
	DirectoryRoutes(app.Group("/api"), db)

	status, body := send(t, app, http.MethodPost, "/api/labs", `{"name":"Biology Lab"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create lab: %d %v", status, body)
	}
	lab := body["data"].(map[string]any)
	labID := lab["id"].(string)
	if kind := lab["category"].(map[string]any)["kind"]; kind != "specialized" {
		t.Fatalf("category %v", kind)
	}

	if status, _ := send(t, app, http.MethodPost, "/api/labs", `{"name":"X"}`); status != fiber.StatusUnprocessableEntity {
		t.Fatalf("short name: %d", status)
	}
	if status, _ := send(t, app, http.MethodPost, "/api/labs", `{"name":"Art Room","grade_from":9,"grade_to":3}`); status != fiber.StatusUnprocessableEntity {
		t.Fatalf("inverted range: %d", status)
	}

	status, _ = send(t, app, http.MethodPost, "/api/teachers", `{"name":"Dimas","email":"Dimas@School.test","home_lab_id":"`+labID+`"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("create teacher: %d", status)
	}
	if status, _ := send(t, app, http.MethodPost, "/api/teachers", `{"name":"Dimas Dua","email":"dimas@school.test"}`); status != fiber.StatusConflict {
		t.Fatalf("duplicate email: %d", status)
	}
	if status, _ := send(t, app, http.MethodPost, "/api/teachers", `{"name":"Sari","home_lab_id":"6f1c2a7e-5b7e-4c1e-9d55-0a4b1f0e2c11"}`); status != fiber.StatusNotFound {
		t.Fatalf("unknown home lab: %d", status)
	}

	status, body = send(t, app, http.MethodGet, "/api/teachers?home_lab_id="+labID, "")
	if status != fiber.StatusOK || len(body["data"].([]any)) != 1 {
		t.Fatalf("list teachers: %d %v", status, body)
	}
	if status, _ := send(t, app, http.MethodGet, "/api/labs/"+labID, ""); status != fiber.StatusOK {
		t.Fatalf("get lab: %d", status)
	}
	if status, _ := send(t, app, http.MethodGet, "/api/labs/nope", ""); status != fiber.StatusBadRequest {
		t.Fatalf("bad id: %d", status)
	}
}
