package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"placement/internal/config"
	"placement/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := &config.Config{
		Port:                  "0",
		StoreBackend:          config.StoreBackendMemory,
		ResumeUploadDir:       t.TempDir(),
		ResumeMaxUploadSizeMB: 5,
		Env:                   "test",
	}
	srv := NewServerWithDeps(cfg, store.NewMemoryStore())
	// The prometheus middleware registers collectors globally; tests build
	// many apps, so it stays off here.
	srv.promMiddleware = nil

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func registerVia(t *testing.T, app *fiber.App, role, email string) map[string]any {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
		"name":     "Test " + role,
		"email":    email,
		"password": role + "123",
		"role":     role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decodeBody(t, resp)
}

func loginVia(t *testing.T, app *fiber.App, role, email string) {
	t.Helper()
	resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
		"email":    email,
		"password": role + "123",
		"role":     role,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func uploadResumeVia(t *testing.T, app *fiber.App) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test resume"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/api/resume", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)
	resp := doJSON(t, app, fiber.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "ok", body["status"])
}

func TestAuthEndpoints(t *testing.T) {
	app := newTestApp(t)

	t.Run("register returns the account without the password", func(t *testing.T) {
		body := registerVia(t, app, "student", "student@placement.com")
		assert.Equal(t, "student@placement.com", body["email"])
		assert.NotContains(t, body, "password")
	})

	t.Run("me reflects the session", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/auth/me", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "student@placement.com", body["email"])
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/register", fiber.Map{
			"name":     "Someone Else",
			"email":    "student@placement.com",
			"password": "other123",
			"role":     "student",
		})
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "student@placement.com",
			"password": "wrong",
			"role":     "student",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("logout closes the session", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/auth/logout", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, app, fiber.MethodGet, "/api/auth/me", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("protected routes reject a missing session", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/jobs/", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestJobEndpoints(t *testing.T) {
	app := newTestApp(t)

	registerVia(t, app, "student", "student@placement.com")

	t.Run("students cannot post jobs", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/jobs/", fiber.Map{
			"title": "Sneaky Posting",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	registerVia(t, app, "company", "company@placement.com")

	var jobID string
	t.Run("companies can post jobs", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/jobs/", fiber.Map{
			"title":       "Frontend Developer",
			"description": "Build the portal UI.",
			"location":    "Bangalore",
			"type":        "Full-time",
			"deadline":    "2026-12-31",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		jobID = body["id"].(string)
		assert.Equal(t, "Test company", body["companyName"])
	})

	t.Run("mine lists only the session company's jobs", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/jobs/mine", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decodeList(t, resp), 1)
	})

	t.Run("another company cannot touch the job", func(t *testing.T) {
		registerVia(t, app, "company", "rival@placement.com")
		resp := doJSON(t, app, fiber.MethodPut, "/api/jobs/"+jobID, fiber.Map{
			"salary": "1 LPA",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		resp.Body.Close()

		resp = doJSON(t, app, fiber.MethodDelete, "/api/jobs/"+jobID, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("the owner can update", func(t *testing.T) {
		loginVia(t, app, "company", "company@placement.com")
		resp := doJSON(t, app, fiber.MethodPut, "/api/jobs/"+jobID, fiber.Map{
			"salary": "8-12 LPA",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "8-12 LPA", body["salary"])
		assert.Equal(t, "Frontend Developer", body["title"])
	})

	t.Run("unknown job is a 404", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/jobs/missing", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestAdminEndpoints(t *testing.T) {
	app := newTestApp(t)

	registerVia(t, app, "student", "student@placement.com")

	t.Run("non-admin is forbidden", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/users/", nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	registerVia(t, app, "admin", "admin@placement.com")

	t.Run("admin lists every user", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/users/", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decodeList(t, resp), 2)
	})

	t.Run("admin can deactivate an account", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/users/students", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		students := decodeList(t, resp)
		require.Len(t, students, 1)
		id := students[0]["id"].(string)

		resp = doJSON(t, app, fiber.MethodPut, "/api/users/"+id+"/active", fiber.Map{
			"active": false,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, false, body["isActive"])

		// Deactivated accounts cannot log back in.
		loginResp := doJSON(t, app, fiber.MethodPost, "/api/auth/login", fiber.Map{
			"email":    "student@placement.com",
			"password": "student123",
			"role":     "student",
		})
		assert.Equal(t, fiber.StatusUnauthorized, loginResp.StatusCode)
		loginResp.Body.Close()
	})
}

func TestApplicationFlowOverHTTP(t *testing.T) {
	app := newTestApp(t)

	registerVia(t, app, "company", "company@placement.com")
	resp := doJSON(t, app, fiber.MethodPost, "/api/jobs/", fiber.Map{
		"title":       "Backend Developer",
		"description": "APIs and plumbing.",
		"location":    "Remote",
		"type":        "Full-time",
		"deadline":    "2026-12-31",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	jobID := decodeBody(t, resp)["id"].(string)

	registerVia(t, app, "student", "student@placement.com")

	t.Run("applying without a resume is rejected", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/applications/", fiber.Map{
			"jobId": jobID,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	uploadResumeVia(t, app)

	var appID string
	t.Run("applying with a resume creates a pending application", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/applications/", fiber.Map{
			"jobId": jobID,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		appID = body["id"].(string)
		assert.Equal(t, "pending", body["status"])
		assert.Equal(t, "Backend Developer", body["jobTitle"])
	})

	t.Run("applying twice is rejected", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPost, "/api/applications/", fiber.Map{
			"jobId": jobID,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("students cannot review applications", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodPut, "/api/applications/"+appID+"/status", fiber.Map{
			"status": "approved",
		})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("the owning company approves", func(t *testing.T) {
		loginVia(t, app, "company", "company@placement.com")
		resp := doJSON(t, app, fiber.MethodPut, "/api/applications/"+appID+"/status", fiber.Map{
			"status": "approved",
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "approved", body["status"])
	})

	t.Run("the company sees the application against its job", func(t *testing.T) {
		resp := doJSON(t, app, fiber.MethodGet, "/api/applications/job/"+jobID, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		apps := decodeList(t, resp)
		require.Len(t, apps, 1)
		assert.Equal(t, "approved", apps[0]["status"])
	})

	t.Run("the student sees their own list", func(t *testing.T) {
		loginVia(t, app, "student", "student@placement.com")
		resp := doJSON(t, app, fiber.MethodGet, "/api/applications/mine", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Len(t, decodeList(t, resp), 1)
	})
}
