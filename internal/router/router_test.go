package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/fitlog/internal/config"
	"github.com/fitlog/internal/db"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "fitlog.db")

	gdb, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := config.AppConfig{
		DatabasePath:   dbPath,
		BackupDir:      filepath.Join(dir, "backups"),
		SessionSecret:  "test-secret",
		GinMode:        gin.TestMode,
		FamilyPassword: "family",
	}

	r, err := Setup(cfg, gdb)
	if err != nil {
		t.Fatalf("failed to set up router: %v", err)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/login", gin.H{"password": "family"}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}
	return w.Result().Cookies()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func TestPing(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/ping", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAPIRequiresLogin(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/goals", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/login", gin.H{"password": "nope"}, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	cookies := login(t, r)
	w = doJSON(t, r, http.MethodGet, "/api/goals", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with session, got %d", w.Code)
	}
}

func TestGoalAchievementFlow(t *testing.T) {
	r := setupTestRouter(t)
	cookies := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/goals", gin.H{
		"family_member": "Dad",
		"exercise_type": "pull_ups",
		"goal_kind":     "max_reps",
		"target_value":  10,
		"description":   "Ten pull ups",
	}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 creating goal, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/exercises", gin.H{
		"family_member": "Dad",
		"date":          "2025-03-01",
		"exercise_type": "pull_ups",
		"sets":          2,
		"reps_per_set":  []int{8, 10},
	}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 logging session, got %d: %s", w.Code, w.Body.String())
	}

	body := decodeBody(t, w)
	achievements, ok := body["achievements"].([]any)
	if !ok || len(achievements) != 1 {
		t.Fatalf("expected one achievement in response, got %v", body["achievements"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/goals?status=achieved", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 listing goals, got %d", w.Code)
	}
	body = decodeBody(t, w)
	goals, ok := body["goals"].([]any)
	if !ok || len(goals) != 1 {
		t.Fatalf("expected one achieved goal, got %v", body["goals"])
	}
	goal := goals[0].(map[string]any)
	if goal["status"] != "achieved" || goal["current_value"].(float64) != 10 {
		t.Fatalf("unexpected goal state: %v", goal)
	}

	w = doJSON(t, r, http.MethodGet, "/api/personal-bests?member=Dad", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 listing bests, got %d", w.Code)
	}
	body = decodeBody(t, w)
	bests, ok := body["personal_bests"].([]any)
	if !ok || len(bests) != 1 {
		t.Fatalf("expected one personal best, got %v", body["personal_bests"])
	}
}

func TestLogExerciseValidation(t *testing.T) {
	r := setupTestRouter(t)
	cookies := login(t, r)

	// Set count disagreeing with the rep sequence is rejected.
	w := doJSON(t, r, http.MethodPost, "/api/exercises", gin.H{
		"family_member": "Dad",
		"exercise_type": "pull_ups",
		"sets":          3,
		"reps_per_set":  []int{8, 10},
	}, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/exercises", nil, cookies)
	body := decodeBody(t, w)
	sessions, ok := body["sessions"].([]any)
	if !ok || len(sessions) != 0 {
		t.Fatalf("expected no stored sessions, got %v", body["sessions"])
	}
}

func TestArchiveConflicts(t *testing.T) {
	r := setupTestRouter(t)
	cookies := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/goals", gin.H{
		"family_member": "Son",
		"exercise_type": "pull_ups",
		"goal_kind":     "max_reps",
		"target_value":  3,
	}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 creating goal, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/exercises", gin.H{
		"family_member": "Son",
		"exercise_type": "pull_ups",
		"sets":          1,
		"reps_per_set":  []int{4},
	}, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 logging session, got %d", w.Code)
	}

	// An achieved goal cannot be archived.
	w = doJSON(t, r, http.MethodPost, "/api/goals/1/archive", nil, cookies)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 archiving achieved goal, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/goals/999/archive", nil, cookies)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown goal, got %d", w.Code)
	}
}

func TestCatalogAndDashboard(t *testing.T) {
	r := setupTestRouter(t)
	cookies := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/catalog", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := decodeBody(t, w)
	members, ok := body["family_members"].([]any)
	if !ok || len(members) != 3 {
		t.Fatalf("expected 3 family members, got %v", body["family_members"])
	}
	types, ok := body["exercise_types"].(map[string]any)
	if !ok || len(types) != 4 {
		t.Fatalf("expected 4 exercise types, got %v", body["exercise_types"])
	}

	w = doJSON(t, r, http.MethodGet, "/api/dashboard", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestBackupEndpoints(t *testing.T) {
	r := setupTestRouter(t)
	cookies := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/backups?format=json", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 creating backup, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/backups", nil, cookies)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 listing backups, got %d", w.Code)
	}
	body := decodeBody(t, w)
	files, ok := body["backups"].([]any)
	if !ok || len(files) != 1 {
		t.Fatalf("expected one backup file, got %v", body["backups"])
	}

	w = doJSON(t, r, http.MethodPost, "/api/backups?format=hologram", nil, cookies)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", w.Code)
	}
}
