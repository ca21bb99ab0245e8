package backup

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fitlog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupBackupTest(t *testing.T) (*gorm.DB, *Manager) {
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

	session := db.ExerciseSession{
		FamilyMember: "Dad",
		Date:         time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
		ExerciseType: "pull_ups",
		Sets:         2,
		RepsPerSet:   db.IntList{5, 7},
	}
	if err := gdb.Create(&session).Error; err != nil {
		t.Fatalf("failed to seed session: %v", err)
	}

	goal := db.Goal{
		FamilyMember: "Dad",
		ExerciseType: "pull_ups",
		GoalKind:     "max_reps",
		TargetValue:  10,
		StartDate:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local),
		Status:       db.GoalStatusActive,
	}
	if err := gdb.Create(&goal).Error; err != nil {
		t.Fatalf("failed to seed goal: %v", err)
	}

	return gdb, NewManager(dbPath, filepath.Join(dir, "backups"))
}

func TestCreateSQLiteCopiesDatabase(t *testing.T) {
	_, mgr := setupBackupTest(t)

	path, err := mgr.CreateSQLite()
	if err != nil {
		t.Fatalf("CreateSQLite returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected a non-empty database copy")
	}
	if !strings.HasSuffix(path, ".db") {
		t.Fatalf("unexpected backup name: %s", path)
	}
}

func TestCreateJSONSnapshot(t *testing.T) {
	gdb, mgr := setupBackupTest(t)

	path, err := mgr.CreateJSON(gdb)
	if err != nil {
		t.Fatalf("CreateJSON returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}

	var snapshot struct {
		SnapshotID string                      `json:"snapshot_id"`
		CreatedAt  string                      `json:"created_at"`
		Tables     map[string][]map[string]any `json:"tables"`
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}

	if snapshot.SnapshotID == "" {
		t.Fatal("expected a snapshot id")
	}
	if len(snapshot.Tables) != 5 {
		t.Fatalf("expected 5 tables, got %d", len(snapshot.Tables))
	}
	if len(snapshot.Tables["exercise_sessions"]) != 1 {
		t.Fatalf("expected 1 session row, got %d", len(snapshot.Tables["exercise_sessions"]))
	}
	if len(snapshot.Tables["goals"]) != 1 {
		t.Fatalf("expected 1 goal row, got %d", len(snapshot.Tables["goals"]))
	}
}

func TestCreateCSVArchive(t *testing.T) {
	gdb, mgr := setupBackupTest(t)

	path, err := mgr.CreateCSV(gdb)
	if err != nil {
		t.Fatalf("CreateCSV returned error: %v", err)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer zr.Close()

	names := make(map[string]bool)
	for _, entry := range zr.File {
		names[entry.Name] = true
	}
	if len(names) != 5 {
		t.Fatalf("expected 5 csv entries, got %d", len(names))
	}
	for _, want := range []string{"exercise_sessions.csv", "goals.csv", "goal_progresses.csv", "personal_bests.csv", "achievements.csv"} {
		if !names[want] {
			t.Fatalf("archive missing %s", want)
		}
	}
}

func TestCreateFullAndList(t *testing.T) {
	gdb, mgr := setupBackupTest(t)

	paths, err := mgr.CreateFull(gdb)
	if err != nil {
		t.Fatalf("CreateFull returned error: %v", err)
	}
	for _, format := range []string{"sqlite", "json", "csv"} {
		if paths[format] == "" {
			t.Fatalf("expected a path for %s", format)
		}
		if _, err := os.Stat(paths[format]); err != nil {
			t.Fatalf("%s backup missing: %v", format, err)
		}
	}

	files, err := mgr.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 backup files, got %d", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i].CreatedAt.After(files[i-1].CreatedAt) {
			t.Fatal("expected files ordered newest first")
		}
	}
}

func TestListWithoutBackupDir(t *testing.T) {
	mgr := NewManager("unused.db", filepath.Join(t.TempDir(), "missing"))

	files, err := mgr.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
}
