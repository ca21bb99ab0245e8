package backup

import (
	"archive/zip"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fitlog/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Manager writes snapshots of the exercise database: a byte copy of the
// sqlite file, a structured JSON document and a zip of per-table CSVs.
// Pure read-and-serialize; no business logic.
type Manager struct {
	dbPath string
	dir    string
}

// File describes one existing backup artifact.
type File struct {
	Name      string    `json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

type jsonSnapshot struct {
	SnapshotID string                      `json:"snapshot_id"`
	CreatedAt  string                      `json:"created_at"`
	Tables     map[string][]map[string]any `json:"tables"`
}

// NewManager builds a Manager rooted at dir for the database at dbPath.
func NewManager(dbPath, dir string) *Manager {
	return &Manager{dbPath: dbPath, dir: dir}
}

// CreateSQLite copies the live database file into the backup directory.
func (m *Manager) CreateSQLite() (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	dst := filepath.Join(m.dir, fmt.Sprintf("fitlog_%s.db", timestamp()))

	src, err := os.Open(m.dbPath)
	if err != nil {
		return "", fmt.Errorf("open database file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("copy database file: %w", err)
	}
	return dst, nil
}

// CreateJSON serializes all five tables into one JSON document.
func (m *Manager) CreateJSON(gdb *gorm.DB) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	snapshot := jsonSnapshot{
		SnapshotID: uuid.NewString(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Tables:     make(map[string][]map[string]any),
	}

	for _, table := range tableNames(gdb) {
		rows, err := readTable(gdb, table)
		if err != nil {
			return "", err
		}
		snapshot.Tables[table] = rows
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	path := filepath.Join(m.dir, fmt.Sprintf("fitlog_%s.json", timestamp()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write json snapshot: %w", err)
	}
	return path, nil
}

// CreateCSV writes one zip archive containing a CSV file per table.
func (m *Manager) CreateCSV(gdb *gorm.DB) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	path := filepath.Join(m.dir, fmt.Sprintf("fitlog_%s_csv.zip", timestamp()))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, table := range tableNames(gdb) {
		rows, err := readTable(gdb, table)
		if err != nil {
			return "", err
		}
		entry, err := zw.Create(table + ".csv")
		if err != nil {
			return "", fmt.Errorf("create archive entry: %w", err)
		}
		if err := writeCSV(entry, rows); err != nil {
			return "", fmt.Errorf("write %s.csv: %w", table, err)
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("close csv archive: %w", err)
	}
	return path, nil
}

// CreateFull writes every backup format and returns path per format.
func (m *Manager) CreateFull(gdb *gorm.DB) (map[string]string, error) {
	sqlitePath, err := m.CreateSQLite()
	if err != nil {
		return nil, err
	}
	jsonPath, err := m.CreateJSON(gdb)
	if err != nil {
		return nil, err
	}
	csvPath, err := m.CreateCSV(gdb)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"sqlite": sqlitePath,
		"json":   jsonPath,
		"csv":    csvPath,
	}, nil
}

// List returns existing backup files, newest first.
func (m *Manager) List() ([]File, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Name:      entry.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

func tableNames(gdb *gorm.DB) []string {
	return []string{
		tableName(gdb, &db.ExerciseSession{}),
		tableName(gdb, &db.Goal{}),
		tableName(gdb, &db.GoalProgress{}),
		tableName(gdb, &db.PersonalBest{}),
		tableName(gdb, &db.Achievement{}),
	}
}

func tableName(gdb *gorm.DB, model any) string {
	stmt := &gorm.Statement{DB: gdb}
	if err := stmt.Parse(model); err != nil {
		return ""
	}
	return stmt.Table
}

func readTable(gdb *gorm.DB, table string) ([]map[string]any, error) {
	var rows []map[string]any
	if err := gdb.Table(table).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("read table %s: %w", table, err)
	}
	return rows, nil
}

// writeCSV emits rows with a header built from the union of row keys so
// NULL-bearing columns are not silently dropped.
func writeCSV(w io.Writer, rows []map[string]any) error {
	columns := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			columns[key] = struct{}{}
		}
	}

	header := make([]string, 0, len(columns))
	for key := range columns {
		header = append(header, key)
	}
	sort.Strings(header)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := make([]string, len(header))
		for i, key := range header {
			if value, ok := row[key]; ok && value != nil {
				record[i] = fmt.Sprintf("%v", value)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func timestamp() string {
	return time.Now().Format("20060102_150405")
}
