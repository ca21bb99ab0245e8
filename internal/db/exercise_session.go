package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// IntList persists an ordered sequence of per-set values as a JSON text
// column. A nil list maps to NULL, matching exercises that do not carry
// the corresponding measurement axis.
type IntList []int

// Value implements driver.Valuer.
func (l IntList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	data, err := json.Marshal([]int(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *IntList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, (*[]int)(l))
	case string:
		return json.Unmarshal([]byte(v), (*[]int)(l))
	default:
		return errors.New("unsupported type for IntList")
	}
}

// ExerciseSession records one logged workout. Rows are immutable once
// created; corrections happen by logging again, never by editing.
type ExerciseSession struct {
	gorm.Model
	FamilyMember  string    `gorm:"index;not null"`
	Date          time.Time `gorm:"index;not null"`
	ExerciseType  string    `gorm:"not null"`
	Sets          int
	RepsPerSet    IntList `gorm:"type:text"`
	SecondsPerSet IntList `gorm:"type:text"`
	Notes         string
	Feeling       string
}
