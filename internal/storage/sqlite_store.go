package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	is_premium INTEGER NOT NULL DEFAULT 0,
	identity_statement TEXT NOT NULL DEFAULT '',
	focus_areas TEXT NOT NULL DEFAULT '[]',
	narrative TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	frequency TEXT NOT NULL,
	days_of_week TEXT NOT NULL DEFAULT '[]',
	time TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	streak INTEGER NOT NULL DEFAULT 0,
	completed_dates TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL,
	is_one_time INTEGER NOT NULL DEFAULT 0,
	specific_dates TEXT NOT NULL DEFAULT '[]',
	start_date TEXT NOT NULL DEFAULT '',
	end_date TEXT NOT NULL DEFAULT '',
	position INTEGER NOT NULL DEFAULT 0
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'growthspace init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema creation is idempotent, so reruns after upgrades are safe
	if _, err := s.db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetProfile() (models.UserProfile, error) {
	row := s.db.QueryRow(`
		SELECT name, email, is_premium, identity_statement, focus_areas, narrative
		FROM profile WHERE id = 1`)

	var p models.UserProfile
	var isPremium int
	var focusAreas string

	err := row.Scan(&p.Name, &p.Email, &isPremium, &p.IdentityStatement, &focusAreas, &p.Narrative)
	if err == sql.ErrNoRows {
		return models.UserProfile{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, err
	}

	p.IsPremium = isPremium != 0
	if err := json.Unmarshal([]byte(focusAreas), &p.FocusAreas); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse focus_areas: %w", err)
	}

	return p, nil
}

func (s *SQLiteStore) SaveProfile(profile models.UserProfile) error {
	focusAreas, err := json.Marshal(profile.FocusAreas)
	if err != nil {
		return fmt.Errorf("failed to serialize focus_areas: %w", err)
	}

	isPremium := 0
	if profile.IsPremium {
		isPremium = 1
	}

	_, err = s.db.Exec(`
		INSERT INTO profile (id, name, email, is_premium, identity_statement, focus_areas, narrative)
		VALUES (1, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			is_premium = excluded.is_premium,
			identity_statement = excluded.identity_statement,
			focus_areas = excluded.focus_areas,
			narrative = excluded.narrative`,
		profile.Name, profile.Email, isPremium, profile.IdentityStatement, string(focusAreas), profile.Narrative)
	return err
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, frequency, days_of_week, time, description,
			streak, completed_dates, created_at, is_one_time, specific_dates,
			start_date, end_date
		FROM habits ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// SaveHabits replaces the whole collection inside a transaction; position
// preserves the store's insertion order across reads
func (s *SQLiteStore) SaveHabits(habits []models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM habits"); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	for i, h := range habits {
		daysOfWeek, err := json.Marshal(ensureInts(h.DaysOfWeek))
		if err != nil {
			return fmt.Errorf("failed to serialize days_of_week: %w", err)
		}
		completedDates, err := json.Marshal(ensureStrings(h.CompletedDates))
		if err != nil {
			return fmt.Errorf("failed to serialize completed_dates: %w", err)
		}
		specificDates, err := json.Marshal(ensureStrings(h.SpecificDates))
		if err != nil {
			return fmt.Errorf("failed to serialize specific_dates: %w", err)
		}

		isOneTime := 0
		if h.IsOneTime {
			isOneTime = 1
		}

		_, err = tx.Exec(`
			INSERT INTO habits (id, name, category, frequency, days_of_week, time,
				description, streak, completed_dates, created_at, is_one_time,
				specific_dates, start_date, end_date, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.Name, string(h.Category), string(h.Frequency), string(daysOfWeek),
			h.Time, h.Description, h.Streak, string(completedDates),
			h.CreatedAt.Format(time.RFC3339), isOneTime, string(specificDates),
			h.StartDate, h.EndDate, i)
		if err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func scanHabit(rows *sql.Rows) (models.Habit, error) {
	var h models.Habit
	var daysOfWeek, completedDates, specificDates, createdAt string
	var isOneTime int

	err := rows.Scan(&h.ID, &h.Name, &h.Category, &h.Frequency, &daysOfWeek,
		&h.Time, &h.Description, &h.Streak, &completedDates, &createdAt,
		&isOneTime, &specificDates, &h.StartDate, &h.EndDate)
	if err != nil {
		return models.Habit{}, err
	}

	h.IsOneTime = isOneTime != 0
	h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(daysOfWeek), &h.DaysOfWeek); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse days_of_week: %w", err)
	}
	if err := json.Unmarshal([]byte(completedDates), &h.CompletedDates); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse completed_dates: %w", err)
	}
	if err := json.Unmarshal([]byte(specificDates), &h.SpecificDates); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse specific_dates: %w", err)
	}

	return h, nil
}

func ensureInts(v []int) []int {
	if v == nil {
		return []int{}
	}
	return v
}

func ensureStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
