package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/lruiz/growthspace/internal/apperr"
	"github.com/lruiz/growthspace/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS profiles (
	user_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	is_premium BOOLEAN NOT NULL DEFAULT FALSE,
	identity_statement TEXT NOT NULL DEFAULT '',
	focus_areas JSONB NOT NULL DEFAULT '[]',
	narrative TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	category TEXT NOT NULL,
	frequency TEXT NOT NULL,
	days_of_week JSONB NOT NULL DEFAULT '[]',
	time TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	streak INTEGER NOT NULL DEFAULT 0,
	completed_dates JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL,
	is_one_time BOOLEAN NOT NULL DEFAULT FALSE,
	specific_dates JSONB NOT NULL DEFAULT '[]',
	start_date TEXT NOT NULL DEFAULT '',
	end_date TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_habits_user_id ON habits (user_id);
`

// PostgresStore is the optional remote backend: per-user rows upserted by id
// with last-write-wins resolution on updated_at. The authentication session
// that produces userID is outside this package.
type PostgresStore struct {
	connStr string
	userID  string
	db      *sql.DB
}

func NewPostgresStore(connStr, userID string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
		userID:  userID,
	}
}

func (s *PostgresStore) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}

	// Schema creation is idempotent
	if _, err := s.db.Exec(postgresSchema); err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) open() error {
	if s.userID == "" {
		return fmt.Errorf("remote storage requires a user id")
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("%w: %v", apperr.ErrUnavailable, err)
	}

	s.db = db
	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) GetProfile() (models.UserProfile, error) {
	row := s.db.QueryRow(`
		SELECT name, email, is_premium, identity_statement, focus_areas, narrative
		FROM profiles WHERE user_id = $1`, s.userID)

	var p models.UserProfile
	var focusAreas []byte

	err := row.Scan(&p.Name, &p.Email, &p.IsPremium, &p.IdentityStatement, &focusAreas, &p.Narrative)
	if err == sql.ErrNoRows {
		return models.UserProfile{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.UserProfile{}, err
	}

	if err := json.Unmarshal(focusAreas, &p.FocusAreas); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse focus_areas: %w", err)
	}

	return p, nil
}

func (s *PostgresStore) SaveProfile(profile models.UserProfile) error {
	focusAreas, err := json.Marshal(profile.FocusAreas)
	if err != nil {
		return fmt.Errorf("failed to serialize focus_areas: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO profiles (user_id, name, email, is_premium, identity_statement, focus_areas, narrative, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			is_premium = excluded.is_premium,
			identity_statement = excluded.identity_statement,
			focus_areas = excluded.focus_areas,
			narrative = excluded.narrative,
			updated_at = excluded.updated_at
		WHERE profiles.updated_at <= excluded.updated_at`,
		s.userID, profile.Name, profile.Email, profile.IsPremium,
		profile.IdentityStatement, string(focusAreas), profile.Narrative,
		time.Now().UTC())
	return err
}

// GetAllHabits reads every habit for the user ordered by creation time
// descending, matching the hosted table contract
func (s *PostgresStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, frequency, days_of_week, time, description,
			streak, completed_dates, created_at, is_one_time, specific_dates,
			start_date, end_date
		FROM habits WHERE user_id = $1
		ORDER BY created_at DESC`, s.userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		var daysOfWeek, completedDates, specificDates []byte

		err := rows.Scan(&h.ID, &h.Name, &h.Category, &h.Frequency, &daysOfWeek,
			&h.Time, &h.Description, &h.Streak, &completedDates, &h.CreatedAt,
			&h.IsOneTime, &specificDates, &h.StartDate, &h.EndDate)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(daysOfWeek, &h.DaysOfWeek); err != nil {
			return nil, fmt.Errorf("failed to parse days_of_week: %w", err)
		}
		if err := json.Unmarshal(completedDates, &h.CompletedDates); err != nil {
			return nil, fmt.Errorf("failed to parse completed_dates: %w", err)
		}
		if err := json.Unmarshal(specificDates, &h.SpecificDates); err != nil {
			return nil, fmt.Errorf("failed to parse specific_dates: %w", err)
		}

		habits = append(habits, h)
	}

	return habits, rows.Err()
}

// SaveHabits upserts every habit by id (last-write-wins on updated_at) and
// prunes the user's rows that are no longer in the collection, so explicit
// deletes propagate
func (s *PostgresStore) SaveHabits(habits []models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	ids := make([]string, 0, len(habits))

	for _, h := range habits {
		ids = append(ids, h.ID)

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

		_, err = tx.Exec(`
			INSERT INTO habits (id, user_id, name, category, frequency, days_of_week,
				time, description, streak, completed_dates, created_at, is_one_time,
				specific_dates, start_date, end_date, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				category = excluded.category,
				frequency = excluded.frequency,
				days_of_week = excluded.days_of_week,
				time = excluded.time,
				description = excluded.description,
				streak = excluded.streak,
				completed_dates = excluded.completed_dates,
				is_one_time = excluded.is_one_time,
				specific_dates = excluded.specific_dates,
				start_date = excluded.start_date,
				end_date = excluded.end_date,
				updated_at = excluded.updated_at
			WHERE habits.updated_at <= excluded.updated_at`,
			h.ID, s.userID, h.Name, string(h.Category), string(h.Frequency),
			string(daysOfWeek), h.Time, h.Description, h.Streak,
			string(completedDates), h.CreatedAt, h.IsOneTime,
			string(specificDates), h.StartDate, h.EndDate, now)
		if err != nil {
			return fmt.Errorf("failed to upsert habit %s: %w", h.ID, err)
		}
	}

	idsJSON, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to serialize habit ids: %w", err)
	}
	_, err = tx.Exec(`
		DELETE FROM habits
		WHERE user_id = $1
		AND id NOT IN (SELECT jsonb_array_elements_text($2::jsonb))`,
		s.userID, string(idsJSON))
	if err != nil {
		return fmt.Errorf("failed to prune habits: %w", err)
	}

	return tx.Commit()
}

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
