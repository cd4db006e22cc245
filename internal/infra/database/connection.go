package database

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq" // Postgres driver
)

// NewDBConnection opens the pool and pings it before handing it out.
func NewDBConnection(connString string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id                UUID PRIMARY KEY,
	name              TEXT NOT NULL CHECK (length(trim(name)) > 0),
	stage             TEXT NOT NULL DEFAULT 'Applying Period'
		CHECK (stage IN ('Applying Period', 'Screening', 'Interview', 'Test', 'Hired')),
	application_date  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	overall_score     INTEGER NOT NULL DEFAULT 0 CHECK (overall_score BETWEEN 0 AND 100),
	is_referral       BOOLEAN NOT NULL DEFAULT FALSE,
	assessment_status TEXT NOT NULL DEFAULT 'Pending'
		CHECK (assessment_status IN ('Pending', 'In Progress', 'Completed')),
	has_details       BOOLEAN NOT NULL DEFAULT FALSE,
	email             TEXT NOT NULL DEFAULT '',
	phone             TEXT NOT NULL DEFAULT '',
	position          TEXT NOT NULL DEFAULT '',
	experience        INTEGER NOT NULL DEFAULT 0 CHECK (experience >= 0),
	skills            TEXT[] NOT NULL DEFAULT '{}',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_candidates_application_date ON candidates (application_date DESC);
CREATE INDEX IF NOT EXISTS idx_candidates_stage ON candidates (stage);
`

// Migrate creates the candidates table when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
