package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

var ErrDuplicateCandidate = errors.New("candidate already exists")

const candidateColumns = `id, name, stage, application_date, overall_score, is_referral, assessment_status,
	has_details, email, phone, position, experience, skills, created_at, updated_at`

type CandidateRepository struct {
	DB *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{DB: db}
}

func (r *CandidateRepository) Create(ctx context.Context, c *entity.Candidate) error {
	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	d := detailsOrEmpty(c.Details)

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		string(c.Stage),
		c.ApplicationDate,
		c.OverallScore,
		c.IsReferral,
		string(c.AssessmentStatus),
		c.Details != nil,
		d.Email,
		d.Phone,
		d.Position,
		d.Experience,
		pq.Array(d.Skills),
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateCandidate
		}
		log.Printf("[REPO] insert candidate %s: %v", c.ID, err)
		return fmt.Errorf("insert candidate: %w", err)
	}
	return nil
}

func (r *CandidateRepository) FindByID(ctx context.Context, id string) (*entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	c, err := scanCandidate(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrCandidateNotFound
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
			// malformed uuid
			return nil, entity.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("find candidate: %w", err)
	}
	return c, nil
}

// List returns every candidate, most recent application first.
func (r *CandidateRepository) List(ctx context.Context) ([]entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY application_date DESC, id`
	return r.query(ctx, query)
}

func (r *CandidateRepository) ListByStage(ctx context.Context, stage entity.Stage) ([]entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE stage = $1 ORDER BY application_date DESC, id`
	return r.query(ctx, query, string(stage))
}

func (r *CandidateRepository) Update(ctx context.Context, c *entity.Candidate) error {
	query := `
		UPDATE candidates SET
			name = $2, stage = $3, application_date = $4, overall_score = $5, is_referral = $6,
			assessment_status = $7, has_details = $8, email = $9, phone = $10, position = $11,
			experience = $12, skills = $13, updated_at = $14
		WHERE id = $1
	`
	d := detailsOrEmpty(c.Details)

	res, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.Name,
		string(c.Stage),
		c.ApplicationDate,
		c.OverallScore,
		c.IsReferral,
		string(c.AssessmentStatus),
		c.Details != nil,
		d.Email,
		d.Phone,
		d.Position,
		d.Experience,
		pq.Array(d.Skills),
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update candidate: %w", err)
	}
	return expectOneRow(res)
}

func (r *CandidateRepository) UpdateStage(ctx context.Context, id string, stage entity.Stage, updatedAt time.Time) error {
	query := `UPDATE candidates SET stage = $2, updated_at = $3 WHERE id = $1`
	res, err := r.DB.ExecContext(ctx, query, id, string(stage), updatedAt)
	if err != nil {
		return fmt.Errorf("update candidate stage: %w", err)
	}
	return expectOneRow(res)
}

func (r *CandidateRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	return expectOneRow(res)
}

func (r *CandidateRepository) query(ctx context.Context, query string, args ...any) ([]entity.Candidate, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []entity.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanCandidate parses the enum columns strictly; a row outside the closed sets is an error.
func scanCandidate(row rowScanner) (*entity.Candidate, error) {
	var (
		c          entity.Candidate
		stage      string
		status     string
		hasDetails bool
		d          entity.Details
	)
	err := row.Scan(
		&c.ID,
		&c.Name,
		&stage,
		&c.ApplicationDate,
		&c.OverallScore,
		&c.IsReferral,
		&status,
		&hasDetails,
		&d.Email,
		&d.Phone,
		&d.Position,
		&d.Experience,
		pq.Array(&d.Skills),
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if c.Stage, err = entity.ParseStage(stage); err != nil {
		return nil, err
	}
	if c.AssessmentStatus, err = entity.ParseAssessmentStatus(status); err != nil {
		return nil, err
	}
	if hasDetails {
		if d.Skills == nil {
			d.Skills = []string{}
		}
		c.Details = &d
	}
	return &c, nil
}

func detailsOrEmpty(d *entity.Details) entity.Details {
	if d == nil {
		return entity.Details{Skills: []string{}}
	}
	out := *d
	if out.Skills == nil {
		out.Skills = []string{}
	}
	return out
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrCandidateNotFound
	}
	return nil
}
