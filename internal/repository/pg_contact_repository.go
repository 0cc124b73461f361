package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/portfolio/backend/internal/model"
)

// rowQuerier is the subset of *pgxpool.Pool used by PgContactRepository.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	db rowQuerier
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(db rowQuerier) *PgContactRepository {
	return &PgContactRepository{db: db}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Create inserts a contact_submissions row and populates s.ID and s.CreatedAt
// from the RETURNING clause.
func (r *PgContactRepository) Create(ctx context.Context, s *model.ContactSubmission) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO contact_submissions (name, email, subject, message, status, form_type)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		s.Name, s.Email, s.Subject, s.Message, string(s.Status), string(s.FormType),
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert contact submission: %w", ErrStoreUnavailable, err)
	}
	return nil
}
