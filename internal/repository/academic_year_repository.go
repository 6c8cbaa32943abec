package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/madaris/school-app-backend/internal/model"
)

// ErrNoActiveYear is returned when no academic year is flagged active.
var ErrNoActiveYear = errors.New("no active academic year")

// ErrYearNameTaken is returned when an academic year with the same name
// already exists.
var ErrYearNameTaken = errors.New("academic year name already exists")

type AcademicYearRepository interface {
	GetAll(ctx context.Context) ([]*model.AcademicYear, error)
	GetByID(ctx context.Context, id int) (*model.AcademicYear, error)
	// GetActive returns the single active year, or ErrNoActiveYear.
	GetActive(ctx context.Context) (*model.AcademicYear, error)
	Create(ctx context.Context, year *model.AcademicYear) error
	// SetActive clears the active flag on every other year and sets it
	// on id, inside one transaction.
	SetActive(ctx context.Context, id int) error
	Deactivate(ctx context.Context, id int) error
}

type academicYearRepository struct {
	db *pgxpool.Pool
}

func NewAcademicYearRepository(db *pgxpool.Pool) AcademicYearRepository {
	return &academicYearRepository{db: db}
}

func (r *academicYearRepository) GetAll(ctx context.Context) ([]*model.AcademicYear, error) {
	query := `SELECT id, name, start_date, end_date, is_active, created_at
		FROM academic_years ORDER BY start_date DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []*model.AcademicYear
	for rows.Next() {
		y := &model.AcademicYear{}
		if err := rows.Scan(&y.ID, &y.Name, &y.StartDate, &y.EndDate, &y.IsActive, &y.CreatedAt); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (r *academicYearRepository) GetByID(ctx context.Context, id int) (*model.AcademicYear, error) {
	query := `SELECT id, name, start_date, end_date, is_active, created_at
		FROM academic_years WHERE id = $1`
	y := &model.AcademicYear{}
	err := r.db.QueryRow(ctx, query, id).Scan(&y.ID, &y.Name, &y.StartDate, &y.EndDate, &y.IsActive, &y.CreatedAt)
	if err != nil {
		return nil, err
	}
	return y, nil
}

func (r *academicYearRepository) GetActive(ctx context.Context) (*model.AcademicYear, error) {
	query := `SELECT id, name, start_date, end_date, is_active, created_at
		FROM academic_years WHERE is_active = TRUE
		ORDER BY start_date DESC LIMIT 1`
	y := &model.AcademicYear{}
	err := r.db.QueryRow(ctx, query).Scan(&y.ID, &y.Name, &y.StartDate, &y.EndDate, &y.IsActive, &y.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActiveYear
		}
		return nil, err
	}
	return y, nil
}

func (r *academicYearRepository) Create(ctx context.Context, year *model.AcademicYear) error {
	query := `
		INSERT INTO academic_years (name, start_date, end_date, is_active)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, year.Name, year.StartDate, year.EndDate).Scan(&year.ID, &year.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrYearNameTaken
		}
		return err
	}
	return nil
}

// SetActive runs deactivate-others-then-activate as one transaction, so
// at most one row ends up active regardless of which statement commits
// first. Concurrent activations from separate connections can still
// interleave; that race is accepted.
func (r *academicYearRepository) SetActive(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE academic_years SET is_active = FALSE WHERE id <> $1`, id); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `UPDATE academic_years SET is_active = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *academicYearRepository) Deactivate(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `UPDATE academic_years SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
