package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/madaris/school-app-backend/internal/model"
)

// ErrMajorReferenced is returned when a major cannot be deleted because
// registrations still reference it.
var ErrMajorReferenced = errors.New("major is referenced by registrations")

type MajorRepository interface {
	GetAll(ctx context.Context) ([]*model.Major, error)
	GetByID(ctx context.Context, id int) (*model.Major, error)
	GetByCode(ctx context.Context, code string) (*model.Major, error)
	Create(ctx context.Context, major *model.Major) error
	Delete(ctx context.Context, id int) error
}

type majorRepository struct {
	db *pgxpool.Pool
}

func NewMajorRepository(db *pgxpool.Pool) MajorRepository {
	return &majorRepository{db: db}
}

func (r *majorRepository) GetAll(ctx context.Context) ([]*model.Major, error) {
	query := `SELECT id, name, code, created_at, updated_at FROM majors ORDER BY name ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var majors []*model.Major
	for rows.Next() {
		m := &model.Major{}
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		majors = append(majors, m)
	}
	return majors, rows.Err()
}

func (r *majorRepository) GetByID(ctx context.Context, id int) (*model.Major, error) {
	query := `SELECT id, name, code, created_at, updated_at FROM majors WHERE id = $1`
	m := &model.Major{}
	err := r.db.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &m.Code, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *majorRepository) GetByCode(ctx context.Context, code string) (*model.Major, error) {
	query := `SELECT id, name, code, created_at, updated_at FROM majors WHERE code = $1`
	m := &model.Major{}
	err := r.db.QueryRow(ctx, query, code).Scan(&m.ID, &m.Name, &m.Code, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *majorRepository) Create(ctx context.Context, major *model.Major) error {
	query := `
		INSERT INTO majors (name, code)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, major.Name, major.Code).Scan(&major.ID, &major.CreatedAt, &major.UpdatedAt)
}

func (r *majorRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM majors WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrMajorReferenced
		}
		return err
	}
	return nil
}
