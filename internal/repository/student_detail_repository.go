package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/madaris/school-app-backend/internal/model"
)

type StudentDetailRepository interface {
	Upsert(ctx context.Context, d *model.StudentDetail) error
	GetByProfileID(ctx context.Context, profileID uuid.UUID) (*model.StudentDetail, error)
}

type studentDetailRepository struct {
	db *pgxpool.Pool
}

func NewStudentDetailRepository(db *pgxpool.Pool) StudentDetailRepository {
	return &studentDetailRepository{db: db}
}

// Upsert inserts or replaces the one-to-one detail row for a profile.
func (r *studentDetailRepository) Upsert(ctx context.Context, d *model.StudentDetail) error {
	query := `
		INSERT INTO student_details (profile_id, cne, cin, birth_date, address, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (profile_id) DO UPDATE
		SET cne = EXCLUDED.cne,
		    cin = EXCLUDED.cin,
		    birth_date = EXCLUDED.birth_date,
		    address = EXCLUDED.address,
		    phone = EXCLUDED.phone,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query,
		d.ProfileID, d.CNE, d.CIN, d.BirthDate, d.Address, d.Phone,
	).Scan(&d.UpdatedAt)
}

func (r *studentDetailRepository) GetByProfileID(ctx context.Context, profileID uuid.UUID) (*model.StudentDetail, error) {
	query := `SELECT profile_id, cne, cin, birth_date, address, phone, updated_at
		FROM student_details WHERE profile_id = $1`
	d := &model.StudentDetail{}
	err := r.db.QueryRow(ctx, query, profileID).Scan(
		&d.ProfileID, &d.CNE, &d.CIN, &d.BirthDate, &d.Address, &d.Phone, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}
