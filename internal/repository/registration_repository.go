package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/madaris/school-app-backend/internal/model"
)

// ErrNotPending is returned when a review action targets a registration
// that already left the pending state. pending → validated|rejected are
// the only permitted transitions.
var ErrNotPending = errors.New("registration is not pending")

type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationDetail, error)
	List(ctx context.Context, status *model.RegistrationStatus) ([]model.RegistrationDetail, error)
	// SetStatus moves a pending registration to validated or rejected.
	SetStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus, reason *string) error
}

type registrationRepository struct {
	db *pgxpool.Pool
}

func NewRegistrationRepository(db *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	query := `
		INSERT INTO registrations (student_id, academic_year_id, major_id, level, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query,
		reg.StudentID, reg.AcademicYearID, reg.MajorID, reg.Level, reg.Status,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

func (r *registrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	query := `SELECT id, student_id, academic_year_id, major_id, level, status, rejection_reason, created_at, updated_at
		FROM registrations WHERE id = $1`
	reg := &model.Registration{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reg.ID, &reg.StudentID, &reg.AcademicYearID, &reg.MajorID, &reg.Level,
		&reg.Status, &reg.RejectionReason, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

const registrationDetailSelect = `
	SELECT r.id, r.student_id, r.academic_year_id, r.major_id, r.level,
	       r.status, r.rejection_reason, r.created_at, r.updated_at,
	       m.name, y.name, p.full_name, p.email
	FROM registrations r
	JOIN majors m ON m.id = r.major_id
	JOIN academic_years y ON y.id = r.academic_year_id
	JOIN profiles p ON p.id = r.student_id
`

func scanRegistrationDetails(rows pgx.Rows) ([]model.RegistrationDetail, error) {
	defer rows.Close()
	details := []model.RegistrationDetail{}
	for rows.Next() {
		var d model.RegistrationDetail
		err := rows.Scan(
			&d.ID, &d.StudentID, &d.AcademicYearID, &d.MajorID, &d.Level,
			&d.Status, &d.RejectionReason, &d.CreatedAt, &d.UpdatedAt,
			&d.MajorName, &d.YearName, &d.StudentName, &d.StudentEmail)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func (r *registrationRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.RegistrationDetail, error) {
	rows, err := r.db.Query(ctx,
		registrationDetailSelect+` WHERE r.student_id = $1 ORDER BY r.created_at DESC`,
		studentID)
	if err != nil {
		return nil, err
	}
	return scanRegistrationDetails(rows)
}

func (r *registrationRepository) List(ctx context.Context, status *model.RegistrationStatus) ([]model.RegistrationDetail, error) {
	if status != nil {
		rows, err := r.db.Query(ctx,
			registrationDetailSelect+` WHERE r.status = $1 ORDER BY r.created_at DESC`,
			*status)
		if err != nil {
			return nil, err
		}
		return scanRegistrationDetails(rows)
	}

	rows, err := r.db.Query(ctx, registrationDetailSelect+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return scanRegistrationDetails(rows)
}

func (r *registrationRepository) SetStatus(ctx context.Context, id uuid.UUID, status model.RegistrationStatus, reason *string) error {
	query := `
		UPDATE registrations
		SET status = $1, rejection_reason = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = $4
	`
	tag, err := r.db.Exec(ctx, query, status, reason, id, model.RegistrationPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing row from an already-reviewed one.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return getErr
		}
		return ErrNotPending
	}
	return nil
}
