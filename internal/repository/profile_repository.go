package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/madaris/school-app-backend/internal/model"
)

var ErrDuplicateEmail = errors.New("profile with this email already exists")

// ProfileRepository handles portal account data access.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Create inserts a new profile and fills in the generated id and timestamps.
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO profiles (full_name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		p.FullName, p.Email, p.PasswordHash, p.Role,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves a profile by id.
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, role, created_at, updated_at
		 FROM profiles WHERE id = $1`, id,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetByEmail retrieves a profile by its unique email.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	p := &model.Profile{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, role, created_at, updated_at
		 FROM profiles WHERE email = $1`, email,
	).Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// List retrieves profiles newest-first with optional role filter and
// case-insensitive name/email search, paginated.
func (r *ProfileRepository) List(ctx context.Context, role *model.Role, search string, limit, offset int) ([]model.Profile, int, error) {
	where := ``
	args := []interface{}{}

	if role != nil {
		args = append(args, *role)
		where += ` AND role = $` + strconv.Itoa(len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		idx := strconv.Itoa(len(args))
		where += ` AND (full_name ILIKE $` + idx + ` OR email ILIKE $` + idx + `)`
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles WHERE 1=1`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, full_name, email, password_hash, role, created_at, updated_at
		FROM profiles WHERE 1=1` + where +
		` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	profiles := []model.Profile{}
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.PasswordHash, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		profiles = append(profiles, p)
	}
	return profiles, total, rows.Err()
}
