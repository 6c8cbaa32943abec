package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/madaris/school-app-backend/internal/model"
)

// DashboardRepository handles dashboard data access. All reads are
// single round trips against live tables; nothing is cached.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level admin dashboard metrics.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (totalStudents, totalMajors, totalRegistrations int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM profiles WHERE role = $1),
			(SELECT COUNT(*) FROM majors),
			(SELECT COUNT(*) FROM registrations)`,
		model.RoleStudent,
	).Scan(&totalStudents, &totalMajors, &totalRegistrations)
	return
}

// GetStatusCounts retrieves the distribution of registrations by review
// status.
func (r *DashboardRepository) GetStatusCounts(ctx context.Context) (map[model.RegistrationStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM registrations GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.RegistrationStatus]int)
	for rows.Next() {
		var status model.RegistrationStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// MajorDistribution is one row of the per-major registration breakdown.
type MajorDistribution struct {
	MajorName string `json:"major_name"`
	Count     int    `json:"count"`
}

// GetMajorDistribution retrieves registration counts grouped by major
// name, most popular first. Majors with no registrations are included
// with a zero count.
func (r *DashboardRepository) GetMajorDistribution(ctx context.Context) ([]MajorDistribution, error) {
	query := `
		SELECT m.name, COUNT(r.id)
		FROM majors m
		LEFT JOIN registrations r ON r.major_id = m.id
		GROUP BY m.name
		ORDER BY COUNT(r.id) DESC, m.name ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dist := []MajorDistribution{}
	for rows.Next() {
		var d MajorDistribution
		if err := rows.Scan(&d.MajorName, &d.Count); err != nil {
			return nil, err
		}
		dist = append(dist, d)
	}
	return dist, rows.Err()
}
