package service

import (
	"context"

	"github.com/madaris/school-app-backend/internal/model"
	"github.com/madaris/school-app-backend/internal/repository"
)

// AdminDashboardData consolidates the admin dashboard metrics.
type AdminDashboardData struct {
	TotalStudents      int                              `json:"total_students"`
	TotalMajors        int                              `json:"total_majors"`
	TotalRegistrations int                              `json:"total_registrations"`
	StatusCounts       map[model.RegistrationStatus]int `json:"status_counts"`
	MajorDistribution  []repository.MajorDistribution   `json:"major_distribution"`
}

// AgentDashboardData is the agent's review-queue summary.
type AgentDashboardData struct {
	Pending   int `json:"pending"`
	Validated int `json:"validated"`
	Rejected  int `json:"rejected"`
}

// DashboardService assembles role-specific dashboard reads. Every call
// hits the store; results reflect the counts at fetch time.
type DashboardService struct {
	repo *repository.DashboardRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(repo *repository.DashboardRepository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetAdminDashboard returns summary counts plus the per-major
// registration distribution sorted descending.
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboardData, error) {
	students, majors, registrations, err := s.repo.GetSummaryCounts(ctx)
	if err != nil {
		return nil, err
	}

	statusCounts, err := s.repo.GetStatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	dist, err := s.repo.GetMajorDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &AdminDashboardData{
		TotalStudents:      students,
		TotalMajors:        majors,
		TotalRegistrations: registrations,
		StatusCounts:       statusCounts,
		MajorDistribution:  dist,
	}, nil
}

// GetAgentDashboard returns registration counts by review status.
func (s *DashboardService) GetAgentDashboard(ctx context.Context) (*AgentDashboardData, error) {
	counts, err := s.repo.GetStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	return &AgentDashboardData{
		Pending:   counts[model.RegistrationPending],
		Validated: counts[model.RegistrationValidated],
		Rejected:  counts[model.RegistrationRejected],
	}, nil
}
