package model

import "time"

// AcademicYear represents a school year against which registrations are
// accepted. At most one row should be active at a time; the rule is
// enforced by the academic year service, not by the schema.
type AcademicYear struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AcademicYearRequest is the payload for creating an academic year.
// New years are always created inactive.
type AcademicYearRequest struct {
	Name      string `json:"name" binding:"required,max=50"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}
