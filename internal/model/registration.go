package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistrationStatus is the review status of a registration.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationValidated RegistrationStatus = "validated"
	RegistrationRejected  RegistrationStatus = "rejected"
)

// Registration is one student's application for a given academic year
// and major. Created as pending; an agent later validates or rejects it.
type Registration struct {
	ID              uuid.UUID          `json:"id"`
	StudentID       uuid.UUID          `json:"student_id"`
	AcademicYearID  int                `json:"academic_year_id"`
	MajorID         int                `json:"major_id"`
	Level           string             `json:"level"`
	Status          RegistrationStatus `json:"status"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// RegistrationDetail enriches Registration with joined reference names
// and the student identity, for dashboards and the review queue.
type RegistrationDetail struct {
	Registration
	MajorName    string `json:"major_name"`
	YearName     string `json:"academic_year_name"`
	StudentName  string `json:"student_name"`
	StudentEmail string `json:"student_email"`
}

// RejectRequest carries the mandatory reason for rejecting a registration.
type RejectRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}
