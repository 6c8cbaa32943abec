package model

import (
	"time"

	"github.com/google/uuid"
)

// StudentDetail holds the registry fields a student fills in during
// registration, one-to-one with Profile. Rows are upserted, never deleted.
type StudentDetail struct {
	ProfileID uuid.UUID `json:"profile_id"`
	CNE       string    `json:"cne"`
	CIN       string    `json:"cin"`
	BirthDate time.Time `json:"birth_date"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentDetailRequest is the payload for the student profile form.
// birth_date uses the HTML date input format (2006-01-02).
type StudentDetailRequest struct {
	CNE       string `json:"cne" binding:"required,max=30"`
	CIN       string `json:"cin" binding:"required,max=30"`
	BirthDate string `json:"birth_date" binding:"required,datetime=2006-01-02"`
	Address   string `json:"address" binding:"required,max=500"`
	Phone     string `json:"phone" binding:"required,max=30"`
}
