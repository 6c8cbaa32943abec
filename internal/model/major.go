package model

import "time"

// Major represents a field of study students can register for.
type Major struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MajorRequest is the payload for creating a major.
type MajorRequest struct {
	Name string `json:"name" binding:"required,max=120"`
	Code string `json:"code" binding:"required,max=20"`
}
