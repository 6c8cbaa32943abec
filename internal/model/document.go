package model

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType tags an uploaded file with the required-document slot it
// fills.
type DocumentType string

const (
	DocumentCIN         DocumentType = "CIN"
	DocumentBAC         DocumentType = "BAC"
	DocumentReleveNotes DocumentType = "RELEVE_NOTES"
	DocumentPhoto       DocumentType = "PHOTO"
)

// DocumentSlots lists the four upload slots in submission order. The
// order is fixed so a mid-submission upload failure always leaves a
// deterministic prefix of documents behind.
var DocumentSlots = [4]DocumentType{
	DocumentCIN,
	DocumentBAC,
	DocumentReleveNotes,
	DocumentPhoto,
}

// Document is an uploaded file attached to a registration. FileURL is
// only ever set after the underlying upload succeeded.
type Document struct {
	ID             int          `json:"id"`
	RegistrationID uuid.UUID    `json:"registration_id"`
	Type           DocumentType `json:"type"`
	FileURL        string       `json:"file_url"`
	CreatedAt      time.Time    `json:"created_at"`
}
