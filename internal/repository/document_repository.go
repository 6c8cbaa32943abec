package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/madaris/school-app-backend/internal/model"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]model.Document, error)
}

type documentRepository struct {
	db *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *model.Document) error {
	query := `
		INSERT INTO documents (registration_id, type, file_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, doc.RegistrationID, doc.Type, doc.FileURL).Scan(&doc.ID, &doc.CreatedAt)
}

func (r *documentRepository) ListByRegistration(ctx context.Context, registrationID uuid.UUID) ([]model.Document, error) {
	query := `SELECT id, registration_id, type, file_url, created_at
		FROM documents WHERE registration_id = $1 ORDER BY id`
	rows, err := r.db.Query(ctx, query, registrationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.RegistrationID, &d.Type, &d.FileURL, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
