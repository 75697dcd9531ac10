package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

// Documents are stored whole as JSONB with the status denormalized into its
// own column so transitions can be guarded with a conditional update.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Create(ctx context.Context, request *model.ReturnRequest) (string, error) {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}

	document, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to encode return request: %w", err)
	}

	query := `
		INSERT INTO return_requests (id, sequence_number, status, customer_email, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`

	_, err = r.pool.Exec(ctx, query,
		request.ID,
		request.SequenceNumber,
		string(request.Status),
		request.CustomerProfileData.Email,
		document,
	)
	if err != nil {
		return "", fmt.Errorf("failed to create return request: %w", err)
	}

	return request.ID, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id string) (*model.ReturnRequest, error) {
	query := `SELECT document FROM return_requests WHERE id = $1`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.NewNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load return request %s: %w", id, err)
	}

	var request model.ReturnRequest
	if err := json.Unmarshal(raw, &request); err != nil {
		return nil, fmt.Errorf("failed to decode return request %s: %w", id, err)
	}

	return &request, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, request *model.ReturnRequest, expectedStatus model.Status) error {
	document, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to encode return request: %w", err)
	}

	// Conditional write: the row is only touched when the stored status
	// still matches what the caller based its transition on.
	query := `
		UPDATE return_requests
		SET status = $1, document = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
	`

	tag, err := r.pool.Exec(ctx, query,
		string(request.Status),
		document,
		request.ID,
		string(expectedStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to update return request %s: %w", request.ID, err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish a lost race from a missing document
		var exists bool
		checkErr := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM return_requests WHERE id = $1)`,
			request.ID,
		).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("failed to check return request %s: %w", request.ID, checkErr)
		}
		if !exists {
			return model.NewNotFoundError(request.ID)
		}
		return model.NewConflictError(request.ID)
	}

	return nil
}
