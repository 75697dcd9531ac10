package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Get(ctx context.Context) (*ReturnAppSettings, error)
	Save(ctx context.Context, s *ReturnAppSettings) error
}

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

// The settings document lives in a single JSONB row; the fixed key keeps
// the table at one row per tenant database.
const settingsKey = "returnAppSettings"

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) Get(ctx context.Context) (*ReturnAppSettings, error) {
	query := `SELECT document FROM app_settings WHERE key = $1`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, settingsKey).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	var s ReturnAppSettings
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode settings document: %w", err)
	}
	return &s, nil
}

func (r *postgresRepository) Save(ctx context.Context, s *ReturnAppSettings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings document: %w", err)
	}

	query := `
		INSERT INTO app_settings (key, document, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET document = $2, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, settingsKey, raw); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
