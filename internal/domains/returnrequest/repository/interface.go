package repository

import (
	"context"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
)

// Repository is the durable document store for return requests. It is the
// single source of truth for request state; nothing is cached across
// requests and nothing is ever deleted.
type Repository interface {
	// Create persists the document and returns the assigned document id.
	Create(ctx context.Context, request *model.ReturnRequest) (string, error)

	GetByID(ctx context.Context, id string) (*model.ReturnRequest, error)

	// UpdateStatus persists the mutated document conditionally on the
	// stored status still being expectedStatus. A precondition miss
	// returns a conflict error so concurrent transitions serialize
	// instead of silently merging.
	UpdateStatus(ctx context.Context, request *model.ReturnRequest, expectedStatus model.Status) error
}
