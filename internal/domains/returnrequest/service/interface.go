package service

import (
	"context"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
)

// Caller is the authenticated identity driving an operation. ID becomes
// submittedBy on status history entries; Role feeds the cancellation
// sub-table.
type Caller struct {
	ID    string
	Email string
	Role  string
}

type ReturnRequestService interface {
	// CreateIndependentReturnRequest creates a return not tied to one
	// order, validated against the customer's aggregate purchase history.
	CreateIndependentReturnRequest(ctx context.Context, caller Caller, input model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error)

	// CreateOrderBoundReturnRequest creates a return against a specific
	// order, with order-date-aware policy checks.
	CreateOrderBoundReturnRequest(ctx context.Context, caller Caller, orderID string, input model.CreateReturnRequestInput) (*model.ReturnRequestCreated, error)

	GetReturnRequest(ctx context.Context, id string) (*model.ReturnRequest, error)

	// ListEligibleProducts lists products from the customer's purchase
	// history that can back an independent return. Best-effort
	// enrichment: SKUs that fail catalog resolution are skipped.
	ListEligibleProducts(ctx context.Context, customerEmail, searchTerm string) ([]model.ProductSummary, error)

	// UpdateReturnRequestStatus applies one transition of the state
	// machine on behalf of the caller.
	UpdateReturnRequestStatus(ctx context.Context, caller Caller, id string, input model.UpdateStatusInput) (*model.ReturnRequest, error)

	// ResolveVerification moves a pendingVerification request to
	// packageVerified or denied from the item-level verification outcome.
	ResolveVerification(ctx context.Context, caller Caller, id string, input model.VerifyItemsInput) (*model.ReturnRequest, error)
}
