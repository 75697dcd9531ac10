package service

import (
	"context"
	"fmt"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
)

// =====================================================
// STATUS TRANSITION ENGINE
// =====================================================

// UpdateReturnRequestStatus applies one caller-chosen transition.
//
// The transition is validated against the base table (plus the role-aware
// cancellation sub-table), appended to the status history, and persisted
// with a conditional write keyed on the status the decision was based on.
// A concurrent transition on the same request surfaces as a conflict error
// the caller can retry; it is never silently merged.
func (s *returnRequestService) UpdateReturnRequestStatus(
	ctx context.Context,
	caller Caller,
	id string,
	input model.UpdateStatusInput,
) (*model.ReturnRequest, error) {
	// Step 1: validate input
	if err := input.Validate(); err != nil {
		return nil, model.NewInputError(model.ErrCodeInvalidTransition, err.Error())
	}

	target, ok := model.ParseStatus(input.Status)
	if !ok {
		return nil, model.NewInputError(
			model.ErrCodeInvalidTransition,
			fmt.Sprintf("Unknown status %q", input.Status),
		)
	}

	// Step 2: load current state
	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current := request.Status

	// Step 3: consult the transition tables. Cancellation has its own
	// role-specific authorization on top of the base table.
	if target == model.StatusCancelled {
		if !model.CanTransition(current, target) || !model.CanCancel(caller.Role, current) {
			return nil, model.NewInvalidTransitionError(current, target)
		}
	} else if !model.CanTransition(current, target) {
		return nil, model.NewInvalidTransitionError(current, target)
	}

	// Step 4: apply. Every accepted transition, self-loops included,
	// appends exactly one history entry.
	s.applyTransition(request, caller, target, input.Comment, input.VisibleForCustomer)

	if target == model.StatusAmountRefunded && request.RefundData == nil {
		request.RefundData = buildRefundData(request, input.RefundData)
	}

	// Step 5: conditional persist keyed on the observed status
	if err := s.repo.UpdateStatus(ctx, request, current); err != nil {
		return nil, err
	}

	// Step 6: best-effort status notification
	s.sendStatusUpdateMail(ctx, request)

	return request, nil
}

// =====================================================
// VERIFICATION RESOLUTION
// =====================================================

// ResolveVerification is the only way out of pendingVerification: the
// outcome is derived from item-level verification, not chosen by a caller.
// All items approved moves the request to packageVerified; any rejection
// denies it.
func (s *returnRequestService) ResolveVerification(
	ctx context.Context,
	caller Caller,
	id string,
	input model.VerifyItemsInput,
) (*model.ReturnRequest, error) {
	if err := input.Validate(); err != nil {
		return nil, model.NewInputError(model.ErrCodeNotPendingVerification, err.Error())
	}

	request, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current := request.Status

	if current != model.StatusPendingVerification {
		return nil, model.NewPolicyError(
			model.ErrCodeNotPendingVerification,
			fmt.Sprintf("Return request is %q, verification can only be resolved from %q",
				current, model.StatusPendingVerification),
		)
	}

	// Item outcomes: unmentioned items count as approved
	outcomes := make(map[string]bool, len(input.Items))
	for _, v := range input.Items {
		outcomes[v.SkuID] = v.Approved
	}

	target := model.StatusPackageVerified
	for i := range request.Items {
		approved, mentioned := outcomes[request.Items[i].SkuID]
		if mentioned && !approved {
			request.Items[i].VerificationStatus = "denied"
			target = model.StatusDenied
			continue
		}
		request.Items[i].VerificationStatus = "approved"
	}

	s.applyTransition(request, caller, target, input.Comment, false)

	if err := s.repo.UpdateStatus(ctx, request, current); err != nil {
		return nil, err
	}

	s.sendStatusUpdateMail(ctx, request)

	return request, nil
}

// =====================================================
// SHARED TRANSITION MECHANICS
// =====================================================

func (s *returnRequestService) applyTransition(
	request *model.ReturnRequest,
	caller Caller,
	target model.Status,
	comment string,
	visibleForCustomer bool,
) {
	now := s.now()

	var comments []model.Comment
	if comment != "" {
		comments = append(comments, model.Comment{
			Comment:            comment,
			CreatedAt:          now,
			SubmittedBy:        caller.ID,
			VisibleForCustomer: visibleForCustomer,
			Role:               caller.Role,
		})
	}

	request.Status = target
	request.RefundStatusData = append(request.RefundStatusData, model.RefundStatusEntry{
		Status:      target,
		SubmittedBy: caller.ID,
		CreatedAt:   now,
		Comments:    comments,
	})
}

// buildRefundData records the resolution payload. The invoice value is the
// computed refundable amount; the gift card reference comes from the caller
// when the refund was issued as store credit.
func buildRefundData(request *model.ReturnRequest, input *model.RefundDataInput) *model.RefundData {
	data := &model.RefundData{
		InvoiceValue: request.RefundableAmount,
	}
	if input != nil {
		data.InvoiceNumber = input.InvoiceNumber
		data.GiftCard = input.GiftCard
	}
	return data
}
