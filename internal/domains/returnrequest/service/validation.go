package service

import (
	"fmt"
	"time"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/settings"
)

// Pure policy validators. No I/O here: callers load settings and order data
// first, then run these in creation order. Item scans iterate in item order
// so the reported index is deterministic.

// validateReturnReasons checks every item carries a reason and, when custom
// reasons are configured, that each reason (or one of its translations)
// matches. orderCreationDate is nil for independent returns, which skips
// the max-days window check entirely.
func validateReturnReasons(
	items []model.ReturnItemInput,
	orderCreationDate *time.Time,
	customReasons []settings.CustomReturnReason,
	now time.Time,
) error {
	for i, item := range items {
		if item.ReturnReason.Reason == "" {
			return model.NewItemInputError(
				model.ErrCodeMissingReason,
				fmt.Sprintf("Item index %d has no return reason. Reason cannot be empty", i),
				i,
			)
		}
	}

	if len(customReasons) == 0 {
		return nil
	}

	maxDaysPerReason := make(map[string]int)
	for _, custom := range customReasons {
		maxDaysPerReason[custom.Reason] = custom.MaxDays
		for _, t := range custom.Translations {
			maxDaysPerReason[t.Translation] = custom.MaxDays
		}
	}

	for i, item := range items {
		reason := item.ReturnReason.Reason
		if reason == model.ReasonOther {
			continue
		}

		maxDays, ok := maxDaysPerReason[reason]
		if !ok {
			return model.NewItemPolicyError(
				model.ErrCodeInvalidReason,
				fmt.Sprintf("Item index %d doesn't have a valid return reason", i),
				i,
			)
		}

		if orderCreationDate != nil && !isWithinMaxDays(*orderCreationDate, maxDays, now) {
			return model.NewItemPolicyError(
				model.ErrCodeOutsideMaxDays,
				fmt.Sprintf("Item index %d is not within %d days for the reason %q", i, maxDays, reason),
				i,
			)
		}
	}

	return nil
}

func isWithinMaxDays(orderCreationDate time.Time, maxDays int, now time.Time) bool {
	deadline := orderCreationDate.AddDate(0, 0, maxDays)
	return !now.After(deadline)
}

// validatePaymentMethod checks the requested refund method against the
// tenant's payment options. The independent-return ban on sameAsPurchase is
// enforced earlier by the creation flow; here sameAsPurchase is always
// acceptable because it needs no configured payout type.
func validatePaymentMethod(input model.RefundPaymentDataInput, opts settings.PaymentOptions) error {
	method := input.RefundPaymentMethod

	if method == model.PaymentMethodSameAsPurchase {
		return nil
	}

	if !opts.EnablePaymentMethodSelection {
		return model.NewPolicyError(
			model.ErrCodeInvalidPaymentMethod,
			"Payment method selection is disabled, only sameAsPurchase is accepted",
		)
	}

	allowed := map[string]bool{
		model.PaymentMethodBank:     opts.AllowedPaymentTypes.Bank,
		model.PaymentMethodCard:     opts.AllowedPaymentTypes.Card,
		model.PaymentMethodGiftCard: opts.AllowedPaymentTypes.GiftCard,
	}

	if !allowed[method] {
		return model.NewPolicyError(
			model.ErrCodeInvalidPaymentMethod,
			fmt.Sprintf("Payment method %q is not enabled in the return settings", method),
		)
	}

	return nil
}

// validatePickupAddress rejects pickup-point addresses when the tenant has
// pickup points disabled.
func validatePickupAddress(pickup model.PickupReturnData, pickupPointsEnabled bool) error {
	if pickup.AddressType == model.AddressTypePickupPoint && !pickupPointsEnabled {
		return model.NewPolicyError(
			model.ErrCodePickupPointsDisabled,
			"Dropoff points are not enabled",
		)
	}
	return nil
}

// validateItemConditions requires a concrete condition on every item when
// the tenant enables condition selection.
func validateItemConditions(items []model.ReturnItemInput, conditionRequired bool) error {
	if !conditionRequired {
		return nil
	}

	for i, item := range items {
		if item.Condition == "" || item.Condition == model.ConditionUnspecified {
			return model.NewItemInputError(
				model.ErrCodeConditionRequired,
				fmt.Sprintf("Item index %d has no item condition. Account settings state that item condition cannot be unspecified", i),
				i,
			)
		}
	}
	return nil
}
