package model

import (
	"errors"
	"fmt"
)

// =====================================================
// ERROR KINDS
// =====================================================

// Kind classifies an error for transport mapping: input and policy errors
// are caller-fixable, upstream errors are retryable, configuration errors
// are server misconfiguration.
type Kind string

const (
	KindInput         Kind = "input"
	KindPolicy        Kind = "policy"
	KindNotFound      Kind = "notFound"
	KindConflict      Kind = "conflict"
	KindUpstream      Kind = "upstream"
	KindConfiguration Kind = "configuration"
)

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeEmptyItems             = "RET001"
	ErrCodeMissingSkuID           = "RET002"
	ErrCodeMissingReason          = "RET003"
	ErrCodeInvalidReason          = "RET004"
	ErrCodeOutsideMaxDays         = "RET005"
	ErrCodeInvalidPaymentMethod   = "RET006"
	ErrCodePickupPointsDisabled   = "RET007"
	ErrCodeConditionRequired      = "RET008"
	ErrCodeSkuNotPurchased        = "RET009"
	ErrCodeSkuNotInCatalog        = "RET010"
	ErrCodeRequestNotFound        = "RET011"
	ErrCodeInvalidTransition      = "RET012"
	ErrCodeStatusConflict         = "RET013"
	ErrCodeSettingsMissing        = "RET014"
	ErrCodeUpstreamFailure        = "RET015"
	ErrCodeNotPendingVerification = "RET016"
	ErrCodeOrderOwnership         = "RET017"
	ErrCodeItemNotInOrder         = "RET018"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrEmptyItems           = errors.New("there are no items in the request")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrStatusConflict       = errors.New("stored status changed concurrently")
	ErrRequestNotFound      = errors.New("return request not found")
	ErrSkuNotPurchased      = errors.New("sku not found in purchase history")
	ErrSkuNotInCatalog      = errors.New("sku not available in catalog")
	ErrOutsideMaxDays       = errors.New("item outside max days to return")
	ErrInvalidPaymentMethod = errors.New("refund payment method not allowed")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================

type ReturnError struct {
	Kind    Kind
	Code    string
	Message string
	// ItemIndex addresses the offending item, -1 when not item-scoped.
	ItemIndex int
	Err       error
}

func (e *ReturnError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ReturnError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code, message string, err error) *ReturnError {
	return &ReturnError{
		Kind:      kind,
		Code:      code,
		Message:   message,
		ItemIndex: -1,
		Err:       err,
	}
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewInputError(code, message string) *ReturnError {
	return newError(KindInput, code, message, nil)
}

// NewItemInputError addresses a specific item index in the request.
func NewItemInputError(code, message string, itemIndex int) *ReturnError {
	e := newError(KindInput, code, message, nil)
	e.ItemIndex = itemIndex
	return e
}

func NewPolicyError(code, message string) *ReturnError {
	return newError(KindPolicy, code, message, nil)
}

func NewItemPolicyError(code, message string, itemIndex int) *ReturnError {
	e := newError(KindPolicy, code, message, nil)
	e.ItemIndex = itemIndex
	return e
}

func NewNotFoundError(requestID string) *ReturnError {
	return newError(KindNotFound, ErrCodeRequestNotFound,
		fmt.Sprintf("Return request %s not found", requestID), ErrRequestNotFound)
}

func NewConflictError(requestID string) *ReturnError {
	return newError(KindConflict, ErrCodeStatusConflict,
		fmt.Sprintf("Return request %s was modified concurrently, retry with fresh state", requestID),
		ErrStatusConflict)
}

func NewInvalidTransitionError(from, to Status) *ReturnError {
	return newError(KindPolicy, ErrCodeInvalidTransition,
		fmt.Sprintf("Transition from '%s' to '%s' is not allowed", from, to),
		ErrInvalidTransition)
}

// NewUpstreamError wraps a dependent-system failure. The message stays
// generic; full diagnostic detail belongs in logs, not API responses.
func NewUpstreamError(message string, err error) *ReturnError {
	return newError(KindUpstream, ErrCodeUpstreamFailure, message, err)
}

func NewConfigurationError(message string, err error) *ReturnError {
	return newError(KindConfiguration, ErrCodeSettingsMissing, message, err)
}
