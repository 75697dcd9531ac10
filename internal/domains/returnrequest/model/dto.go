package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// =====================================================
// CREATE RETURN REQUEST INPUT
// =====================================================

// CreateReturnRequestInput is shared by the order-bound and independent
// creation flows; flow-specific rules (skuId presence, orderItemIndex)
// are enforced by the service on top of this shape validation.
type CreateReturnRequestInput struct {
	Items               []ReturnItemInput      `json:"items"`
	CustomerProfileData CustomerProfileInput   `json:"customerProfileData"`
	PickupReturnData    PickupReturnData       `json:"pickupReturnData"`
	RefundPaymentData   RefundPaymentDataInput `json:"refundPaymentData"`
	UserComment         string                 `json:"userComment,omitempty"`
	Locale              string                 `json:"locale"`
}

type ReturnItemInput struct {
	SkuID          string       `json:"skuId,omitempty"`
	OrderItemIndex *int         `json:"orderItemIndex,omitempty"`
	Quantity       int          `json:"quantity"`
	// SellingPrice overrides the catalog price when the caller already
	// knows the paid price, in minor units.
	SellingPrice *int64       `json:"sellingPrice,omitempty"`
	ReturnReason ReturnReason `json:"returnReason"`
	Condition    string       `json:"condition,omitempty"`
}

type CustomerProfileInput struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type RefundPaymentDataInput struct {
	RefundPaymentMethod string `json:"refundPaymentMethod"`
	IBAN                string `json:"iban,omitempty"`
	AccountHolderName   string `json:"accountHolderName,omitempty"`
}

func (r CreateReturnRequestInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Items, validation.Required, validation.Length(1, 0)),
		validation.Field(&r.CustomerProfileData),
		validation.Field(&r.PickupReturnData, validation.Required),
		validation.Field(&r.RefundPaymentData),
		validation.Field(&r.Locale, validation.Required),
	)
}

func (r CustomerProfileInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, is.Email),
	)
}

func (r RefundPaymentDataInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RefundPaymentMethod, validation.Required, validation.In(
			PaymentMethodBank,
			PaymentMethodCard,
			PaymentMethodGiftCard,
			PaymentMethodSameAsPurchase,
		)),
		// Bank refunds need the account data up front
		validation.Field(&r.IBAN,
			validation.Required.When(r.RefundPaymentMethod == PaymentMethodBank)),
		validation.Field(&r.AccountHolderName,
			validation.Required.When(r.RefundPaymentMethod == PaymentMethodBank)),
	)
}

func (r ReturnItemInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
	)
}

func (p PickupReturnData) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Address, validation.Required),
		validation.Field(&p.City, validation.Required),
		validation.Field(&p.Country, validation.Required),
		validation.Field(&p.AddressType, validation.Required, validation.In(
			AddressTypePickupPoint,
			AddressTypeCustomerAddress,
		)),
	)
}

// =====================================================
// STATUS UPDATE INPUT
// =====================================================

type UpdateStatusInput struct {
	Status  string `json:"status"`
	Comment string `json:"comment,omitempty"`
	// VisibleForCustomer controls whether the comment shows up in the
	// storefront history.
	VisibleForCustomer bool `json:"visibleForCustomer,omitempty"`
	// RefundData is consumed only when transitioning to amountRefunded.
	RefundData *RefundDataInput `json:"refundData,omitempty"`
}

type RefundDataInput struct {
	InvoiceNumber string        `json:"invoiceNumber,omitempty"`
	GiftCard      *GiftCardData `json:"giftCard,omitempty"`
}

func (u UpdateStatusInput) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Status, validation.Required),
	)
}

// =====================================================
// VERIFICATION INPUT
// =====================================================

// VerifyItemsInput resolves a pendingVerification request from item-level
// outcomes: every item approved moves the request to packageVerified,
// any rejection denies it.
type VerifyItemsInput struct {
	Items   []ItemVerification `json:"items"`
	Comment string             `json:"comment,omitempty"`
}

type ItemVerification struct {
	SkuID    string `json:"skuId"`
	Approved bool   `json:"approved"`
}

func (v VerifyItemsInput) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Items, validation.Required, validation.Length(1, 0)),
	)
}

// =====================================================
// CREATE RESPONSE
// =====================================================

type ReturnRequestCreated struct {
	ReturnRequestID string `json:"returnRequestId"`
}
