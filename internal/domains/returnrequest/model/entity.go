package model

import "time"

// =====================================================
// CONDITION CONSTANTS
// =====================================================
const (
	ConditionUnspecified    = "unspecified"
	ConditionNewWithBox     = "newWithBox"
	ConditionNewWithoutBox  = "newWithoutBox"
	ConditionUsedWithBox    = "usedWithBox"
	ConditionUsedWithoutBox = "usedWithoutBox"
)

// =====================================================
// REFUND PAYMENT METHOD CONSTANTS
// =====================================================
const (
	PaymentMethodBank           = "bank"
	PaymentMethodCard           = "card"
	PaymentMethodGiftCard       = "giftCard"
	PaymentMethodSameAsPurchase = "sameAsPurchase"
)

// ReasonOther is the free-text sentinel that bypasses the configured
// custom-reason match.
const ReasonOther = "otherReason"

// Address types for pickup/return data.
const (
	AddressTypePickupPoint     = "PICKUP_POINT"
	AddressTypeCustomerAddress = "CUSTOMER_ADDRESS"
)

// Refundable amount categories.
const (
	CategoryItems    = "items"
	CategoryTax      = "tax"
	CategoryShipping = "shipping"
)

// =====================================================
// AGGREGATE ROOT: ReturnRequest
// =====================================================

// ReturnRequest is created once and afterwards only Status,
// RefundStatusData and RefundData mutate, driven by the transition engine.
// There is no deletion: cancellation is a terminal status, not removal.
type ReturnRequest struct {
	ID             string `json:"id"`
	SequenceNumber string `json:"sequenceNumber"`
	// OrderID is nil for independent returns, which are validated against
	// aggregate purchase history instead of one order.
	OrderID           *string `json:"orderId"`
	IndependentReturn bool    `json:"independentReturn"`

	Status Status       `json:"status"`
	Items  []ReturnItem `json:"items"`

	CustomerProfileData CustomerProfileData `json:"customerProfileData"`
	PickupReturnData    PickupReturnData    `json:"pickupReturnData"`
	RefundPaymentData   RefundPaymentData   `json:"refundPaymentData"`

	RefundableAmountTotals []RefundableAmountTotal `json:"refundableAmountTotals"`
	// RefundableAmount is always the sum of RefundableAmountTotals values,
	// in integer minor currency units.
	RefundableAmount int64 `json:"refundableAmount"`

	CultureInfoData CultureInfoData `json:"cultureInfoData"`
	DateSubmitted   time.Time       `json:"dateSubmitted"`

	// RefundStatusData is append-only; the last entry's status always
	// equals Status.
	RefundStatusData []RefundStatusEntry `json:"refundStatusData"`
	// RefundData is populated on resolution (amountRefunded).
	RefundData *RefundData `json:"refundData"`
}

type ReturnItem struct {
	SkuID string `json:"id"`
	// OrderItemIndex is nil for independent returns.
	OrderItemIndex *int   `json:"orderItemIndex"`
	Quantity       int    `json:"quantity"`
	Name           string `json:"name"`
	LocalizedName  string `json:"localizedName,omitempty"`
	// SellingPrice and Tax are per-unit integer minor units.
	SellingPrice   int64        `json:"sellingPrice"`
	Tax            int64        `json:"tax"`
	ImageURL       string       `json:"imageUrl"`
	UnitMultiplier float64      `json:"unitMultiplier"`
	SellerID       string       `json:"sellerId"`
	SellerName     string       `json:"sellerName"`
	ProductID      string       `json:"productId"`
	RefID          string       `json:"refId"`
	ReturnReason   ReturnReason `json:"returnReason"`
	Condition      string       `json:"condition"`
	// VerificationStatus is set when the package is verified item by item.
	VerificationStatus string `json:"verificationStatus,omitempty"`
}

type ReturnReason struct {
	Reason string `json:"reason"`
	// OtherReason carries the free text when Reason == "otherReason".
	OtherReason string `json:"otherReason,omitempty"`
}

type CustomerProfileData struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

type PickupReturnData struct {
	AddressID   string `json:"addressId,omitempty"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state,omitempty"`
	Country     string `json:"country"`
	ZipCode     string `json:"zipCode"`
	AddressType string `json:"addressType"`
}

type RefundPaymentData struct {
	RefundPaymentMethod string `json:"refundPaymentMethod"`
	// Bank fields are persisted only when the method is "bank".
	IBAN              string `json:"iban,omitempty"`
	AccountHolderName string `json:"accountHolderName,omitempty"`
	// AutomaticallyRefundPaymentMethod is always false for independent
	// returns: there is no originating payment to refund against.
	AutomaticallyRefundPaymentMethod bool `json:"automaticallyRefundPaymentMethod"`
}

type RefundableAmountTotal struct {
	ID    string `json:"id"` // items, tax, shipping
	Value int64  `json:"value"`
}

type CultureInfoData struct {
	CurrencyCode string `json:"currencyCode"`
	Locale       string `json:"locale"`
}

// RefundStatusEntry is one accepted status transition.
type RefundStatusEntry struct {
	Status      Status    `json:"status"`
	SubmittedBy string    `json:"submittedBy"`
	CreatedAt   time.Time `json:"createdAt"`
	Comments    []Comment `json:"comments"`
}

type Comment struct {
	Comment            string    `json:"comment"`
	CreatedAt          time.Time `json:"createdAt"`
	SubmittedBy        string    `json:"submittedBy"`
	VisibleForCustomer bool      `json:"visibleForCustomer"`
	Role               string    `json:"role"`
}

// RefundData is the resolution payload recorded when the refund is issued.
type RefundData struct {
	InvoiceNumber string        `json:"invoiceNumber,omitempty"`
	InvoiceValue  int64         `json:"invoiceValue"`
	GiftCard      *GiftCardData `json:"giftCard,omitempty"`
}

type GiftCardData struct {
	ID             string `json:"id"`
	RedemptionCode string `json:"redemptionCode"`
}

// =====================================================
// PRODUCT SUMMARY (eligible-products listing)
// =====================================================

type ProductSummary struct {
	SkuID           string            `json:"skuId"`
	Name            string            `json:"name"`
	ImageURL        string            `json:"imageUrl"`
	CurrentPrice    int64             `json:"currentPrice"`
	ProductID       string            `json:"productId"`
	RefID           string            `json:"refId"`
	SellerID        string            `json:"sellerId"`
	SellerName      string            `json:"sellerName"`
	PurchaseHistory []PurchaseSummary `json:"purchaseHistory"`
}

type PurchaseSummary struct {
	OrderID           string `json:"orderId"`
	PurchaseDate      string `json:"purchaseDate"`
	QuantityPurchased int    `json:"quantityPurchased"`
	PricePaid         int64  `json:"pricePaid"`
}
