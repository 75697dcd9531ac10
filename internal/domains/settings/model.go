package settings

import "errors"

// ErrNotConfigured means the tenant has no return settings document.
// Treated as a server misconfiguration, not a user error.
var ErrNotConfigured = errors.New("return app settings is not configured")

// ReturnAppSettings is the tenant-level policy document every creation
// request is validated against.
type ReturnAppSettings struct {
	// MaxDays is the default lookback window, in days, for the
	// eligible-products listing.
	MaxDays             int                  `json:"maxDays"`
	CustomReturnReasons []CustomReturnReason `json:"customReturnReasons"`
	PaymentOptions      PaymentOptions       `json:"paymentOptions"`
	Options             Options              `json:"options"`
}

// CustomReturnReason is a configured reason with its own return window.
// Translations count as a match for the same reason.
type CustomReturnReason struct {
	Reason       string        `json:"reason"`
	MaxDays      int           `json:"maxDays"`
	Translations []Translation `json:"translations,omitempty"`
}

type Translation struct {
	Locale      string `json:"locale"`
	Translation string `json:"translation"`
}

type PaymentOptions struct {
	EnablePaymentMethodSelection bool                `json:"enablePaymentMethodSelection"`
	AllowedPaymentTypes          AllowedPaymentTypes `json:"allowedPaymentTypes"`
}

type AllowedPaymentTypes struct {
	Bank     bool `json:"bank"`
	Card     bool `json:"card"`
	GiftCard bool `json:"giftCard"`
}

type Options struct {
	EnablePickupPoints              bool `json:"enablePickupPoints"`
	EnableSelectItemCondition       bool `json:"enableSelectItemCondition"`
	EnableProportionalShippingValue bool `json:"enableProportionalShippingValue"`
}
