package oms

import "time"

// =====================================================
// ORDER SEARCH
// =====================================================

// SearchParams mirrors the order-search query contract.
// The upstream caps per_page at 10, so callers must paginate.
type SearchParams struct {
	ClientEmail  string
	Status       string // search is always filtered, normally "invoiced"
	CreationFrom time.Time
	CreationTo   time.Time
	OrderBy      string
	Page         int
	PerPage      int
}

type SearchResponse struct {
	List   []OrderSummary `json:"list"`
	Paging Paging         `json:"paging"`
}

type OrderSummary struct {
	OrderID      string `json:"orderId"`
	CreationDate string `json:"creationDate"`
	Status       string `json:"status"`
}

type Paging struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
}

// =====================================================
// ORDER DETAIL
// =====================================================

type OrderDetail struct {
	OrderID              string                `json:"orderId"`
	CreationDate         time.Time             `json:"creationDate"`
	Items                []OrderItem           `json:"items"`
	ClientProfileData    *ClientProfileData    `json:"clientProfileData,omitempty"`
	StorePreferencesData *StorePreferencesData `json:"storePreferencesData,omitempty"`
	Totals               []OrderTotal          `json:"totals"`
}

type OrderItem struct {
	// ID is the SKU identifier of the purchased line.
	ID           string `json:"id"`
	Quantity     int    `json:"quantity"`
	SellingPrice int64  `json:"sellingPrice"` // minor currency units
	Tax          int64  `json:"tax"`
}

type ClientProfileData struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	UserID    string `json:"userProfileId"`
}

type StorePreferencesData struct {
	CurrencyCode string `json:"currencyCode"`
}

// OrderTotal is one order-level amount category (Items, Tax, Shipping).
type OrderTotal struct {
	ID    string `json:"id"`
	Value int64  `json:"value"`
}
