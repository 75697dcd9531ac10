package orderhistory

import (
	"context"
	"fmt"
	"time"

	"github.com/ITGlobers/return-app-pmi-poc/internal/clients/oms"
	"github.com/ITGlobers/return-app-pmi-poc/pkg/logger"
)

const (
	perPage = 10
	// maxPages bounds worst-case work against very active customers.
	// Hitting the cap returns what was collected so far, favoring
	// availability over completeness. Known limitation, covered by tests.
	maxPages = 10

	statusInvoiced      = "invoiced"
	orderByCreationDesc = "creationDate,desc"
)

// Window is the creation-date range for order search. The zero value means
// "all time", used for independent-return ownership checks.
type Window struct {
	From time.Time
	To   time.Time
}

func AllTime() Window {
	return Window{}
}

func LastDays(days int) Window {
	now := time.Now().UTC()
	return Window{From: now.AddDate(0, 0, -days), To: now}
}

func (w Window) bounds() (time.Time, time.Time) {
	if w.From.IsZero() && w.To.IsZero() {
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2099, 12, 31, 23, 59, 59, 999000000, time.UTC)
	}
	return w.From, w.To
}

// PurchaseRecord is one purchase of a SKU inside some order.
type PurchaseRecord struct {
	OrderID           string `json:"orderId"`
	PurchaseDate      string `json:"purchaseDate"`
	QuantityPurchased int    `json:"quantityPurchased"`
	PricePaid         int64  `json:"pricePaid"`
}

// PurchaseHistory is the transient aggregate built from a customer's
// invoiced orders. It proves ownership for independent returns and powers
// the eligible-products listing.
type PurchaseHistory struct {
	// CurrencyCode is taken from the most recent order, empty if unknown.
	CurrencyCode string

	records map[string][]PurchaseRecord
	skuIDs  []string // insertion order, most recent order first
}

func (h *PurchaseHistory) Has(skuID string) bool {
	_, ok := h.records[skuID]
	return ok
}

func (h *PurchaseHistory) Records(skuID string) []PurchaseRecord {
	return h.records[skuID]
}

// SkuIDs returns the purchased SKU ids in deterministic order.
func (h *PurchaseHistory) SkuIDs() []string {
	return h.skuIDs
}

func (h *PurchaseHistory) add(skuID string, rec PurchaseRecord) {
	if _, ok := h.records[skuID]; !ok {
		h.skuIDs = append(h.skuIDs, skuID)
	}
	h.records[skuID] = append(h.records[skuID], rec)
}

// =====================================================
// AGGREGATOR
// =====================================================

type Aggregator interface {
	// FetchInvoicedOrders pages through the order search for the customer.
	FetchInvoicedOrders(ctx context.Context, customerEmail string, window Window) ([]oms.OrderSummary, error)
	// CollectPurchaseHistory resolves order details for every order in the
	// window and indexes purchases by SKU.
	CollectPurchaseHistory(ctx context.Context, customerEmail string, window Window) (*PurchaseHistory, error)
}

type aggregator struct {
	orders oms.OrderClient
}

func NewAggregator(orders oms.OrderClient) Aggregator {
	return &aggregator{orders: orders}
}

func (a *aggregator) FetchInvoicedOrders(ctx context.Context, customerEmail string, window Window) ([]oms.OrderSummary, error) {
	if customerEmail == "" {
		return nil, fmt.Errorf("customer email is required")
	}

	from, to := window.bounds()

	var all []oms.OrderSummary
	currentPage := 1

	for {
		result, err := a.orders.SearchOrders(ctx, oms.SearchParams{
			ClientEmail:  customerEmail,
			Status:       statusInvoiced,
			CreationFrom: from,
			CreationTo:   to,
			OrderBy:      orderByCreationDesc,
			Page:         currentPage,
			PerPage:      perPage,
		})
		if err != nil {
			return nil, err
		}

		all = append(all, result.List...)

		hasMore := result.Paging.Total > currentPage*result.Paging.PerPage
		if !hasMore {
			break
		}

		currentPage++
		if currentPage > maxPages {
			logger.Info("order search page cap hit, truncating history", map[string]interface{}{
				"email":     customerEmail,
				"collected": len(all),
				"total":     result.Paging.Total,
			})
			break
		}
	}

	return all, nil
}

func (a *aggregator) CollectPurchaseHistory(ctx context.Context, customerEmail string, window Window) (*PurchaseHistory, error) {
	orders, err := a.FetchInvoicedOrders(ctx, customerEmail, window)
	if err != nil {
		return nil, err
	}

	history := &PurchaseHistory{
		records: make(map[string][]PurchaseRecord),
	}

	// Details are fetched in order-list order so the SKU insertion order
	// stays deterministic (most recent purchase first).
	for _, summary := range orders {
		detail, err := a.orders.GetOrder(ctx, summary.OrderID)
		if err != nil {
			return nil, err
		}

		if history.CurrencyCode == "" && detail.StorePreferencesData != nil {
			history.CurrencyCode = detail.StorePreferencesData.CurrencyCode
		}

		for _, item := range detail.Items {
			history.add(item.ID, PurchaseRecord{
				OrderID:           detail.OrderID,
				PurchaseDate:      detail.CreationDate.UTC().Format(time.RFC3339),
				QuantityPurchased: item.Quantity,
				PricePaid:         item.SellingPrice,
			})
		}
	}

	return history, nil
}
