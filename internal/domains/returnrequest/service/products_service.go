package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/orderhistory"
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
	"github.com/ITGlobers/return-app-pmi-poc/pkg/logger"
)

// ListEligibleProducts lists products from the customer's purchase history
// within the tenant's lookback window that can back an independent return.
//
// Unlike the creation flow, enrichment here is best effort: a SKU that
// fails catalog resolution is skipped and the listing continues, because
// the contract is "show what we can", not "all or nothing".
func (s *returnRequestService) ListEligibleProducts(
	ctx context.Context,
	customerEmail string,
	searchTerm string,
) ([]model.ProductSummary, error) {
	if customerEmail == "" {
		return nil, model.NewInputError(model.ErrCodeOrderOwnership, "Missing user email")
	}

	cfg, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.history.CollectPurchaseHistory(ctx, customerEmail, orderhistory.LastDays(cfg.MaxDays))
	if err != nil {
		return nil, model.NewUpstreamError("Unable to load purchase history, try again later", err)
	}

	summaries := make([]model.ProductSummary, 0, len(history.SkuIDs()))

	for _, skuID := range history.SkuIDs() {
		line, err := s.catalog.ResolveSku(ctx, skuID)
		if err != nil {
			// Local recovery: skip this candidate, keep listing
			logger.Warn(fmt.Sprintf("skipping sku %s in eligible products listing", skuID), err)
			continue
		}
		if line == nil {
			continue
		}

		if searchTerm != "" &&
			!strings.Contains(strings.ToLower(line.ProductName), strings.ToLower(searchTerm)) {
			continue
		}

		records := history.Records(skuID)
		purchases := make([]model.PurchaseSummary, 0, len(records))
		for _, rec := range records {
			purchases = append(purchases, model.PurchaseSummary{
				OrderID:           rec.OrderID,
				PurchaseDate:      rec.PurchaseDate,
				QuantityPurchased: rec.QuantityPurchased,
				PricePaid:         rec.PricePaid,
			})
		}

		summaries = append(summaries, model.ProductSummary{
			SkuID:           skuID,
			Name:            line.ProductName,
			ImageURL:        line.ImageURL,
			CurrentPrice:    line.PriceMinor,
			ProductID:       line.ProductID,
			RefID:           line.RefID,
			SellerID:        line.SellerID,
			SellerName:      line.SellerName,
			PurchaseHistory: purchases,
		})
	}

	return summaries, nil
}
