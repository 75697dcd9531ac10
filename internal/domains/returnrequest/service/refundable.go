package service

import (
	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
)

// OrderLevelTotals are the order-wide amounts the shipping refund is
// derived from. Nil means an independent return: no order reference, so
// shipping is zero unless a later policy supplies one.
type OrderLevelTotals struct {
	// Items is the full order's item total, used as the proration base.
	Items    int64
	Shipping int64
}

// computeRefundableTotals builds the per-category refundable amounts.
// Everything is integer minor currency units; no category may go negative.
func computeRefundableTotals(
	items []model.ReturnItem,
	orderTotals *OrderLevelTotals,
	prorateShipping bool,
) []model.RefundableAmountTotal {
	var itemsTotal, taxTotal int64

	for _, item := range items {
		itemsTotal += item.SellingPrice * int64(item.Quantity)
		taxTotal += item.Tax * int64(item.Quantity)
	}

	var shippingTotal int64
	if orderTotals != nil {
		if prorateShipping && orderTotals.Items > 0 {
			// Round half up on the proration so a full-order return
			// refunds the full shipping amount.
			shippingTotal = (orderTotals.Shipping*itemsTotal + orderTotals.Items/2) / orderTotals.Items
		} else {
			shippingTotal = orderTotals.Shipping
		}
	}

	return []model.RefundableAmountTotal{
		{ID: model.CategoryItems, Value: clampNonNegative(itemsTotal)},
		{ID: model.CategoryTax, Value: clampNonNegative(taxTotal)},
		{ID: model.CategoryShipping, Value: clampNonNegative(shippingTotal)},
	}
}

// sumTotals is the grand refundable amount.
func sumTotals(totals []model.RefundableAmountTotal) int64 {
	var sum int64
	for _, t := range totals {
		sum += t.Value
	}
	return sum
}

func clampNonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
