package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ITGlobers/return-app-pmi-poc/internal/domains/returnrequest/model"
)

func TestComputeRefundableTotals(t *testing.T) {
	tests := []struct {
		name            string
		items           []model.ReturnItem
		orderTotals     *OrderLevelTotals
		prorateShipping bool
		wantItems       int64
		wantTax         int64
		wantShipping    int64
	}{
		{
			name: "independent return has no shipping",
			items: []model.ReturnItem{
				{SellingPrice: 5000, Tax: 0, Quantity: 1},
			},
			orderTotals:  nil,
			wantItems:    5000,
			wantTax:      0,
			wantShipping: 0,
		},
		{
			name: "quantity multiplies price and tax",
			items: []model.ReturnItem{
				{SellingPrice: 2500, Tax: 300, Quantity: 3},
			},
			orderTotals:  nil,
			wantItems:    7500,
			wantTax:      900,
			wantShipping: 0,
		},
		{
			name: "full shipping without proration",
			items: []model.ReturnItem{
				{SellingPrice: 4000, Quantity: 1},
			},
			orderTotals:     &OrderLevelTotals{Items: 10000, Shipping: 1500},
			prorateShipping: false,
			wantItems:       4000,
			wantTax:         0,
			wantShipping:    1500,
		},
		{
			name: "prorated shipping rounds half up",
			items: []model.ReturnItem{
				{SellingPrice: 4000, Quantity: 1},
			},
			orderTotals:     &OrderLevelTotals{Items: 10000, Shipping: 1500},
			prorateShipping: true,
			wantItems:       4000,
			wantTax:         0,
			// 1500 * 4000 / 10000
			wantShipping: 600,
		},
		{
			name: "full-order return refunds full shipping when prorated",
			items: []model.ReturnItem{
				{SellingPrice: 10000, Quantity: 1},
			},
			orderTotals:     &OrderLevelTotals{Items: 10000, Shipping: 1500},
			prorateShipping: true,
			wantItems:       10000,
			wantShipping:    1500,
		},
		{
			name:            "zero order items total yields zero shipping",
			items:           []model.ReturnItem{{SellingPrice: 4000, Quantity: 1}},
			orderTotals:     &OrderLevelTotals{Items: 0, Shipping: 1500},
			prorateShipping: true,
			wantItems:       4000,
			wantShipping:    0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			totals := computeRefundableTotals(tc.items, tc.orderTotals, tc.prorateShipping)

			byCategory := make(map[string]int64, len(totals))
			for _, total := range totals {
				byCategory[total.ID] = total.Value
				assert.GreaterOrEqual(t, total.Value, int64(0), "category %s must not be negative", total.ID)
			}

			assert.Equal(t, tc.wantItems, byCategory[model.CategoryItems])
			assert.Equal(t, tc.wantTax, byCategory[model.CategoryTax])
			assert.Equal(t, tc.wantShipping, byCategory[model.CategoryShipping])

			assert.Equal(t, tc.wantItems+tc.wantTax+tc.wantShipping, sumTotals(totals))
		})
	}
}

func TestSumTotals(t *testing.T) {
	totals := []model.RefundableAmountTotal{
		{ID: model.CategoryItems, Value: 5000},
		{ID: model.CategoryTax, Value: 250},
		{ID: model.CategoryShipping, Value: 600},
	}
	assert.Equal(t, int64(5850), sumTotals(totals))
	assert.Equal(t, int64(0), sumTotals(nil))
}
