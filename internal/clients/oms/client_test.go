package oms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ITGlobers/return-app-pmi-poc/internal/config"
)

func testConfig(baseURL string) *config.OMSConfig {
	return &config.OMSConfig{
		BaseURL:   baseURL,
		AuthToken: "oms-token",
		Timeout:   5 * time.Second,
	}
}

func TestSearchOrdersBuildsQuery(t *testing.T) {
	var gotQuery map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"clientEmail":    r.URL.Query().Get("clientEmail"),
			"f_status":       r.URL.Query().Get("f_status"),
			"f_creationDate": r.URL.Query().Get("f_creationDate"),
			"orderBy":        r.URL.Query().Get("orderBy"),
			"page":           r.URL.Query().Get("page"),
			"per_page":       r.URL.Query().Get("per_page"),
		}
		assert.Equal(t, "oms-token", r.Header.Get("VtexIdClientAutCookie"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"list":[{"orderId":"900","status":"invoiced"}],"paging":{"total":1,"perPage":10,"currentPage":1}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	result, err := client.SearchOrders(context.Background(), SearchParams{
		ClientEmail:  "buyer@example.com",
		Status:       "invoiced",
		CreationFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		CreationTo:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		OrderBy:      "creationDate,desc",
		Page:         1,
		PerPage:      10,
	})
	require.NoError(t, err)

	assert.Equal(t, "buyer@example.com", gotQuery["clientEmail"])
	assert.Equal(t, "invoiced", gotQuery["f_status"])
	assert.Equal(t, "creationDate:[2026-01-01T00:00:00.000Z TO 2026-03-01T00:00:00.000Z]", gotQuery["f_creationDate"])
	assert.Equal(t, "creationDate,desc", gotQuery["orderBy"])
	assert.Equal(t, "1", gotQuery["page"])
	assert.Equal(t, "10", gotQuery["per_page"])

	require.Len(t, result.List, 1)
	assert.Equal(t, "900", result.List[0].OrderID)
	assert.Equal(t, 1, result.Paging.Total)
}

func TestGetOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/oms/pvt/orders/900", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"orderId": "900",
			"creationDate": "2026-02-01T09:30:00Z",
			"items": [{"id": "55", "quantity": 2, "sellingPrice": 5000, "tax": 250}],
			"clientProfileData": {"email": "buyer@example.com"},
			"storePreferencesData": {"currencyCode": "EUR"},
			"totals": [{"id": "Items", "value": 10000}, {"id": "Shipping", "value": 1500}]
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	order, err := client.GetOrder(context.Background(), "900")
	require.NoError(t, err)

	assert.Equal(t, "900", order.OrderID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, int64(5000), order.Items[0].SellingPrice)
	assert.Equal(t, "buyer@example.com", order.ClientProfileData.Email)
	assert.Equal(t, "EUR", order.StorePreferencesData.CurrencyCode)
}

func TestGetOrderNotFoundIsNotRetried(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	_, err := client.GetOrder(context.Background(), "missing")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGetOrderRetriesOnServerError(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"orderId": "900", "items": [], "totals": []}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))

	order, err := client.GetOrder(context.Background(), "900")
	require.NoError(t, err)
	assert.Equal(t, "900", order.OrderID)
	assert.Equal(t, 2, calls)
}
