package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ITGlobers/return-app-pmi-poc/internal/config"
)

// CatalogClient resolves a SKU identifier to the product metadata needed to
// build a return line. ResolveSku returns (nil, nil) when the SKU record,
// the product feed, or the matching SKU entry is missing: callers treat nil
// as "SKU unavailable for return", never as a failure.
type CatalogClient interface {
	ResolveSku(ctx context.Context, skuID string) (*ProductLine, error)
}

// =====================================================
// HTTP CLIENT IMPLEMENTATION
// =====================================================

type Client struct {
	config     *config.CatalogConfig
	httpClient *http.Client
}

func NewClient(cfg *config.CatalogConfig) CatalogClient {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *Client) ResolveSku(ctx context.Context, skuID string) (*ProductLine, error) {
	// Step 1: SKU record gives us the owning product
	var sku skuRecord
	found, err := c.getJSON(ctx,
		fmt.Sprintf("%s/api/catalog/pvt/stockkeepingunit/%s", c.config.BaseURL, url.PathEscape(skuID)),
		true, &sku)
	if err != nil {
		return nil, fmt.Errorf("sku lookup %s failed: %w", skuID, err)
	}
	if !found {
		return nil, nil
	}

	// Step 2: public variations feed has names, sellers, prices and images
	var variations productVariations
	found, err = c.getJSON(ctx,
		fmt.Sprintf("%s/api/catalog_system/pub/products/variations/%d", c.config.BaseURL, sku.ProductID),
		false, &variations)
	if err != nil {
		return nil, fmt.Errorf("product variations %d failed: %w", sku.ProductID, err)
	}
	if !found {
		return nil, nil
	}

	// Step 3: find the requested SKU inside the product's listed SKUs
	skuNumeric, err := strconv.ParseInt(skuID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("sku id %q is not numeric: %w", skuID, err)
	}

	var match *variationSku
	for i := range variations.Skus {
		if variations.Skus[i].Sku == skuNumeric {
			match = &variations.Skus[i]
			break
		}
	}
	if match == nil {
		return nil, nil
	}

	sellerID := match.SellerID
	if sellerID == "" {
		sellerID = "1"
	}
	sellerName := match.Seller
	if sellerName == "" {
		sellerName = sellerID
	}

	price := match.BestPrice
	if price == 0 {
		price = match.Price
	}

	productID := strconv.FormatInt(variations.ProductID, 10)
	if variations.ProductID == 0 {
		productID = strconv.FormatInt(sku.ProductID, 10)
	}

	return &ProductLine{
		SkuID:         skuID,
		ProductID:     productID,
		ProductName:   variations.Name,
		LocalizedName: match.SkuName,
		RefID:         productID,
		SellerID:      sellerID,
		SellerName:    sellerName,
		ImageURL:      match.Image,
		PriceMinor:    majorToMinor(price),
	}, nil
}

// majorToMinor converts a major-unit feed price to integer minor units,
// rounding half up. All core money stays in minor units.
func majorToMinor(major float64) int64 {
	return decimal.NewFromFloat(major).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// getJSON issues a GET. Returns found=false on 404 or an empty body so the
// caller can map "missing" to a nil ProductLine instead of an error.
func (c *Client) getJSON(ctx context.Context, endpoint string, private bool, dest interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if private && c.config.AuthToken != "" {
		req.Header.Set("VtexIdClientAutCookie", c.config.AuthToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("upstream returned %d: %s", resp.StatusCode, string(body))
	}
	if len(body) == 0 || string(body) == "null" {
		return false, nil
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return true, nil
}
