package catalog

// =====================================================
// UPSTREAM PAYLOADS
// =====================================================

// skuRecord is the private SKU lookup payload. Only the owning product
// matters here; everything else comes from the public variations feed.
type skuRecord struct {
	ID        int64  `json:"Id"`
	ProductID int64  `json:"ProductId"`
	Name      string `json:"Name"`
	IsActive  bool   `json:"IsActive"`
}

// productVariations is the public product/variations feed. The upstream is
// loosely shaped: price fields appear both lower- and upper-cased depending
// on the feed version, so both spellings are mapped and merged.
type productVariations struct {
	ProductID int64          `json:"productId"`
	Name      string         `json:"name"`
	Skus      []variationSku `json:"skus"`
}

type variationSku struct {
	Sku          int64   `json:"sku"`
	SkuName      string  `json:"skuname"`
	SellerID     string  `json:"sellerId"`
	Seller       string  `json:"seller"`
	BestPrice    float64 `json:"bestPrice"`
	Price        float64 `json:"Price"`
	ListPrice    float64 `json:"listPrice"`
	ListPriceAlt float64 `json:"ListPrice"`
	Image        string  `json:"image"`
}

// =====================================================
// RESOLVED PRODUCT LINE
// =====================================================

// ProductLine is the catalog data needed to build one return line item.
// Exactly one seller is modeled per line; the first seller entry of the
// matched SKU is canonical.
type ProductLine struct {
	SkuID         string
	ProductID     string
	ProductName   string
	LocalizedName string
	RefID         string
	SellerID      string
	SellerName    string
	ImageURL      string
	// PriceMinor is the current seller price in integer minor units.
	PriceMinor int64
}
