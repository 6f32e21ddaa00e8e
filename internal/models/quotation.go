package models

// FleetFilters is the filter metadata derived from a priced fleet: the
// distinct values a caller can still narrow by, plus the price range.
type FleetFilters struct {
	Categories []string   `json:"categories"`
	Providers  []string   `json:"providers"`
	PriceRange PriceRange `json:"priceRange"`
}

type PriceRange struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Formatted string  `json:"formatted,omitempty"`
}

// Quotation is the complete priced result of one search. Stored once,
// immutable, retrievable by id until TTL expiry.
type Quotation struct {
	QuotationID string         `json:"quotationId"`
	Criteria    SearchCriteria `json:"searchParams"`
	Fleet       []PricedOffer  `json:"fleet"`
	Filters     FleetFilters   `json:"filters"`
}
