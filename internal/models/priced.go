package models

// PricedOffer is a category winner expanded over the vehicle catalog and
// carried through both pricing passes. Per-day rates stay float64; after
// per-offer normalization they hold whole currency units. Totals and fees
// are integer amounts.
type PricedOffer struct {
	Offer

	PackageID    string  `json:"packageId"`
	Currency     string  `json:"currency"`
	ExchangeRate float64 `json:"exchangeRate"`

	// Market anchoring.
	MktRateAmount    float64 `json:"mktRateAmount"`
	PublicRateAmount float64 `json:"publicRateAmount"`
	PapAmount        float64 `json:"papAmount"`
	Discount         int     `json:"discount"`

	// Totals, in the quotation currency.
	TotalNetRate     int `json:"totalNetRate"`
	Total            int `json:"total"`
	Prepayment       int `json:"prepayment"`
	CancellationFee  int `json:"cancellationFee"`
	AdditionalDriver int `json:"additionalDriver"`

	CancellationFeeCheck  bool `json:"cancellationFeeCheck"`
	AdditionalDriverCheck bool `json:"additionalDriverCheck"`

	// Loyalty override.
	IsPlatinum               bool    `json:"isPlatinum"`
	PricingContext           string  `json:"pricingContext"`
	PublicRateAmountOriginal float64 `json:"publicRateAmountOriginal,omitempty"`
	DiscountPlatinum         int     `json:"discountPlatinum,omitempty"`

	// Zero-deductible split.
	RateWithoutZeroDeductible  int `json:"rate_without_zero_deductible"`
	RateWithZeroDeductible     int `json:"rate_with_zero_deductible"`
	TotalWithoutZeroDeductible int `json:"total_without_zero_deductible"`
	TotalWithZeroDeductible    int `json:"total_with_zero_deductible"`
	NetWithoutZeroDeductible   int `json:"net_without_zero_deductible"`
	NetWithZeroDeductible      int `json:"net_with_zero_deductible"`

	Characteristics []string `json:"characteristics"`

	OffSell                bool    `json:"OFF_SELL"`
	OnRequest              bool    `json:"ON_REQUEST"`
	HasAdditionalPromotion bool    `json:"hasAdditionalPromotion"`
	HasCoupon              bool    `json:"hasCoupon"`
	CouponCode             *string `json:"couponCode"`
}
