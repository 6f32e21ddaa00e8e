package pricing

import (
	"math"

	"github.com/mcrbroker/carsearch/internal/models"
)

// Band maps an upper bound of rental days to the customer-facing
// discount applied against the market anchor.
type Band struct {
	MaxDays  int
	Discount float64
}

// DefaultBands: 1 day, 2-5 days, 6+.
func DefaultBands() []Band {
	return []Band{
		{MaxDays: 1, Discount: 0.60},
		{MaxDays: 5, Discount: 0.65},
		{MaxDays: math.MaxInt, Discount: 0.70},
	}
}

// Engine prices an expanded fleet. MaxDiscount is the fixed anchor used
// to inflate the market reference; the band discount is the one actually
// shown to the customer. The two are deliberately independent.
type Engine struct {
	Bands       []Band
	MaxDiscount float64
	MinPapFloor float64
}

func NewEngine() *Engine {
	return &Engine{
		Bands:       DefaultBands(),
		MaxDiscount: 0.70,
		MinPapFloor: 200.0,
	}
}

func (e *Engine) bandDiscount(days int) float64 {
	for _, b := range e.Bands {
		if days <= b.MaxDays {
			return b.Discount
		}
	}
	return e.MaxDiscount
}

// PapByCategory reduces the PAP dataset to one floor per category: the
// first positive value within the category, else the global fallback
// (first positive value anywhere, else the first non-null value, else 0).
func PapByCategory(rows []models.PapRow) map[string]float64 {
	global := 0.0
	found := false
	for _, r := range rows {
		if r.Valid && r.Pap > 0 {
			global = r.Pap
			found = true
			break
		}
	}
	if !found {
		for _, r := range rows {
			if r.Valid {
				global = r.Pap
				break
			}
		}
	}

	out := make(map[string]float64)
	positive := make(map[string]bool)
	for _, r := range rows {
		if positive[r.CategoryName] {
			continue
		}
		if r.Valid && r.Pap > 0 {
			out[r.CategoryName] = r.Pap
			positive[r.CategoryName] = true
		} else if _, seen := out[r.CategoryName]; !seen {
			out[r.CategoryName] = global
		}
	}
	return out
}

// Anchor runs the market-anchoring pass: every item gets a market
// reference inflated by the PAP floor and the fixed anchor discount, a
// public rate discounted by the duration band, and the resulting dynamic
// margin. Amounts stay in the source currency at two decimals.
func (e *Engine) Anchor(fleet []models.Offer, paps map[string]float64) []models.PricedOffer {
	out := make([]models.PricedOffer, 0, len(fleet))
	for _, o := range fleet {
		item := models.PricedOffer{Offer: o}
		if o.VehicleCategory != "" && o.NetRate > 0 {
			days := o.TotalDays
			if days < 1 {
				days = 1
			}
			disc := e.bandDiscount(days)
			papFloor := math.Max(paps[o.VehicleCategory], e.MinPapFloor)
			denom := math.Max(0.0001, 1-e.MaxDiscount)

			mkt := (o.NetRate + papFloor) / denom
			pub := mkt * (1 - disc)
			pap := math.Max(0, pub-o.NetRate)

			item.MktRateAmount = round2(mkt)
			item.PublicRateAmount = round2(pub)
			item.PapAmount = round2(pap)
			item.Discount = int(math.Round(disc * 100))
		}
		out = append(out, item)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundHalfUp rounds to the nearest integer with halves away from zero.
func roundHalfUp(v float64) int {
	if v < 0 {
		return -int(math.Floor(-v + 0.5))
	}
	return int(math.Floor(v + 0.5))
}
