package pricing

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/mcrbroker/carsearch/internal/models"
)

const cancellationFeeShare = 0.18

// Additional-driver fee per day, capped at 5 chargeable days.
const (
	additionalDriverHome    = 100.0
	additionalDriverForeign = 5.5
	additionalDriverMaxDays = 5
)

// Context carries the per-request currency and customer state for the
// normalization pass.
type Context struct {
	Currency       string
	ExchangeRate   float64
	HomeCurrency   string
	IsPlatinum     bool
	ZeroDeductible bool
}

// Finalize runs the per-offer normalization pass: currency conversion and
// integer rounding of every monetary field in one sweep, totals and fees,
// the platinum override, and the zero-deductible split. Amounts come out
// in the quotation currency.
func (e *Engine) Finalize(fleet []models.PricedOffer, pctx Context) []models.PricedOffer {
	rate := pctx.ExchangeRate
	safeRate := rate
	if safeRate <= 0 {
		safeRate = 1.0
	}

	out := make([]models.PricedOffer, 0, len(fleet))
	for _, v := range fleet {
		v.PackageID = uuid.NewString()
		v.OffSell = false
		v.OnRequest = false
		v.Currency = pctx.Currency
		v.ExchangeRate = rate
		v.CancellationFeeCheck = true
		v.AdditionalDriverCheck = false

		chars := splitCharacteristics(v.VehicleDescription)
		v.Characteristics = chars
		v.VehicleDescription = strings.Join(chars, " | ")

		days := v.TotalDays
		if days < 1 {
			days = 1
		}

		zeroNet := roundHalfUp(v.ZeroDeductibleNetRate / safeRate)
		zeroPub := roundHalfUp(v.ZeroDeductiblePublicRate / safeRate)
		if !pctx.ZeroDeductible {
			zeroNet, zeroPub = 0, 0
		}
		v.ZeroDeductibleNetRate = float64(zeroNet)
		v.ZeroDeductiblePublicRate = float64(zeroPub)

		v.NetRate = float64(roundHalfUp(v.NetRate / safeRate))
		v.PublicRateAmount = float64(roundHalfUp(v.PublicRateAmount / safeRate))
		v.MktRateAmount = float64(roundHalfUp(v.MktRateAmount / safeRate))

		v.IsPlatinum = pctx.IsPlatinum
		if pctx.IsPlatinum {
			v.PublicRateAmountOriginal = v.PublicRateAmount
			v.PublicRateAmount = float64(roundHalfUp(platinumRate(v.PublicRateAmount, v.NetRate)))
			v.DiscountPlatinum = roundHalfUp(platinumDiscount(v.PublicRateAmount, v.MktRateAmount))
			v.PricingContext = "platinum"
		} else {
			v.PricingContext = "standard"
		}

		fdays := float64(days)
		v.TotalNetRate = roundHalfUp(v.NetRate * fdays)
		v.Total = roundHalfUp(v.PublicRateAmount * fdays)
		v.Prepayment = v.Total - v.TotalNetRate
		if v.Prepayment < 0 {
			v.Prepayment = 0
		}
		v.CancellationFee = roundHalfUp(float64(v.Prepayment) * cancellationFeeShare)

		driverDays := days
		if driverDays > additionalDriverMaxDays {
			driverDays = additionalDriverMaxDays
		}
		perDay := additionalDriverForeign
		if strings.EqualFold(pctx.Currency, pctx.HomeCurrency) {
			perDay = additionalDriverHome
		}
		v.AdditionalDriver = roundHalfUp(perDay * float64(driverDays))

		v.HasAdditionalPromotion = false
		v.HasCoupon = false
		v.CouponCode = nil

		v.RateWithoutZeroDeductible = maxInt(0, roundHalfUp(v.PublicRateAmount))
		v.RateWithZeroDeductible = roundHalfUp(v.PublicRateAmount + float64(zeroPub))
		v.TotalWithoutZeroDeductible = roundHalfUp(float64(v.RateWithoutZeroDeductible) * fdays)
		v.TotalWithZeroDeductible = roundHalfUp(float64(v.RateWithZeroDeductible) * fdays)
		v.NetWithoutZeroDeductible = maxInt(0, roundHalfUp(v.NetRate-float64(zeroNet)))
		v.NetWithZeroDeductible = roundHalfUp(v.NetRate)

		out = append(out, v)
	}
	return out
}

// platinumRate keeps 85% of the per-day markup, never below net.
func platinumRate(publicRate, netRate float64) float64 {
	markup := math.Max(0, publicRate-netRate)
	return round2(math.Max(netRate, netRate+markup*0.85))
}

// platinumDiscount is the loyalty discount percentage relative to the
// market anchor, clamped to [0, 100].
func platinumDiscount(publicRate, mktRate float64) float64 {
	base := mktRate
	if base <= 0 {
		base = publicRate
	}
	if base <= 0 {
		return 0
	}
	return math.Max(0, math.Min(100, 100-math.Round(publicRate*100/base)))
}

// splitCharacteristics turns a supplier description with <br> or pipe
// separators into a clean list.
func splitCharacteristics(desc string) []string {
	for _, br := range []string{"<br>", "<br/>", "<br />"} {
		desc = strings.ReplaceAll(desc, br, "|")
	}
	var out []string
	for _, c := range strings.Split(desc, "|") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
