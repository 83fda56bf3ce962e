package tariff

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// Protection rating bands.
const (
	RatingHigh = "High"
	RatingMid  = "Mid"
	RatingLow  = "Low"
)

// MaxProtectionScore is the highest score a tariff can earn.
const MaxProtectionScore = 18

var (
	ratchetStrong   = decimal.NewFromInt(90)
	ratchetModerate = decimal.NewFromInt(80)
	ratchetWeak     = decimal.NewFromInt(60)
	minLoadFloor    = decimal.NewFromInt(1)
)

// ProtectionScore weighs how well a tariff shields existing ratepayers from
// stranded costs if the large load under-delivers or leaves. Ratchet
// percentage and contract term earn up to 3 points each; cost-recovery
// provisions (CIAC, take-or-pay, exit fees, data-center-specific terms)
// earn 2; the remaining safeguards earn 1.
func ProtectionScore(t *domain.Tariff) int {
	score := 0

	switch {
	case t.Protections.RatchetPct.GreaterThanOrEqual(ratchetStrong):
		score += 3
	case t.Protections.RatchetPct.GreaterThanOrEqual(ratchetModerate):
		score += 2
	case t.Protections.RatchetPct.GreaterThanOrEqual(ratchetWeak):
		score += 1
	}

	switch {
	case t.InitialTermYears >= 15:
		score += 3
	case t.InitialTermYears >= 10:
		score += 2
	case t.InitialTermYears >= 5:
		score += 1
	}

	if t.Protections.CIACRequired {
		score += 2
	}
	if t.Protections.TakeOrPay {
		score += 2
	}
	if t.Protections.ExitFee {
		score += 2
	}
	if t.Protections.DemandRatchet {
		score++
	}
	if t.Protections.CreditRequirements {
		score++
	}
	if t.DataCenterSpecific {
		score += 2
	}
	if t.Protections.Collateral {
		score++
	}
	if t.MinLoadMW.GreaterThanOrEqual(minLoadFloor) {
		score++
	}

	return score
}

// ProtectionRating buckets a score into High (14+), Mid (8-13) or Low.
func ProtectionRating(score int) string {
	switch {
	case score >= 14:
		return RatingHigh
	case score >= 8:
		return RatingMid
	default:
		return RatingLow
	}
}
