package reference

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// Market presets. Capacity prices are 2024 clearing figures in $/MW-day.

// RegulatedMarket is a vertically integrated utility under state PUC
// oversight; infrastructure costs flow through the traditional rate base.
func RegulatedMarket() domain.MarketStructure {
	return domain.MarketStructure{
		Type:                    domain.MarketRegulated,
		HasCapacityMarket:       false,
		BaseResidentialAlloc:    decimal.NewFromFloat(0.40),
		CapacityCostPassThrough: decimal.NewFromFloat(0.40),
		TransmissionAllocation:  decimal.NewFromFloat(0.35),
		UtilityOwnsGeneration:   true,
		Notes:                   "Vertically integrated utility. Infrastructure costs allocated through traditional rate base.",
	}
}

// PJMMarket reflects the PJM capacity market after the 2024 auction
// cleared at $269.92/MW-day, a tenfold increase.
func PJMMarket() domain.MarketStructure {
	price := decimal.NewFromFloat(269.92)
	return domain.MarketStructure{
		Type:                    domain.MarketPJM,
		HasCapacityMarket:       true,
		BaseResidentialAlloc:    decimal.NewFromFloat(0.35),
		CapacityCostPassThrough: decimal.NewFromFloat(0.50),
		TransmissionAllocation:  decimal.NewFromFloat(0.35),
		UtilityOwnsGeneration:   false,
		CapacityPrice:           &price,
		Notes:                   "PJM capacity market. 2024 auction cleared at $269.92/MW-day (10x increase).",
	}
}

// ERCOTMarket is the Texas energy-only market; no capacity payments,
// transmission allocated by 4CP contribution.
func ERCOTMarket() domain.MarketStructure {
	return domain.MarketStructure{
		Type:                    domain.MarketERCOT,
		HasCapacityMarket:       false,
		BaseResidentialAlloc:    decimal.NewFromFloat(0.30),
		CapacityCostPassThrough: decimal.NewFromFloat(0.25),
		TransmissionAllocation:  decimal.NewFromFloat(0.35),
		UtilityOwnsGeneration:   false,
		Notes:                   "Energy-only market with no capacity payments. Price signals drive investment.",
	}
}

// MISOMarket runs a capacity market with far lower clearing prices than
// PJM.
func MISOMarket() domain.MarketStructure {
	price := decimal.NewFromFloat(30.00)
	return domain.MarketStructure{
		Type:                    domain.MarketMISO,
		HasCapacityMarket:       true,
		BaseResidentialAlloc:    decimal.NewFromFloat(0.38),
		CapacityCostPassThrough: decimal.NewFromFloat(0.35),
		TransmissionAllocation:  decimal.NewFromFloat(0.35),
		UtilityOwnsGeneration:   true,
		CapacityPrice:           &price,
		Notes:                   "MISO capacity market with lower clearing prices than PJM.",
	}
}

// SPPMarket is an energy market without a mandatory capacity market.
func SPPMarket() domain.MarketStructure {
	return domain.MarketStructure{
		Type:                    domain.MarketSPP,
		HasCapacityMarket:       false,
		BaseResidentialAlloc:    decimal.NewFromFloat(0.40),
		CapacityCostPassThrough: decimal.NewFromFloat(0.40),
		TransmissionAllocation:  decimal.NewFromFloat(0.35),
		UtilityOwnsGeneration:   true,
		Notes:                   "Southwest Power Pool. Energy market but no mandatory capacity market.",
	}
}

// MarketByType returns the preset for a market type, defaulting to the
// regulated preset for unknown types.
func MarketByType(t domain.MarketType) domain.MarketStructure {
	switch t {
	case domain.MarketPJM:
		return PJMMarket()
	case domain.MarketERCOT:
		return ERCOTMarket()
	case domain.MarketMISO:
		return MISOMarket()
	case domain.MarketSPP:
		return SPPMarket()
	default:
		return RegulatedMarket()
	}
}

// MarketAdjustedAllocation returns the residential allocation for a
// profile after market effects. High capacity-market prices push costs
// toward ratepayers; ERCOT's 4CP structure pushes them toward the load.
// Result is clamped to [0.20, 0.55].
func MarketAdjustedAllocation(p *domain.UtilityProfile) decimal.Decimal {
	if p == nil {
		return decimal.NewFromFloat(0.40)
	}
	allocation := p.Market.BaseResidentialAlloc

	if p.Market.HasCapacityMarket && p.Market.CapacityPrice != nil {
		// Normalize against the historical ~$30/MW-day clearing level.
		priceMultiplier := p.Market.CapacityPrice.Div(decimal.NewFromInt(30))
		adjustment := priceMultiplier.Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromFloat(0.02))
		cap := decimal.NewFromFloat(0.10)
		if adjustment.GreaterThan(cap) {
			adjustment = cap
		}
		allocation = allocation.Add(adjustment.Mul(p.Market.CapacityCostPassThrough))
	}

	if p.Market.Type == domain.MarketERCOT {
		allocation = allocation.Mul(decimal.NewFromFloat(0.85))
	}

	lo := decimal.NewFromFloat(0.20)
	hi := decimal.NewFromFloat(0.55)
	if allocation.LessThan(lo) {
		return lo
	}
	if allocation.GreaterThan(hi) {
		return hi
	}
	return allocation
}
