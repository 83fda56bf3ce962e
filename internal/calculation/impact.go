package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

// RevenueOffset is the data center's annual tariff revenue by component.
// Coincident-peak (CP) charges bill contribution during system peaks, so a
// flexible campus pays less of them; non-coincident-peak (NCP) charges
// bill the customer's own monthly peak and land on firm and flexible loads
// alike.
type RevenueOffset struct {
	CPDemandRevenue  decimal.Decimal
	NCPDemandRevenue decimal.Decimal
	DemandRevenue    decimal.Decimal
	EnergyMargin     decimal.Decimal
	PerYear          decimal.Decimal
}

// DataCenterRevenue computes the annual revenue the data center pays under
// the given rate structure.
func (te *TrajectoryEngine) DataCenterRevenue(rates reference.RateStructure, capacityMW, loadFactor, peakCoincidence decimal.Decimal) RevenueOffset {
	cp := capacityMW.Mul(peakCoincidence).Mul(rates.CPChargePerMWMonth).Mul(decimalTwelve)
	ncp := capacityMW.Mul(rates.NCPChargePerMWMonth).Mul(decimalTwelve)
	energy := capacityMW.Mul(loadFactor).Mul(decimalHours).Mul(rates.EnergyMarginPerMWh)
	return RevenueOffset{
		CPDemandRevenue:  cp,
		NCPDemandRevenue: ncp,
		DemandRevenue:    cp.Add(ncp),
		EnergyMargin:     energy,
		PerYear:          cp.Add(ncp).Add(energy),
	}
}

// ImpactInput bundles the per-year inputs to the net impact calculation.
// CapacityPrice is the resolved price for the year (supply curve or
// static); zero when the market has none.
type ImpactInput struct {
	Utility         *domain.Utility
	Rates           reference.RateStructure
	CapacityMW      decimal.Decimal
	LoadFactor      decimal.Decimal
	PeakCoincidence decimal.Decimal
	Allocation      decimal.Decimal
	IncludeCredits  bool
	OnsiteMW        decimal.Decimal
	CapacityPrice   decimal.Decimal
}

// NetResidentialImpact computes the net annual cost the data center pushes
// onto residential ratepayers and the per-customer monthly figure.
//
// Costs: amortized transmission and distribution buildout (ERCOT instead
// allocates transmission through 4CP payments plus interconnection
// facilities) and capacity cost net of the CP demand-charge offset, less
// flexibility credits when the scenario earns them. Revenue offset: energy
// margin flow-through plus a share of NCP demand revenue.
func (te *TrajectoryEngine) NetResidentialImpact(in ImpactInput) domain.ImpactBreakdown {
	isFlexible := in.PeakCoincidence.LessThan(decimalOne)
	market := in.Utility.Market

	effectivePeakMW := in.CapacityMW.Mul(in.PeakCoincidence).Sub(in.OnsiteMW)
	positivePeakMW := decimal.Max(decimalZero, effectivePeakMW)

	var transmissionAnnual decimal.Decimal
	if market.Type == domain.MarketERCOT {
		fourCPAnnual := positivePeakMW.Mul(decimalThousand).Mul(in.Rates.ERCOT4CPRatePerKWMo).Mul(decimalTwelve)
		interconnection := positivePeakMW.Mul(te.Infra.TransmissionPerMW).Mul(decimal.NewFromFloat(0.3))
		transmissionAnnual = fourCPAnnual.Add(interconnection.Div(te.Infra.AmortizationYears))
	} else {
		transmissionAnnual = positivePeakMW.Mul(te.Infra.TransmissionPerMW).Div(te.Infra.AmortizationYears)
	}
	distributionAnnual := positivePeakMW.Mul(te.Infra.DistributionPerMW).Div(te.Infra.AmortizationYears)
	infraAnnual := transmissionAnnual.Add(distributionAnnual)

	half := decimal.NewFromFloat(0.5)
	baseCapacityCost := te.Infra.CapacityPerMWYear
	if market.HasCapacityMarket && in.CapacityPrice.GreaterThan(decimalZero) {
		priceAnnual := in.CapacityPrice.Mul(decimal.NewFromInt(365))
		baseCapacityCost = te.Infra.CapacityPerMWYear.Mul(half).
			Add(priceAnnual.Mul(market.CapacityCostPassThrough).Mul(half))
	}
	if market.Type == domain.MarketERCOT {
		baseCapacityCost = te.Infra.CapacityPerMWYear.Mul(half)
	}

	revenue := te.DataCenterRevenue(in.Rates, in.CapacityMW, in.LoadFactor, in.PeakCoincidence)

	cpChargeAnnual := in.Rates.CPChargePerMWMonth.Mul(decimalTwelve)
	netCapacityPerMW := decimal.Max(decimalZero, baseCapacityCost.Sub(cpChargeAnnual))
	capacityCostOrCredit := positivePeakMW.Mul(netCapacityPerMW)

	capacityCredit := decimalZero
	if in.IncludeCredits && isFlexible {
		curtailableMW := in.CapacityMW.Mul(decimalOne.Sub(in.PeakCoincidence))
		creditMultiplier := decimal.NewFromFloat(0.80)
		if market.HasCapacityMarket {
			creditMultiplier = decimal.NewFromFloat(0.90)
		}
		drCredit := curtailableMW.Mul(baseCapacityCost).Mul(creditMultiplier)
		genCredit := in.OnsiteMW.Mul(baseCapacityCost).Mul(decimal.NewFromFloat(0.95))
		capacityCredit = drCredit.Add(genCredit)
		capacityCostOrCredit = capacityCostOrCredit.Sub(capacityCredit)
	}

	grossAnnual := infraAnnual.Add(capacityCostOrCredit)

	flowThrough := decimal.NewFromFloat(0.85)
	if market.Type == domain.MarketERCOT {
		flowThrough = decimal.NewFromFloat(0.90)
	}
	revenueOffset := revenue.EnergyMargin.Mul(flowThrough).
		Add(revenue.NCPDemandRevenue.Mul(decimal.NewFromFloat(0.20)))

	netAnnual := grossAnnual.Sub(revenueOffset)

	adjustedAllocation := in.Allocation
	if market.Type == domain.MarketERCOT {
		// 4CP methodology bills the data center directly for transmission.
		adjustedAllocation = in.Allocation.Mul(decimal.NewFromFloat(0.70))
	} else if market.HasCapacityMarket && in.CapacityPrice.GreaterThan(decimalHundred) {
		bump := decimalOne.Add(in.CapacityPrice.Sub(decimalHundred).Div(decimalThousand))
		ceiling := decimal.NewFromFloat(1.15)
		if bump.GreaterThan(ceiling) {
			bump = ceiling
		}
		adjustedAllocation = in.Allocation.Mul(bump)
	}

	perCustomerMonthly := decimalZero
	if in.Utility.ResidentialCustomers > 0 {
		perCustomerMonthly = netAnnual.Mul(adjustedAllocation).
			Div(decimal.NewFromInt(in.Utility.ResidentialCustomers)).
			Div(decimalTwelve)
	}

	return domain.ImpactBreakdown{
		GrossCost:          grossAnnual,
		RevenueOffset:      revenueOffset,
		NetImpact:          netAnnual,
		AdjustedAllocation: adjustedAllocation,
		CapacityCredit:     capacityCredit,
		CapacityPriceUsed:  in.CapacityPrice,
		PerCustomerMonthly: perCustomerMonthly,
		IsFlexible:         isFlexible,
	}
}
