package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// residentialPeakShare is the residential contribution to system peak.
var residentialPeakShare = decimal.NewFromFloat(0.45)

// phaseInFactor ramps from zero to one over spanYears.
func phaseInFactor(yearsOnline, spanYears int) decimal.Decimal {
	if yearsOnline >= spanYears {
		return decimalOne
	}
	if yearsOnline <= 0 {
		return decimalZero
	}
	return decimal.NewFromInt(int64(yearsOnline)).Div(decimal.NewFromInt(int64(spanYears)))
}

// ResidentialAllocation computes the share of system costs borne by
// residential customers once the data center is online. It blends a
// volumetric share, a demand share, and a customer-count share at
// 40/40/20, phases the data center's energy and peak in over three years,
// and moves from the utility's base allocation toward the blended figure
// over a five-year regulatory lag. The result is clamped to [0.15, 0.50].
func (te *TrajectoryEngine) ResidentialAllocation(utility *domain.Utility, capacityMW, loadFactor, peakCoincidence decimal.Decimal, yearsOnline int) domain.AllocationBreakdown {
	preDCEnergyMWh := utility.PreDCSystemEnergyGWh.Mul(decimalThousand)
	residentialEnergyMWh := preDCEnergyMWh.Mul(utility.ResidentialEnergy)

	dcAnnualMWh := capacityMW.Mul(loadFactor).Mul(decimalHours)
	phaseIn := phaseInFactor(yearsOnline, 3)
	postDCEnergyMWh := preDCEnergyMWh.Add(dcAnnualMWh.Mul(phaseIn))

	volumetricShare := decimalZero
	if postDCEnergyMWh.GreaterThan(decimalZero) {
		volumetricShare = residentialEnergyMWh.Div(postDCEnergyMWh)
	}

	residentialPeakMW := utility.SystemPeakMW.Mul(residentialPeakShare)
	dcPeakContribution := capacityMW.Mul(peakCoincidence).Mul(phaseIn)
	postDCPeakMW := utility.SystemPeakMW.Add(dcPeakContribution)

	demandShare := decimalZero
	if postDCPeakMW.GreaterThan(decimalZero) {
		demandShare = residentialPeakMW.Div(postDCPeakMW)
	}

	// TotalCustomerCount is never zero, see domain.Utility.
	customerShare := decimal.NewFromInt(utility.ResidentialCustomers).
		Div(decimal.NewFromInt(utility.TotalCustomerCount()))

	fortyPct := decimal.NewFromFloat(0.40)
	weighted := volumetricShare.Mul(fortyPct).
		Add(demandShare.Mul(fortyPct)).
		Add(customerShare.Mul(decimal.NewFromFloat(0.20)))

	lag := phaseInFactor(yearsOnline, 5)
	allocation := utility.BaseResidentialAlloc.Mul(decimalOne.Sub(lag)).Add(weighted.Mul(lag))

	lo := decimal.NewFromFloat(0.15)
	hi := decimal.NewFromFloat(0.50)
	if allocation.LessThan(lo) {
		allocation = lo
	} else if allocation.GreaterThan(hi) {
		allocation = hi
	}

	return domain.AllocationBreakdown{
		Allocation:      allocation,
		VolumetricShare: volumetricShare,
		DemandShare:     demandShare,
		CustomerShare:   customerShare,
	}
}
