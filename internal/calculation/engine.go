// Package calculation implements the bill-trajectory engine: residential
// cost allocation, net data-center impact, the four scenario projections,
// and the analysis tooling built on top of them (headroom, sensitivity,
// uncertainty, load shapes).
package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

var (
	decimalZero     = decimal.Zero
	decimalOne      = decimal.NewFromInt(1)
	decimalTwelve   = decimal.NewFromInt(12)
	decimalHundred  = decimal.NewFromInt(100)
	decimalThousand = decimal.NewFromInt(1000)
	decimalHours    = decimal.NewFromInt(8760)
)

// TrajectoryEngine orchestrates the scenario projections. It carries the
// static cost tables and the capacity supply curve; per-run inputs are
// passed to the projection methods.
type TrajectoryEngine struct {
	Infra  reference.InfrastructureCosts
	Curve  reference.SupplyCurve
	Logger Logger
	Debug  bool
}

// NewTrajectoryEngine creates an engine on the standard reference tables.
func NewTrajectoryEngine() *TrajectoryEngine {
	return &TrajectoryEngine{
		Infra:  reference.Infrastructure(),
		Curve:  reference.VRRCurve(),
		Logger: NopLogger{},
	}
}

// scenarioShape bundles the load parameters one scenario projects with.
// The dispatchable scenario uses a reduced coincidence for the allocation
// call because onsite generation shrinks its visible peak contribution.
type scenarioShape struct {
	id               domain.ScenarioID
	loadFactor       decimal.Decimal
	peakCoincidence  decimal.Decimal
	allocCoincidence decimal.Decimal
	includeCredits   bool
	onsiteMW         decimal.Decimal
	dampening        decimal.Decimal
}

func scenarioShapeFor(id domain.ScenarioID, dc *domain.DataCenter) (scenarioShape, error) {
	switch id {
	case domain.ScenarioUnoptimized:
		return scenarioShape{
			id:               id,
			loadFactor:       dc.FirmLoadFactor,
			peakCoincidence:  dc.FirmPeakCoincidence,
			allocCoincidence: dc.FirmPeakCoincidence,
			onsiteMW:         decimalZero,
			dampening:        decimal.NewFromFloat(0.8),
		}, nil
	case domain.ScenarioFlexible:
		return scenarioShape{
			id:               id,
			loadFactor:       dc.FlexLoadFactor,
			peakCoincidence:  dc.FlexPeakCoincidence,
			allocCoincidence: dc.FlexPeakCoincidence,
			includeCredits:   true,
			onsiteMW:         decimalZero,
			dampening:        decimal.NewFromFloat(0.9),
		}, nil
	case domain.ScenarioDispatchable:
		allocCoincidence := dc.FlexPeakCoincidence.Sub(dc.OnsiteShareOfCapacity())
		if allocCoincidence.LessThan(decimalZero) {
			allocCoincidence = decimalZero
		}
		return scenarioShape{
			id:               id,
			loadFactor:       dc.FlexLoadFactor,
			peakCoincidence:  dc.FlexPeakCoincidence,
			allocCoincidence: allocCoincidence,
			includeCredits:   true,
			onsiteMW:         dc.OnsiteGenerationMW,
			dampening:        decimal.NewFromFloat(0.95),
		}, nil
	}
	return scenarioShape{}, fmt.Errorf("unknown scenario %q", id)
}

func baseYearOf(assumptions *domain.GlobalAssumptions) int {
	if assumptions.BaseYear > 0 {
		return assumptions.BaseYear
	}
	return reference.BaseYear
}

// ProjectBaseline projects monthly bills without any data center. Year
// zero is the current bill; later years compound at the sum of the
// enabled escalation rates, so a run with both toggles off stays flat.
func (te *TrajectoryEngine) ProjectBaseline(utility *domain.Utility, assumptions *domain.GlobalAssumptions) domain.ScenarioTrajectory {
	horizon := assumptions.Horizon()
	baseYear := baseYearOf(assumptions)
	growth := decimalOne.Add(assumptions.Escalation.BaselineGrowthRate())

	points := make([]domain.TrajectoryPoint, 0, horizon+1)
	for year := 0; year <= horizon; year++ {
		bill := utility.AvgMonthlyBill
		if year > 0 {
			bill = bill.Mul(growth.Pow(decimal.NewFromInt(int64(year))))
		}
		points = append(points, domain.TrajectoryPoint{
			Year:        baseYear + year,
			MonthlyBill: bill,
			DCImpact:    decimalZero,
		})
	}
	return domain.ScenarioTrajectory{Scenario: domain.ScenarioBaseline, Points: points}
}

// ProjectScenario projects one scenario. The first two projection years
// carry no impact (construction lead time); year two phases the impact in
// at half strength; impact escalates with inflation once online, dampened
// when the net impact is a credit.
func (te *TrajectoryEngine) ProjectScenario(ctx context.Context, id domain.ScenarioID, utility *domain.Utility, dc *domain.DataCenter, tariff *domain.Tariff, assumptions *domain.GlobalAssumptions) (domain.ScenarioTrajectory, error) {
	if id == domain.ScenarioBaseline {
		return te.ProjectBaseline(utility, assumptions), nil
	}
	shape, err := scenarioShapeFor(id, dc)
	if err != nil {
		return domain.ScenarioTrajectory{}, err
	}

	baseline := te.ProjectBaseline(utility, assumptions)
	rates := reference.RatesFromTariff(tariff, utility.MarginalEnergyCost)
	horizon := assumptions.Horizon()
	baseYear := baseYearOf(assumptions)
	halfPhase := decimal.NewFromFloat(0.5)

	points := make([]domain.TrajectoryPoint, 0, horizon+1)
	for year := 0; year <= horizon; year++ {
		if err := ctx.Err(); err != nil {
			return domain.ScenarioTrajectory{}, fmt.Errorf("projecting %s: %w", id, err)
		}

		base := baseline.Points[year].MonthlyBill
		if year < 2 {
			points = append(points, domain.TrajectoryPoint{
				Year:        baseYear + year,
				MonthlyBill: base,
				DCImpact:    decimalZero,
			})
			continue
		}

		phaseIn := decimalOne
		if year == 2 {
			phaseIn = halfPhase
		}
		yearsOnline := year - 2

		alloc := te.ResidentialAllocation(utility, dc.CapacityMW, shape.loadFactor, shape.allocCoincidence, yearsOnline)

		effectiveMW := dc.CapacityMW.Mul(shape.peakCoincidence).Sub(shape.onsiteMW)
		if effectiveMW.LessThan(decimalZero) {
			effectiveMW = decimalZero
		}
		price := te.capacityPriceForYear(utility, effectiveMW.Mul(phaseIn), assumptions)

		impact := te.NetResidentialImpact(ImpactInput{
			Utility:         utility,
			Rates:           rates,
			CapacityMW:      dc.CapacityMW,
			LoadFactor:      shape.loadFactor,
			PeakCoincidence: shape.peakCoincidence,
			Allocation:      alloc.Allocation,
			IncludeCredits:  shape.includeCredits,
			OnsiteMW:        shape.onsiteMW,
			CapacityPrice:   price,
		})

		dcImpact := impact.PerCustomerMonthly.Mul(phaseIn)
		growth := decimalOne.Add(assumptions.GeneralInflation)
		if !dcImpact.GreaterThan(decimalZero) {
			growth = decimalOne.Add(assumptions.GeneralInflation.Mul(shape.dampening))
		}
		if yearsOnline > 0 {
			dcImpact = dcImpact.Mul(growth.Pow(decimal.NewFromInt(int64(yearsOnline))))
		}

		if te.Debug {
			te.Logger.Debugf("%s year %d: allocation=%s price=%s perCustomer=%s impact=%s",
				id, baseYear+year, alloc.Allocation.StringFixed(4), price.StringFixed(2),
				impact.PerCustomerMonthly.StringFixed(4), dcImpact.StringFixed(4))
		}

		points = append(points, domain.TrajectoryPoint{
			Year:        baseYear + year,
			MonthlyBill: base.Add(dcImpact),
			DCImpact:    dcImpact,
		})
	}

	return domain.ScenarioTrajectory{Scenario: id, Points: points}, nil
}

// ProjectAll runs all four scenarios and returns the complete set. A nil
// tariff means the generic data-center rate structure.
func (te *TrajectoryEngine) ProjectAll(ctx context.Context, utility *domain.Utility, dc *domain.DataCenter, tariff *domain.Tariff, assumptions *domain.GlobalAssumptions) (*domain.TrajectorySet, error) {
	set := &domain.TrajectorySet{
		Trajectories: make(map[domain.ScenarioID]domain.ScenarioTrajectory, len(domain.ScenarioOrder)),
		Horizon:      assumptions.Horizon(),
		BaseYear:     baseYearOf(assumptions),
	}
	for _, id := range domain.ScenarioOrder {
		trajectory, err := te.ProjectScenario(ctx, id, utility, dc, tariff, assumptions)
		if err != nil {
			return nil, err
		}
		set.Trajectories[id] = trajectory
	}
	return set, nil
}

// capacityPriceForYear resolves the capacity price the impact model sees
// for one projection year. With the supply curve enabled the forward price
// follows the reserve margin left after the phased-in data-center load;
// otherwise the market's static price applies.
func (te *TrajectoryEngine) capacityPriceForYear(utility *domain.Utility, addedMW decimal.Decimal, assumptions *domain.GlobalAssumptions) decimal.Decimal {
	static := utility.CapacityPriceOrZero()
	if !assumptions.UseSupplyCurve || !utility.Market.HasCapacityMarket {
		return static
	}
	if utility.GenerationCapacityMW.LessThanOrEqual(decimalZero) {
		return static
	}
	margin := utility.ReserveMarginAfter(addedMW)
	return te.Curve.PriceFor(margin)
}
