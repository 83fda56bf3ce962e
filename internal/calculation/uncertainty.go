package calculation

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
)

// UncertaintyConfig parameterizes the Monte Carlo run. Standard deviations
// perturb inflation additively, the capacity price relatively, and the
// flexible peak coincidence additively.
type UncertaintyConfig struct {
	NumSimulations        int
	Seed                  int64
	Workers               int
	InflationStdDev       decimal.Decimal
	CapacityPriceStdDev   decimal.Decimal
	FlexCoincidenceStdDev decimal.Decimal
}

// DefaultUncertaintyConfig returns the standard run: 500 simulations,
// four workers, fixed seed for reproducible bands.
func DefaultUncertaintyConfig() UncertaintyConfig {
	return UncertaintyConfig{
		NumSimulations:        500,
		Seed:                  20250101,
		Workers:               4,
		InflationStdDev:       decimal.NewFromFloat(0.005),
		CapacityPriceStdDev:   decimal.NewFromFloat(0.20),
		FlexCoincidenceStdDev: decimal.NewFromFloat(0.05),
	}
}

// PercentileBand holds the five standard percentiles of a distribution.
type PercentileBand struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// YearBand is the bill distribution for one projection year.
type YearBand struct {
	Year int             `json:"year"`
	P10  decimal.Decimal `json:"p10"`
	P50  decimal.Decimal `json:"p50"`
	P90  decimal.Decimal `json:"p90"`
}

// UncertaintyResult aggregates the simulation outcomes per scenario.
type UncertaintyResult struct {
	Simulations int                                  `json:"simulations"`
	FinalBills  map[domain.ScenarioID]PercentileBand `json:"finalBills"`
	YearBands   map[domain.ScenarioID][]YearBand     `json:"yearBands"`
}

// UncertaintyEngine runs seeded Monte Carlo projections. Draws are
// generated sequentially from one seeded source so a fixed seed always
// yields the same bands regardless of worker scheduling.
type UncertaintyEngine struct {
	engine *TrajectoryEngine
	config UncertaintyConfig
}

// NewUncertaintyEngine creates a Monte Carlo engine.
func NewUncertaintyEngine(engine *TrajectoryEngine, config UncertaintyConfig) *UncertaintyEngine {
	if config.NumSimulations <= 0 {
		config.NumSimulations = DefaultUncertaintyConfig().NumSimulations
	}
	if config.Workers <= 0 {
		config.Workers = DefaultUncertaintyConfig().Workers
	}
	return &UncertaintyEngine{engine: engine, config: config}
}

type simulationDraw struct {
	index           int
	inflation       decimal.Decimal
	capacityPrice   decimal.Decimal
	hasPrice        bool
	flexCoincidence decimal.Decimal
}

func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}

// generateDraws produces the perturbed inputs for every simulation.
func (ue *UncertaintyEngine) generateDraws(utility *domain.Utility, dc *domain.DataCenter, assumptions *domain.GlobalAssumptions) []simulationDraw {
	rng := rand.New(rand.NewSource(ue.config.Seed))
	draws := make([]simulationDraw, ue.config.NumSimulations)

	staticPrice := utility.CapacityPriceOrZero()
	for i := range draws {
		inflation := assumptions.GeneralInflation.
			Add(decimal.NewFromFloat(rng.NormFloat64()).Mul(ue.config.InflationStdDev))
		inflation = clampDecimal(inflation, decimalZero, decimal.NewFromFloat(0.20))

		flex := dc.FlexPeakCoincidence.
			Add(decimal.NewFromFloat(rng.NormFloat64()).Mul(ue.config.FlexCoincidenceStdDev))
		flex = clampDecimal(flex, decimal.NewFromFloat(0.05), decimalOne)

		draw := simulationDraw{
			index:           i,
			inflation:       inflation,
			flexCoincidence: flex,
		}
		if utility.Market.HasCapacityMarket && staticPrice.GreaterThan(decimalZero) {
			factor := decimalOne.Add(decimal.NewFromFloat(rng.NormFloat64()).Mul(ue.config.CapacityPriceStdDev))
			draw.capacityPrice = decimal.Max(decimalZero, staticPrice.Mul(factor))
			draw.hasPrice = true
		}
		draws[i] = draw
	}
	return draws
}

// Run executes the simulations across a bounded worker pool and reduces
// the trajectory sets to percentile bands.
func (ue *UncertaintyEngine) Run(ctx context.Context, utility *domain.Utility, dc *domain.DataCenter, tariff *domain.Tariff, assumptions *domain.GlobalAssumptions) (*UncertaintyResult, error) {
	draws := ue.generateDraws(utility, dc, assumptions)
	sets := make([]*domain.TrajectorySet, len(draws))

	jobs := make(chan simulationDraw, len(draws))
	for _, d := range draws {
		jobs <- d
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < ue.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for draw := range jobs {
				u := *utility
				d := *dc
				a := *assumptions

				a.GeneralInflation = draw.inflation
				a.Escalation.InflationRate = draw.inflation
				d.FlexPeakCoincidence = draw.flexCoincidence
				if draw.hasPrice {
					price := draw.capacityPrice
					u.Market.CapacityPrice = &price
				}

				set, err := ue.engine.ProjectAll(ctx, &u, &d, tariff, &a)
				if err != nil {
					// Only cancellation can fail a run; drop the slot and
					// let the ctx check below surface it.
					continue
				}
				sets[draw.index] = set
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("uncertainty run cancelled: %w", err)
	}

	return ue.reduce(sets, assumptions), nil
}

func (ue *UncertaintyEngine) reduce(sets []*domain.TrajectorySet, assumptions *domain.GlobalAssumptions) *UncertaintyResult {
	result := &UncertaintyResult{
		FinalBills: make(map[domain.ScenarioID]PercentileBand),
		YearBands:  make(map[domain.ScenarioID][]YearBand),
	}

	horizon := assumptions.Horizon()
	baseYear := baseYearOf(assumptions)

	for _, id := range domain.ScenarioOrder {
		finals := make([]decimal.Decimal, 0, len(sets))
		perYear := make([][]decimal.Decimal, horizon+1)

		for _, set := range sets {
			if set == nil {
				continue
			}
			trajectory, ok := set.Get(id)
			if !ok || len(trajectory.Points) != horizon+1 {
				continue
			}
			finals = append(finals, trajectory.FinalBill())
			for y, point := range trajectory.Points {
				perYear[y] = append(perYear[y], point.MonthlyBill)
			}
		}
		if len(finals) == 0 {
			continue
		}
		result.Simulations = len(finals)

		sortDecimals(finals)
		result.FinalBills[id] = PercentileBand{
			P10: percentileOf(finals, 0.10),
			P25: percentileOf(finals, 0.25),
			P50: percentileOf(finals, 0.50),
			P75: percentileOf(finals, 0.75),
			P90: percentileOf(finals, 0.90),
		}

		bands := make([]YearBand, 0, horizon+1)
		for y := 0; y <= horizon; y++ {
			values := perYear[y]
			sortDecimals(values)
			bands = append(bands, YearBand{
				Year: baseYear + y,
				P10:  percentileOf(values, 0.10),
				P50:  percentileOf(values, 0.50),
				P90:  percentileOf(values, 0.90),
			})
		}
		result.YearBands[id] = bands
	}
	return result
}

func sortDecimals(values []decimal.Decimal) {
	sort.Slice(values, func(i, j int) bool { return values[i].LessThan(values[j]) })
}

// percentileOf reads a percentile from sorted values with linear
// interpolation between neighbors.
func percentileOf(values []decimal.Decimal, percentile float64) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	index := percentile * float64(len(values)-1)
	lower := int(index)
	if index == float64(lower) {
		return values[lower]
	}
	fraction := decimal.NewFromFloat(index - float64(lower))
	return values[lower].Add(values[lower+1].Sub(values[lower]).Mul(fraction))
}
