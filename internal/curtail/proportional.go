package curtail

import "github.com/shopspring/decimal"

// ProportionalStrategy spreads the curtailment across every pool in
// proportion to what each can shed, so no single workload class takes the
// whole hit.
type ProportionalStrategy struct{}

func NewProportionalStrategy() *ProportionalStrategy { return &ProportionalStrategy{} }

func (s *ProportionalStrategy) Name() string { return "proportional" }

func (s *ProportionalStrategy) Plan(pools []WorkloadPool, needMW decimal.Decimal) Plan {
	plan := Plan{RequestedMW: needMW, StrategyUsed: s.Name(), Allocations: []Allocation{}}
	if needMW.LessThanOrEqual(decimal.Zero) {
		return plan
	}

	total := decimal.Zero
	for i := range pools {
		total = total.Add(pools[i].CurtailableMW())
	}
	if total.LessThanOrEqual(decimal.Zero) {
		plan.RemainingMW = needMW
		plan.Notes = append(plan.Notes, "no curtailable capacity in any pool")
		return plan
	}

	if needMW.GreaterThanOrEqual(total) {
		for _, pool := range pools {
			available := pool.CurtailableMW()
			if available.LessThanOrEqual(decimal.Zero) {
				continue
			}
			plan.Allocations = append(plan.Allocations, newAllocation(pool, available))
			plan.TotalMW = plan.TotalMW.Add(available)
		}
		plan.RemainingMW = needMW.Sub(plan.TotalMW)
		if plan.RemainingMW.GreaterThan(decimal.Zero) {
			plan.Notes = append(plan.Notes, "curtailable capacity exhausted before meeting the request")
		}
		return plan
	}

	// The last eligible pool takes the division residue so the plan sums
	// exactly to the request.
	last := -1
	for i := range pools {
		if pools[i].CurtailableMW().GreaterThan(decimal.Zero) {
			last = i
		}
	}
	scale := needMW.Div(total)
	for i, pool := range pools {
		available := pool.CurtailableMW()
		if available.LessThanOrEqual(decimal.Zero) {
			continue
		}
		take := available.Mul(scale)
		if i == last {
			take = needMW.Sub(plan.TotalMW)
			if take.GreaterThan(available) {
				take = available
			}
		}
		plan.Allocations = append(plan.Allocations, newAllocation(pool, take))
		plan.TotalMW = plan.TotalMW.Add(take)
	}

	plan.RemainingMW = needMW.Sub(plan.TotalMW)
	return plan
}
