package curtail

import (
	"sort"

	"github.com/shopspring/decimal"
)

// FlexibilityFirstStrategy sheds the most flexible pools first, so
// latency-sensitive load keeps running until nothing else is left.
type FlexibilityFirstStrategy struct{}

func NewFlexibilityFirstStrategy() *FlexibilityFirstStrategy { return &FlexibilityFirstStrategy{} }

func (s *FlexibilityFirstStrategy) Name() string { return "flexibility_first" }

func (s *FlexibilityFirstStrategy) Plan(pools []WorkloadPool, needMW decimal.Decimal) Plan {
	plan := Plan{RequestedMW: needMW, StrategyUsed: s.Name(), Allocations: []Allocation{}}
	if needMW.LessThanOrEqual(decimal.Zero) {
		return plan
	}

	ordered := make([]WorkloadPool, len(pools))
	copy(ordered, pools)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Flexibility.GreaterThan(ordered[j].Flexibility)
	})

	remaining := needMW
	for _, pool := range ordered {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		available := pool.CurtailableMW()
		if available.LessThanOrEqual(decimal.Zero) {
			continue
		}

		take := available
		if take.GreaterThan(remaining) {
			take = remaining
		}

		plan.Allocations = append(plan.Allocations, newAllocation(pool, take))
		plan.TotalMW = plan.TotalMW.Add(take)
		remaining = remaining.Sub(take)
	}

	plan.RemainingMW = remaining
	if remaining.GreaterThan(decimal.Zero) {
		plan.Notes = append(plan.Notes, "curtailable capacity exhausted before meeting the request")
	}
	return plan
}
