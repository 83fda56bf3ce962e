package curtail

import "github.com/shopspring/decimal"

// CustomStrategy sheds pools in a user-specified order. Pools outside the
// order are never touched. An empty order, a duplicate, or a name that
// matches no pool invalidates the whole order and falls back to
// flexibility_first.
type CustomStrategy struct {
	Order []string
}

func NewCustomStrategy(order []string) *CustomStrategy { return &CustomStrategy{Order: order} }

func (s *CustomStrategy) Name() string { return "custom" }

func (s *CustomStrategy) Plan(pools []WorkloadPool, needMW decimal.Decimal) Plan {
	lookup := map[string]*WorkloadPool{}
	for i := range pools {
		lookup[pools[i].ID] = &pools[i]
	}

	seen := map[string]bool{}
	valid := len(s.Order) > 0
	for _, id := range s.Order {
		if lookup[id] == nil || seen[id] {
			valid = false
			break
		}
		seen[id] = true
	}
	if !valid {
		fallback := NewFlexibilityFirstStrategy().Plan(pools, needMW)
		fallback.StrategyUsed = "custom->flexibility_first_fallback"
		fallback.Notes = append([]string{"invalid or empty custom order - falling back to flexibility_first"}, fallback.Notes...)
		return fallback
	}

	plan := Plan{RequestedMW: needMW, StrategyUsed: s.Name(), Allocations: []Allocation{}}
	if needMW.LessThanOrEqual(decimal.Zero) {
		return plan
	}

	remaining := needMW
	for _, id := range s.Order {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		pool := lookup[id]
		available := pool.CurtailableMW()
		if available.LessThanOrEqual(decimal.Zero) {
			continue
		}

		take := available
		if take.GreaterThan(remaining) {
			take = remaining
		}

		plan.Allocations = append(plan.Allocations, newAllocation(*pool, take))
		plan.TotalMW = plan.TotalMW.Add(take)
		remaining = remaining.Sub(take)
	}

	plan.RemainingMW = remaining
	if remaining.GreaterThan(decimal.Zero) {
		plan.Notes = append(plan.Notes, "ordered pools exhausted before meeting the request")
	}
	return plan
}
