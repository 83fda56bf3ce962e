// Package curtail plans how a flexible data center sheds load during
// system peaks: a strategy distributes a required curtailment across
// workload pools and reports what each pool gives up.
package curtail

import (
	"github.com/shopspring/decimal"

	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

// WorkloadPool is one slice of the fleet available for curtailment.
// Flexibility is the fraction of the pool's capacity that can shed.
type WorkloadPool struct {
	ID          string
	Name        string
	CapacityMW  decimal.Decimal
	Flexibility decimal.Decimal
}

// CurtailableMW is the most this pool can shed.
func (p *WorkloadPool) CurtailableMW() decimal.Decimal {
	return p.CapacityMW.Mul(p.Flexibility)
}

// Allocation records the curtailment taken from one pool. PoolShare is
// the curtailed fraction of the pool's capacity.
type Allocation struct {
	Pool        string
	CurtailedMW decimal.Decimal
	PoolShare   decimal.Decimal
}

// Plan aggregates a strategy's answer: per-pool allocations, the total
// shed, and whatever the fleet could not cover.
type Plan struct {
	RequestedMW  decimal.Decimal
	Allocations  []Allocation
	TotalMW      decimal.Decimal
	RemainingMW  decimal.Decimal
	StrategyUsed string
	Notes        []string
}

// Strategy decides which megawatts stop first.
type Strategy interface {
	Name() string
	Plan(pools []WorkloadPool, needMW decimal.Decimal) Plan
}

// PoolsFor scales the standard workload mix to a fleet's nameplate
// capacity.
func PoolsFor(dc *domain.DataCenter) []WorkloadPool {
	classes := reference.WorkloadClasses()
	pools := make([]WorkloadPool, 0, len(classes))
	for _, w := range classes {
		pools = append(pools, WorkloadPool{
			ID:          w.ID,
			Name:        w.Name,
			CapacityMW:  dc.CapacityMW.Mul(w.Share),
			Flexibility: w.Flexibility,
		})
	}
	return pools
}

func newAllocation(pool WorkloadPool, mw decimal.Decimal) Allocation {
	share := decimal.Zero
	if pool.CapacityMW.GreaterThan(decimal.Zero) {
		share = mw.Div(pool.CapacityMW)
	}
	return Allocation{Pool: pool.ID, CurtailedMW: mw, PoolShare: share}
}
