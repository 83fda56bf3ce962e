package tariff

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/gridbill/gridbill/internal/calculation"
	"github.com/gridbill/gridbill/internal/domain"
	"github.com/gridbill/gridbill/internal/reference"
)

// heatmapWorkers bounds the concurrent trajectory projections while
// building rollups.
const heatmapWorkers = 4

// StateRollup aggregates the profiled utilities and catalogued tariffs of
// one state for the national heatmap. FirmIncreasePct is the projected
// bill increase for the state's largest profiled utility under the
// unoptimized scenario, nil where no utility is profiled.
type StateRollup struct {
	State                string            `json:"state"`
	Utilities            int               `json:"utilities"`
	ResidentialCustomers int64             `json:"residentialCustomers"`
	DominantMarket       domain.MarketType `json:"dominantMarket"`
	LargestUtility       string            `json:"largestUtility,omitempty"`
	TariffCount          int               `json:"tariffCount"`
	MeanProtectionScore  decimal.Decimal   `json:"meanProtectionScore"`
	BestRating           string            `json:"bestRating,omitempty"`
	FirmIncreasePct      *decimal.Decimal  `json:"firmIncreasePct,omitempty"`
}

// Profiles attribute to their primary (first listed) state so multi-state
// territories are not double counted.
var stateCodes = map[string]string{
	"Oklahoma":       "OK",
	"North Carolina": "NC",
	"South Carolina": "SC",
	"Georgia":        "GA",
	"Arizona":        "AZ",
	"Nevada":         "NV",
	"Colorado":       "CO",
	"Ohio":           "OH",
	"Indiana":        "IN",
	"Michigan":       "MI",
	"Virginia":       "VA",
	"West Virginia":  "WV",
	"Arkansas":       "AR",
	"Louisiana":      "LA",
	"Texas":          "TX",
}

var isoMarkets = map[string]domain.MarketType{
	"PJM":   domain.MarketPJM,
	"ERCOT": domain.MarketERCOT,
	"MISO":  domain.MarketMISO,
	"SPP":   domain.MarketSPP,
}

var marketOrder = []domain.MarketType{
	domain.MarketRegulated,
	domain.MarketPJM,
	domain.MarketERCOT,
	domain.MarketMISO,
	domain.MarketSPP,
}

// BuildStateRollups assembles one rollup per state that has a profiled
// utility or a catalogued tariff, sorted by state code. Projections run
// concurrently under the given context; horizon overrides the default
// projection length when positive.
func BuildStateRollups(ctx context.Context, horizon int) ([]StateRollup, error) {
	profilesByState := make(map[string][]domain.UtilityProfile)
	for _, p := range reference.Profiles() {
		code := primaryStateCode(p.State)
		if code == "" {
			continue
		}
		profilesByState[code] = append(profilesByState[code], p)
	}

	tariffsByState := make(map[string][]domain.Tariff)
	for _, t := range Catalog() {
		tariffsByState[t.State] = append(tariffsByState[t.State], t)
	}

	seen := make(map[string]bool)
	for code := range profilesByState {
		seen[code] = true
	}
	for code := range tariffsByState {
		seen[code] = true
	}
	states := make([]string, 0, len(seen))
	for code := range seen {
		states = append(states, code)
	}
	sort.Strings(states)

	rollups := make([]StateRollup, len(states))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(heatmapWorkers)

	for i, code := range states {
		profiles := profilesByState[code]
		tariffs := tariffsByState[code]

		r := StateRollup{
			State:          code,
			Utilities:      len(profiles),
			DominantMarket: dominantMarket(profiles, tariffs),
			TariffCount:    len(tariffs),
		}
		for _, p := range profiles {
			r.ResidentialCustomers += p.ResidentialCustomers
		}
		if len(tariffs) > 0 {
			sum, best := 0, 0
			for _, t := range tariffs {
				sum += t.ProtectionScore
				if t.ProtectionScore > best {
					best = t.ProtectionScore
				}
			}
			r.MeanProtectionScore = decimal.NewFromInt(int64(sum)).
				Div(decimal.NewFromInt(int64(len(tariffs)))).Round(1)
			r.BestRating = ProtectionRating(best)
		}
		rollups[i] = r

		if len(profiles) == 0 {
			continue
		}
		largest := profiles[0]
		for _, p := range profiles[1:] {
			if p.ResidentialCustomers > largest.ResidentialCustomers {
				largest = p
			}
		}
		rollups[i].LargestUtility = largest.ShortName

		i := i
		g.Go(func() error {
			pct, err := firmIncreasePct(gctx, largest, horizon)
			if err != nil {
				return err
			}
			rollups[i].FirmIncreasePct = &pct
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rollups, nil
}

func primaryStateCode(state string) string {
	primary, _, _ := strings.Cut(state, "/")
	return stateCodes[strings.TrimSpace(primary)]
}

// dominantMarket picks the most common market structure among the state's
// profiles, falling back to the tariffs' ISO membership where no utility
// is profiled. Ties resolve in canonical market order.
func dominantMarket(profiles []domain.UtilityProfile, tariffs []domain.Tariff) domain.MarketType {
	counts := make(map[domain.MarketType]int)
	for _, p := range profiles {
		counts[p.Market.Type]++
	}
	if len(counts) == 0 {
		for _, t := range tariffs {
			m, ok := isoMarkets[t.ISORTO]
			if !ok {
				m = domain.MarketRegulated
			}
			counts[m]++
		}
	}
	best := domain.MarketRegulated
	bestCount := 0
	for _, m := range marketOrder {
		if counts[m] > bestCount {
			best = m
			bestCount = counts[m]
		}
	}
	return best
}

// firmIncreasePct projects the profile's largest modeled data center under
// the unoptimized scenario and returns the percent change of the final
// monthly bill against the no-build baseline.
func firmIncreasePct(ctx context.Context, p domain.UtilityProfile, horizon int) (decimal.Decimal, error) {
	utility := reference.UtilityFromProfile(&p)
	dc := reference.DataCenterForProfile(&p, domain.ForecastModerate)
	assumptions := reference.DefaultAssumptions()
	if horizon > 0 {
		assumptions.ProjectionYears = horizon
	}

	engine := calculation.NewTrajectoryEngine()
	baseline := engine.ProjectBaseline(&utility, &assumptions)
	firm, err := engine.ProjectScenario(ctx, domain.ScenarioUnoptimized, &utility, &dc, nil, &assumptions)
	if err != nil {
		return decimal.Zero, err
	}

	base := baseline.FinalBill()
	if base.IsZero() {
		return decimal.Zero, nil
	}
	return firm.FinalBill().Sub(base).Div(base).Mul(decimal.NewFromInt(100)), nil
}
