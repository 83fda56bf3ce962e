package reference

import (
	"github.com/shopspring/decimal"
)

// WorkloadClass describes one slice of a data-center fleet's compute mix
// and how much of it can shift or shed during grid stress.
type WorkloadClass struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Share       decimal.Decimal `json:"share"`       // fraction of fleet load
	Flexibility decimal.Decimal `json:"flexibility"` // curtailable fraction of the slice
	Description string          `json:"description"`
}

// WorkloadClasses returns the standard fleet mix. Shares sum to 1; the
// share-weighted flexibility works out to 48%.
func WorkloadClasses() []WorkloadClass {
	return []WorkloadClass{
		{
			ID:          "ai_training",
			Name:        "AI Training",
			Share:       decimal.NewFromFloat(0.35),
			Flexibility: decimal.NewFromFloat(0.70),
			Description: "Checkpointable batch jobs; can pause for hours with modest completion delay.",
		},
		{
			ID:          "batch_processing",
			Name:        "Batch Processing",
			Share:       decimal.NewFromFloat(0.25),
			Flexibility: decimal.NewFromFloat(0.60),
			Description: "Deferrable analytics and rendering; reschedules to off-peak windows.",
		},
		{
			ID:          "ai_inference",
			Name:        "AI Inference",
			Share:       decimal.NewFromFloat(0.20),
			Flexibility: decimal.NewFromFloat(0.15),
			Description: "Latency-sensitive serving; limited headroom from quality degradation.",
		},
		{
			ID:          "storage_backup",
			Name:        "Storage & Backup",
			Share:       decimal.NewFromFloat(0.10),
			Flexibility: decimal.NewFromFloat(0.50),
			Description: "Replication and backup windows; shifts freely within a day.",
		},
		{
			ID:          "realtime",
			Name:        "Real-time Services",
			Share:       decimal.NewFromFloat(0.10),
			Flexibility: decimal.NewFromFloat(0.05),
			Description: "Interactive and transactional load; effectively firm.",
		},
	}
}

// AggregateFlexibility is the share-weighted curtailable fraction of the
// standard fleet mix.
func AggregateFlexibility() decimal.Decimal {
	total := decimal.Zero
	for _, w := range WorkloadClasses() {
		total = total.Add(w.Share.Mul(w.Flexibility))
	}
	return total
}

// WorkloadByID looks up a workload class.
func WorkloadByID(id string) (WorkloadClass, bool) {
	for _, w := range WorkloadClasses() {
		if w.ID == id {
			return w, true
		}
	}
	return WorkloadClass{}, false
}
