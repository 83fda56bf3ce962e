package domain

// ProjectionInput bundles everything a single projection run needs:
// the utility under study, the proposed data center, the run assumptions,
// and an optional tariff selection. Transforms and comparison runs copy
// and edit these bundles rather than mutating shared state.
type ProjectionInput struct {
	Name        string            `yaml:"name,omitempty" json:"name,omitempty"`
	ProfileID   string            `yaml:"profile_id,omitempty" json:"profileId,omitempty"`
	Utility     Utility           `yaml:"utility" json:"utility"`
	DataCenter  DataCenter        `yaml:"data_center" json:"dataCenter"`
	Assumptions GlobalAssumptions `yaml:"assumptions" json:"assumptions"`
	TariffID    string            `yaml:"tariff_id,omitempty" json:"tariffId,omitempty"`
}

// DeepCopy returns an independent copy of the input. The only pointer in
// the graph is the market capacity price, which is cloned so edits to the
// copy never reach the original.
func (pi *ProjectionInput) DeepCopy() *ProjectionInput {
	out := *pi
	if pi.Utility.Market.CapacityPrice != nil {
		price := *pi.Utility.Market.CapacityPrice
		out.Utility.Market.CapacityPrice = &price
	}
	return &out
}
