package curtail

// NewStrategy resolves a strategy from its configured name. Unknown or
// empty names fall back to flexibility_first; order is only consulted for
// the custom strategy.
func NewStrategy(name string, order []string) Strategy {
	switch name {
	case "proportional":
		return NewProportionalStrategy()
	case "custom":
		return NewCustomStrategy(order)
	default:
		return NewFlexibilityFirstStrategy()
	}
}
