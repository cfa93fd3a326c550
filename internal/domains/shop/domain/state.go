package domain

// State is what the manager dashboard shows about the shop.
type State struct {
	IsOpen    bool
	IsOvenHot bool
}

// DefaultState is what a freshly created shop reports.
func DefaultState() State {
	return State{IsOpen: true, IsOvenHot: false}
}
