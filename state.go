package reactor

// State represents the current state of a Controller.
type State int32

const (
	// StateLoading indicates the Controller is initializing and has not yet
	// processed any spec.
	StateLoading State = iota

	// StateHealthy indicates the Controller has a valid spec applied.
	StateHealthy

	// StateDegraded indicates the last spec change failed to parse, validate,
	// or apply. The previous valid spec remains active.
	StateDegraded

	// StateEmpty indicates the initial spec load failed and no valid spec
	// has ever been applied. The Controller continues watching for valid
	// updates.
	StateEmpty
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateHealthy:
		return "healthy"
	case StateDegraded:
		return "degraded"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}
