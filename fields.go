package reactor

import "github.com/zoobzio/capitan"

// Field keys for Controller events.
var (
	// KeyState is the current state of the Controller.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyStage names the processing stage that failed: "unmarshal",
	// "validate", or "apply".
	KeyStage = capitan.NewStringKey("stage")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")

	// KeyOutputs is the number of products the applied spec configures
	// (1 in single-output mode, 2 in two-output mode).
	KeyOutputs = capitan.NewIntKey("outputs")
)
