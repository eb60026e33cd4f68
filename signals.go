package reactor

import "github.com/zoobzio/capitan"

// Controller lifecycle signals.
var (
	// ControllerStarted is emitted when a Controller begins watching.
	ControllerStarted = capitan.NewSignal(
		"reactor.controller.started",
		"Controller watching started",
	)

	// ControllerStopped is emitted when a Controller stops watching.
	ControllerStopped = capitan.NewSignal(
		"reactor.controller.stopped",
		"Controller watching stopped",
	)

	// ControllerStateChanged is emitted when a Controller transitions between states.
	ControllerStateChanged = capitan.NewSignal(
		"reactor.controller.state.changed",
		"Controller state transition",
	)
)

// Spec processing signals.
var (
	// SpecReceived is emitted when raw data is received from the watcher.
	SpecReceived = capitan.NewSignal(
		"reactor.spec.received",
		"Raw spec received from watcher",
	)

	// SpecParseFailed is emitted when a spec document fails to unmarshal.
	SpecParseFailed = capitan.NewSignal(
		"reactor.spec.parse.failed",
		"Spec document failed to unmarshal",
	)

	// SpecValidationFailed is emitted when a spec fails range validation.
	SpecValidationFailed = capitan.NewSignal(
		"reactor.spec.validation.failed",
		"Spec validation failed",
	)

	// SpecApplyFailed is emitted when applying a spec to the reactor fails.
	SpecApplyFailed = capitan.NewSignal(
		"reactor.spec.apply.failed",
		"Spec application failed",
	)

	// SpecApplied is emitted when a spec is successfully applied.
	SpecApplied = capitan.NewSignal(
		"reactor.spec.applied",
		"Spec applied successfully",
	)
)
