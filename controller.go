package reactor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// DefaultDebounce is the default debounce duration for spec change processing.
const DefaultDebounce = 100 * time.Millisecond

// Processing stage names reported to metrics, signals, and failure history.
const (
	stageUnmarshal = "unmarshal"
	stageValidate  = "validate"
	stageApply     = "apply"
)

// Controller watches a spec source for changes, unmarshals and validates
// each document, and applies it to a live Reactor with rollback on failure.
//
// The reactor passed to NewController is mutated only from the controller's
// processing goroutine; once a controller is started, other goroutines must
// not mutate the reactor directly.
type Controller struct {
	watcher  Watcher
	reactor  *Reactor
	onApply  func(prev, curr Spec) error
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	format   Format
	metrics  MetricsProvider
	history  *failureRing

	state     atomic.Int32
	current   atomic.Pointer[Spec]
	lastError atomic.Pointer[error]

	mu      sync.Mutex
	started bool

	// For sync mode: channel to receive changes
	changes <-chan []byte
}

// controllerConfig holds configuration options for a Controller.
type controllerConfig struct {
	debounce time.Duration
	syncMode bool
	clock    clockz.Clock
	format   Format
	metrics  MetricsProvider
	onApply  func(prev, curr Spec) error
	history  int
}

// ControllerOption configures a Controller.
type ControllerOption func(*controllerConfig)

// WithDebounce sets the debounce duration for spec change processing.
// Changes arriving within this duration are coalesced into a single update.
func WithDebounce(d time.Duration) ControllerOption {
	return func(c *controllerConfig) {
		c.debounce = d
	}
}

// WithSyncMode enables synchronous processing for testing.
// In sync mode, changes are processed immediately without debouncing
// or async goroutines, making tests deterministic.
func WithSyncMode() ControllerOption {
	return func(c *controllerConfig) {
		c.syncMode = true
	}
}

// WithClock sets a custom clock for time operations.
// Use this with clockz.FakeClock for deterministic debounce testing.
func WithClock(clock clockz.Clock) ControllerOption {
	return func(c *controllerConfig) {
		c.clock = clock
	}
}

// WithJSON enforces JSON format for incoming spec documents.
// If set, data that is not valid JSON will fail with an error.
// Without this option, format is auto-detected.
func WithJSON() ControllerOption {
	return func(c *controllerConfig) {
		c.format = FormatJSON
	}
}

// WithYAML enforces YAML format for incoming spec documents.
// If set, data is always parsed as YAML (which also accepts JSON).
// Without this option, format is auto-detected.
func WithYAML() ControllerOption {
	return func(c *controllerConfig) {
		c.format = FormatYAML
	}
}

// WithMetrics registers a MetricsProvider to receive controller events.
func WithMetrics(m MetricsProvider) ControllerOption {
	return func(c *controllerConfig) {
		c.metrics = m
	}
}

// WithOnApply registers a callback invoked after each spec is applied to
// the reactor, with the previous and current specs. Returning an error
// marks the update failed and degrades the controller, but does not unwind
// the reactor mutation.
func WithOnApply(fn func(prev, curr Spec) error) ControllerOption {
	return func(c *controllerConfig) {
		c.onApply = fn
	}
}

// WithFailureHistory retains the last n spec failures for inspection via
// Failures(). Without this option no history is kept.
func WithFailureHistory(n int) ControllerOption {
	return func(c *controllerConfig) {
		c.history = n
	}
}

// NewController creates a Controller that applies watched spec documents
// to r.
//
// The watcher emits raw bytes when the source changes. Bytes are unmarshaled
// into a Spec (via yaml/json struct tags), validated against its range
// constraints, and pushed into the reactor through its setters.
//
// Example:
//
//	r, _ := reactor.New()
//	ctrl := reactor.NewController(
//	    reactor.NewFileWatcher("reactor.yaml"),
//	    r,
//	    reactor.WithDebounce(200*time.Millisecond),
//	)
func NewController(watcher Watcher, r *Reactor, opts ...ControllerOption) *Controller {
	cfg := &controllerConfig{
		debounce: DefaultDebounce,
		clock:    clockz.RealClock,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Controller{
		watcher:  watcher,
		reactor:  r,
		onApply:  cfg.onApply,
		debounce: cfg.debounce,
		syncMode: cfg.syncMode,
		clock:    cfg.clock,
		format:   cfg.format,
		metrics:  cfg.metrics,
		history:  newFailureRing(cfg.history),
	}
	c.state.Store(int32(StateLoading))

	return c
}

// State returns the current state of the Controller.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Current returns the current valid spec and true, or the zero value and
// false if no valid spec has been applied.
func (c *Controller) Current() (Spec, bool) {
	ptr := c.current.Load()
	if ptr == nil {
		return Spec{}, false
	}
	return *ptr, true
}

// LastError returns the last error encountered, or nil if no error occurred.
func (c *Controller) LastError() error {
	ptr := c.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// Failures returns the retained spec failures, oldest first.
// Returns nil unless WithFailureHistory was set.
func (c *Controller) Failures() []ApplyFailure {
	return c.history.all()
}

// Reactor returns the reactor this controller drives.
func (c *Controller) Reactor() *Reactor {
	return c.reactor
}

// Start begins watching for changes. It blocks until the first spec is
// processed (success or failure), then continues watching asynchronously.
//
// If the initial spec fails, Start returns the error but continues watching
// in the background for valid updates.
//
// In sync mode, Start only processes the initial value. Use Process() to
// manually trigger processing of subsequent values.
//
// Start can only be called once. Subsequent calls return an error.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return fmt.Errorf("controller already started")
	}
	c.started = true
	c.mu.Unlock()

	capitan.Emit(ctx, ControllerStarted,
		KeyDebounce.Field(c.debounce),
	)

	changes, err := c.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	// Wait for first value and process synchronously
	var initialErr error
	select {
	case <-ctx.Done():
		return ctx.Err()
	case raw, ok := <-changes:
		if !ok {
			return fmt.Errorf("watcher closed before emitting initial value")
		}
		c.changeReceived(ctx)
		initialErr = c.process(ctx, raw)
	}

	if c.syncMode {
		// In sync mode, store channel for manual processing
		c.changes = changes
		return initialErr
	}

	// Continue watching asynchronously
	go c.watch(ctx, changes)

	return initialErr
}

// Process reads and processes the next value from the watcher.
// This is only available in sync mode and is used for deterministic testing.
// Returns false if no value is available or the channel is closed.
func (c *Controller) Process(ctx context.Context) bool {
	if !c.syncMode {
		return false
	}

	select {
	case raw, ok := <-c.changes:
		if !ok {
			return false
		}
		c.changeReceived(ctx)
		_ = c.process(ctx, raw) //nolint:errcheck // Errors stored via setError
		return true
	default:
		return false
	}
}

// changeReceived emits the received signal and metric for a raw change.
func (c *Controller) changeReceived(ctx context.Context) {
	capitan.Emit(ctx, SpecReceived)
	if c.metrics != nil {
		c.metrics.OnChangeReceived()
	}
}

// process unmarshals, validates, and applies a single spec update.
func (c *Controller) process(ctx context.Context, raw []byte) error {
	oldState := c.State()
	start := c.clock.Now()

	var spec Spec
	if err := unmarshalSpec(raw, &spec, c.format); err != nil {
		c.fail(ctx, oldState, stageUnmarshal, err, start)
		capitan.Emit(ctx, SpecParseFailed,
			KeyStage.Field(stageUnmarshal),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("unmarshal failed: %w", err)
	}

	if err := spec.Validate(); err != nil {
		c.fail(ctx, oldState, stageValidate, err, start)
		capitan.Emit(ctx, SpecValidationFailed,
			KeyStage.Field(stageValidate),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("validation failed: %w", err)
	}

	var prev Spec
	if p := c.current.Load(); p != nil {
		prev = *p
	}

	// Validation covers the reactor's own range checks, so Apply cannot
	// reject a validated spec and the reactor is never left half-updated.
	if err := spec.Apply(c.reactor); err != nil {
		c.fail(ctx, oldState, stageApply, err, start)
		capitan.Emit(ctx, SpecApplyFailed,
			KeyStage.Field(stageApply),
			KeyError.Field(err.Error()),
		)
		return fmt.Errorf("apply failed: %w", err)
	}

	if c.onApply != nil {
		if err := c.onApply(prev, spec); err != nil {
			c.fail(ctx, oldState, stageApply, err, start)
			capitan.Emit(ctx, SpecApplyFailed,
				KeyStage.Field(stageApply),
				KeyError.Field(err.Error()),
			)
			return fmt.Errorf("apply callback failed: %w", err)
		}
	}

	// Success
	c.current.Store(&spec)
	c.lastError.Store(nil)
	c.transitionState(ctx, oldState, StateHealthy)
	if c.metrics != nil {
		c.metrics.OnProcessSuccess(c.clock.Since(start))
	}

	outputs := 1
	if spec.TwoOutputs {
		outputs = 2
	}
	capitan.Emit(ctx, SpecApplied,
		KeyOutputs.Field(outputs),
	)

	return nil
}

// fail records a stage failure: error, history, state transition, metrics.
func (c *Controller) fail(ctx context.Context, oldState State, stage string, err error, start time.Time) {
	c.setError(err)
	c.history.push(ApplyFailure{
		Stage: stage,
		Err:   err,
		At:    c.clock.Now(),
	})
	c.transitionState(ctx, oldState, c.failureState())
	if c.metrics != nil {
		c.metrics.OnProcessFailure(stage, c.clock.Since(start))
	}
}

// failureState returns the appropriate failure state based on whether
// a valid spec has ever been applied.
func (c *Controller) failureState() State {
	if c.current.Load() == nil {
		return StateEmpty
	}
	return StateDegraded
}

// transitionState updates the state and emits a state change event if changed.
func (c *Controller) transitionState(ctx context.Context, oldState, newState State) {
	if oldState == newState {
		return
	}
	c.state.Store(int32(newState))
	if c.metrics != nil {
		c.metrics.OnStateChange(oldState, newState)
	}
	capitan.Emit(ctx, ControllerStateChanged,
		KeyOldState.Field(oldState.String()),
		KeyNewState.Field(newState.String()),
	)
}

// setError stores an error atomically.
func (c *Controller) setError(err error) {
	e := err
	c.lastError.Store(&e)
}

// watch processes changes from the watcher channel with debouncing.
func (c *Controller) watch(ctx context.Context, changes <-chan []byte) {
	defer func() {
		capitan.Emit(ctx, ControllerStopped,
			KeyState.Field(c.State().String()),
		)
	}()

	var (
		timer      clockz.Timer
		pending    []byte
		hasPending bool
	)

	for {
		// Get timer channel or nil if no timer
		var timerC <-chan time.Time
		if timer != nil {
			timerC = timer.C()
		}

		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return

		case raw, ok := <-changes:
			if !ok {
				// Channel closed, process any pending change
				if hasPending {
					_ = c.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				}
				return
			}

			c.changeReceived(ctx)
			pending = raw
			hasPending = true

			// Reset or start debounce timer
			if timer == nil {
				timer = c.clock.NewTimer(c.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
				timer.Reset(c.debounce)
			}

		case <-timerC:
			if hasPending {
				_ = c.process(ctx, pending) //nolint:errcheck // Errors stored via setError
				hasPending = false
			}
		}
	}
}
