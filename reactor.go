package reactor

import "math"

// Default parameter values for a Reactor.
const (
	// DefaultConversion is the fraction of the limiting reagent that reacts
	// when no conversion is configured.
	DefaultConversion = 0.5

	// DefaultSplitRatio is the fraction of reacted mass routed to product R
	// in two-output mode when no split ratio is configured.
	DefaultSplitRatio = 0.5
)

// Reactor holds two reagent quantities and the parameters of a 1:1
// stoichiometric reaction. The zero inputs and stored outputs evolve through
// SetInputs, Run, and Reset; the parameters through their setters. Every
// mutation is validated before it is applied, so a Reactor never holds an
// out-of-range parameter.
type Reactor struct {
	inputA      float64
	inputB      float64
	conversion  float64
	twoOutputs  bool
	splitRatio  float64
	lastOutputs []float64
}

// config holds construction options for a Reactor.
type config struct {
	conversion float64
	twoOutputs bool
	splitRatio float64
}

// Option configures a Reactor at construction.
type Option func(*config)

// WithConversion sets the fraction of the limiting reagent that reacts.
// Must be in [0,1]; validated by New.
func WithConversion(v float64) Option {
	return func(c *config) {
		c.conversion = v
	}
}

// WithTwoOutputs selects two-output mode: the reacted amount is split
// between products R and S by the split ratio.
func WithTwoOutputs() Option {
	return func(c *config) {
		c.twoOutputs = true
	}
}

// WithSplitRatio sets the fraction of reacted mass routed to product R in
// two-output mode. Must be in [0,1]; validated by New. Ignored by Run in
// single-output mode but validated regardless.
func WithSplitRatio(v float64) Option {
	return func(c *config) {
		c.splitRatio = v
	}
}

// New creates a Reactor with zero inputs, no stored outputs, and the given
// parameter options. Defaults: conversion 0.5, single output, split ratio
// 0.5. Returns an error satisfying errors.Is(err, ErrInvalidParameter) if
// conversion or split ratio is outside [0,1].
func New(opts ...Option) (*Reactor, error) {
	cfg := &config{
		conversion: DefaultConversion,
		splitRatio: DefaultSplitRatio,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := checkRatio("conversion", cfg.conversion); err != nil {
		return nil, err
	}
	if err := checkRatio("split ratio", cfg.splitRatio); err != nil {
		return nil, err
	}

	return &Reactor{
		conversion: cfg.conversion,
		twoOutputs: cfg.twoOutputs,
		splitRatio: cfg.splitRatio,
	}, nil
}

// checkRatio validates a [0,1] fraction parameter.
func checkRatio(name string, v float64) error {
	if v < 0 || v > 1 {
		return &ParameterError{Name: name, Value: v, Min: 0, Max: 1}
	}
	return nil
}

// checkQuantity validates a non-negative reagent quantity.
// Quantities are unbounded above.
func checkQuantity(name string, v float64) error {
	if v < 0 {
		return &ParameterError{Name: name, Value: v, Min: 0, Max: math.Inf(1)}
	}
	return nil
}

// SetInputs sets the quantities of reagents A and B. Both must be
// non-negative. On failure neither input is modified.
func (r *Reactor) SetInputs(a, b float64) error {
	if err := checkQuantity("input A", a); err != nil {
		return err
	}
	if err := checkQuantity("input B", b); err != nil {
		return err
	}
	r.inputA = a
	r.inputB = b
	return nil
}

// SetConversion sets the conversion fraction. Must be in [0,1]. On failure
// the previous conversion is retained.
func (r *Reactor) SetConversion(v float64) error {
	if err := checkRatio("conversion", v); err != nil {
		return err
	}
	r.conversion = v
	return nil
}

// SetTwoOutputs selects single-output (false) or two-output (true) mode.
func (r *Reactor) SetTwoOutputs(two bool) {
	r.twoOutputs = two
}

// SetSplitRatio sets the fraction of reacted mass routed to product R.
// Must be in [0,1]. On failure the previous ratio is retained.
func (r *Reactor) SetSplitRatio(v float64) error {
	if err := checkRatio("split ratio", v); err != nil {
		return err
	}
	r.splitRatio = v
	return nil
}

// Run computes the reaction from the current state and returns the product
// quantities:
//
//	limiting = min(inputA, inputB)
//	reacted  = limiting * conversion
//
// Single-output mode yields [reacted]; two-output mode yields
// [reacted*splitRatio, reacted*(1-splitRatio)]. The result is stored for
// Output lookups and returned as a copy. Inputs are not consumed, so Run is
// idempotent for unchanged state. Parameters were validated at assignment,
// so Run has no error path.
func (r *Reactor) Run() []float64 {
	limiting := min(r.inputA, r.inputB)
	reacted := limiting * r.conversion

	if !r.twoOutputs {
		r.lastOutputs = []float64{reacted}
	} else {
		r.lastOutputs = []float64{
			reacted * r.splitRatio,
			reacted * (1 - r.splitRatio),
		}
	}

	return r.Outputs()
}

// Reset zeroes both inputs and clears stored outputs. Parameters
// (conversion, output mode, split ratio) are retained.
func (r *Reactor) Reset() {
	r.inputA = 0
	r.inputB = 0
	r.lastOutputs = nil
}

// Output returns the stored product at index i (0 is R, 1 is S in
// two-output mode). Returns an error satisfying
// errors.Is(err, ErrIndexOutOfRange) if i has no stored product, including
// when no reaction has been run or the reactor was reset.
func (r *Reactor) Output(i int) (float64, error) {
	if i < 0 || i >= len(r.lastOutputs) {
		return 0, &OutputIndexError{Index: i, Len: len(r.lastOutputs)}
	}
	return r.lastOutputs[i], nil
}

// Outputs returns a copy of the stored products from the most recent Run,
// or nil if none exist.
func (r *Reactor) Outputs() []float64 {
	if r.lastOutputs == nil {
		return nil
	}
	out := make([]float64, len(r.lastOutputs))
	copy(out, r.lastOutputs)
	return out
}

// Inputs returns the current quantities of reagents A and B.
func (r *Reactor) Inputs() (a, b float64) {
	return r.inputA, r.inputB
}

// Conversion returns the current conversion fraction.
func (r *Reactor) Conversion() float64 {
	return r.conversion
}

// TwoOutputs reports whether the reactor is in two-output mode.
func (r *Reactor) TwoOutputs() bool {
	return r.twoOutputs
}

// SplitRatio returns the current split ratio.
func (r *Reactor) SplitRatio() float64 {
	return r.splitRatio
}
