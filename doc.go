/*
Package reactor models a minimal stoichiometric reactor: two reagent inputs,
a conversion fraction, and one or two product outputs under a 1:1
stoichiometry assumption (1 A + 1 B -> products).

The core type is Reactor, a plain mutable value with validated parameters.
The limiting reagent is min(A, B); the reacted amount is limiting*conversion.
In single-output mode the whole reacted amount becomes product R. In
two-output mode it is split between R and S by the split ratio.

# Basic Usage

Construct a reactor with options and run a reaction:

	r, err := reactor.New(
	    reactor.WithConversion(1.0),
	    reactor.WithTwoOutputs(),
	    reactor.WithSplitRatio(0.7),
	)
	if err != nil {
	    log.Fatal(err)
	}

	if err := r.SetInputs(1.0, 1.0); err != nil {
	    log.Fatal(err)
	}

	out := r.Run() // [0.7, 0.3]

Parameters are validated at assignment time, never at Run time: conversion
and split ratio must be in [0,1], inputs must be non-negative. A failed
setter leaves the reactor unchanged. Validation failures satisfy
errors.Is(err, reactor.ErrInvalidParameter).

Run never mutates the inputs, so it can be called repeatedly against the
same charge. Reset zeroes the inputs and clears stored outputs; Output(i)
returns a stored product and fails with ErrIndexOutOfRange when no reaction
has been run or the index exceeds the output count.

# Concurrency

A Reactor is a single-owner value with no internal locking. Callers sharing
one across goroutines must supply their own mutual exclusion.

# Spec Files

Reactor parameters can be described declaratively in a Spec document (YAML
or JSON) and validated with go-playground/validator tags:

	conversion: 0.8
	two_outputs: true
	split_ratio: 0.6
	input_a: 2.0
	input_b: 3.5

# Controller

A Controller watches a spec source for changes, unmarshals and validates
each document, and applies it to a live Reactor with rollback on failure:

	ctrl := reactor.NewController(
	    reactor.NewFileWatcher("reactor.yaml"),
	    r,
	)

	if err := ctrl.Start(ctx); err != nil {
	    log.Printf("initial spec failed: %v", err)
	}

If an update fails to parse, validate, or apply, the previous valid spec
remains active and the Controller reports a degraded state while it keeps
watching for valid updates. Lifecycle and processing events are emitted as
capitan signals for observability.
*/
package reactor
