// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package property implements the reactive property graph underpinning
// the scene: typed values connected by expressions into a directed
// acyclic graph, with transactional, batched updates.
//
// Every [Property] holds either a plain value or an expression over
// other properties, named through [Reader] handles. Changing a value
// re-evaluates everything downstream in a deterministic topological
// order and emits the changed set as one ordered event. Mutations are
// all-or-nothing: a rejected change (cycle, validator) leaves the
// graph exactly as it was.
package property

import (
	"fmt"
	"slices"
)

// AnyProperty is the type-erased interface common to all [Property]
// instantiations, used by effect hooks and diagnostics.
type AnyProperty interface {
	// ID returns the process-unique identifier of the property,
	// which is stable for its lifetime and never reused.
	ID() uint64

	// Current returns the current value without synchronization.
	// It is safe in effect hooks and anywhere the caller does not
	// need to observe a propagation in progress; use the typed
	// [Property.Value] for a synchronized read.
	Current() any
}

// AnyReader is the type-erased interface common to all [Reader]
// instantiations, used to pass dependency lists.
type AnyReader interface {
	prop() body
}

// body is the internal type-erased interface to a property body.
type body interface {
	AnyProperty

	base() *bodyBase

	// hasExpression returns whether the body currently has an expression.
	hasExpression() bool

	// dropExpression removes the expression without touching edges,
	// recording an undo in j if non-nil.
	dropExpression(j *journal)

	// reevaluate runs the expression through the validator and stores
	// the result, recording an undo in j. It reports whether the
	// stored value changed. It is a no-op without an expression.
	reevaluate(j *journal) (bool, error)

	// notifier returns a closure that calls the body's change
	// listeners with a snapshot of the current value.
	notifier() func()
}

// bodyBase is the untyped part of a property body: its identity and
// its edges in the dependency graph. All fields are guarded by the
// graph mutex.
type bodyBase struct {
	id uint64

	// upstream is the ordered, duplicate-free list of bodies this
	// body's expression depends on. It is empty iff there is no
	// expression.
	upstream []body

	// downstream is the set of bodies whose expressions depend on
	// this body.
	downstream []body
}

func (bb *bodyBase) base() *bodyBase { return bb }

// ID returns the process-unique identifier of the property.
func (bb *bodyBase) ID() uint64 { return bb.id }

// Property is one node of the reactive graph, holding a typed value
// and, optionally, an expression that computes it from other
// properties. The zero value is not usable; use [New].
type Property[T comparable] struct {
	bodyBase

	value      T
	expression func() T
	validator  func(T) (T, error)
	listeners  []func(T)
}

// New returns a new [Property] with the given initial value,
// registered with the process-wide graph.
func New[T comparable](value T) *Property[T] {
	p := &Property[T]{value: value}
	p.id = graph.nextID.Add(1)
	return p
}

// Value returns the current value, synchronized with any propagation
// in progress.
func (p *Property[T]) Value() T {
	graph.mu.Lock()
	defer graph.mu.Unlock()
	return p.value
}

// Current implements [AnyProperty].
func (p *Property[T]) Current() any {
	return p.value
}

// Reader returns a read-only handle to this property. A Reader is the
// only legal way for an expression to name a dependency.
func (p *Property[T]) Reader() Reader[T] {
	return Reader[T]{p: p}
}

// SetValidator sets the validator hook, which may clamp or transform
// any incoming value before it is stored, or reject it by returning an
// error. The validator applies both to directly set values and to
// expression results. It runs with the graph lock held and must be
// pure. The current value is not re-validated.
func (p *Property[T]) SetValidator(fn func(value T) (T, error)) {
	graph.mu.Lock()
	defer graph.mu.Unlock()
	p.validator = fn
}

// OnChange adds a listener called with the new value whenever the
// property's value changes, after the change has committed and the
// graph lock has been released. Listeners may mutate the graph.
func (p *Property[T]) OnChange(fn func(value T)) {
	graph.mu.Lock()
	defer graph.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

// Set replaces the current value with the given one, after running it
// through the validator. Any expression is removed and the property's
// upstream edges are grounded. Downstream expressions are re-evaluated
// and the changed set is emitted as one ordered event. It returns a
// [*ValidationError] and leaves the graph unchanged if a validator
// (this property's or a downstream one's) rejects a value.
func (p *Property[T]) Set(value T) error {
	queued, err := p.set(value)
	if err != nil {
		return err
	}
	if queued {
		graph.flushNotifies()
	}
	return nil
}

func (p *Property[T]) set(value T) (bool, error) {
	graph.mu.Lock()
	defer graph.mu.Unlock()

	v := value
	if p.validator != nil {
		var err error
		v, err = p.validator(value)
		if err != nil {
			return false, &ValidationError{Property: p, Err: err}
		}
	}

	var j journal
	p.ground(&j)
	p.dropExpression(&j)
	if p.value == v {
		return false, nil
	}
	old := p.value
	p.value = v
	j.record(func() { p.value = old })

	notify, err := propagate([]body{p}, &j)
	if err != nil {
		j.revert()
		return false, err
	}
	graph.enqueueNotify(notify)
	return notify != nil, nil
}

// Bind installs an expression on the property. The expression must be
// a pure function whose only access to other properties goes through
// the given readers; it is evaluated immediately and re-evaluated
// whenever any dependency changes. It returns a [*CycleError] and
// leaves the graph unchanged if the expression would create a
// dependency cycle. An expression with no dependencies is permitted
// and evaluates exactly once.
func (p *Property[T]) Bind(expression func() T, deps ...AnyReader) error {
	if expression == nil {
		panic("property: Bind called with nil expression")
	}
	queued, err := p.bind(expression, deps)
	if err != nil {
		return err
	}
	if queued {
		graph.flushNotifies()
	}
	return nil
}

func (p *Property[T]) bind(expression func() T, deps []AnyReader) (bool, error) {
	ds := dedupeReaders(deps)

	graph.mu.Lock()
	defer graph.mu.Unlock()

	if dependsOn(p, ds, nil) {
		return false, &CycleError{Property: p}
	}

	var j journal
	p.ground(&j)
	p.install(expression, ds, &j)

	notify, err := propagate([]body{p}, &j)
	if err != nil {
		j.revert()
		return false, err
	}
	graph.enqueueNotify(notify)
	return notify != nil, nil
}

// install sets the expression and attaches the upstream edges,
// recording undos in j. Must be called grounded, with the graph
// mutex held.
func (p *Property[T]) install(expression func() T, deps []body, j *journal) {
	oldExpr := p.expression
	p.expression = expression
	p.upstream = deps
	for _, d := range deps {
		db := d.base()
		db.downstream = append(db.downstream, p)
	}
	if j != nil {
		j.record(func() {
			for _, d := range p.upstream {
				db := d.base()
				if i := slices.Index(db.downstream, body(p)); i >= 0 {
					db.downstream = slices.Delete(db.downstream, i, i+1)
				}
			}
			p.upstream = nil
			p.expression = oldExpr
		})
	}
}

// ground removes all upstream edges, and this body from each
// ex-upstream's downstream list, recording undos in j if non-nil.
// Must be called with the graph mutex held.
func (p *Property[T]) ground(j *journal) {
	groundBody(p, j)
}

func groundBody(b body, j *journal) {
	bb := b.base()
	if len(bb.upstream) == 0 {
		return
	}
	old := bb.upstream
	for _, u := range old {
		ub := u.base()
		if i := slices.Index(ub.downstream, b); i >= 0 {
			ub.downstream = slices.Delete(ub.downstream, i, i+1)
		}
	}
	bb.upstream = nil
	if j != nil {
		j.record(func() {
			bb.upstream = old
			for _, u := range old {
				u.base().downstream = append(u.base().downstream, b)
			}
		})
	}
}

// hasExpression implements [body].
func (p *Property[T]) hasExpression() bool {
	return p.expression != nil
}

// dropExpression implements [body].
func (p *Property[T]) dropExpression(j *journal) {
	if p.expression == nil {
		return
	}
	old := p.expression
	p.expression = nil
	if j != nil {
		j.record(func() { p.expression = old })
	}
}

// reevaluate implements [body].
func (p *Property[T]) reevaluate(j *journal) (bool, error) {
	if p.expression == nil {
		return false, nil
	}
	v := p.expression()
	if p.validator != nil {
		var err error
		v, err = p.validator(v)
		if err != nil {
			return false, &ValidationError{Property: p, Err: err}
		}
	}
	if p.value == v {
		return false, nil
	}
	old := p.value
	p.value = v
	if j != nil {
		j.record(func() { p.value = old })
	}
	return true, nil
}

// notifier implements [body].
func (p *Property[T]) notifier() func() {
	ls := slices.Clone(p.listeners)
	v := p.value
	return func() {
		for _, fn := range ls {
			fn(v)
		}
	}
}

// Destroy removes the property from the graph: it is grounded, and any
// dependent expressions are also grounded and keep their last value,
// since an expression cannot run with a missing dependency. Using the
// property after Destroy is a programming error. Destroy is
// serialized with propagation by the graph lock.
func (p *Property[T]) Destroy() {
	graph.mu.Lock()
	defer graph.mu.Unlock()
	p.ground(nil)
	p.dropExpression(nil)
	for _, d := range slices.Clone(p.downstream) {
		groundBody(d, nil)
		d.dropExpression(nil)
	}
	p.downstream = nil
	p.listeners = nil
	p.validator = nil
}

// String implements the [fmt.Stringer] interface.
func (p *Property[T]) String() string {
	return fmt.Sprintf("property%d(%v)", p.id, p.value)
}

// upstreamIDs returns the IDs of the upstream bodies; for tests.
func (p *Property[T]) upstreamIDs() []uint64 {
	graph.mu.Lock()
	defer graph.mu.Unlock()
	ids := make([]uint64, len(p.upstream))
	for i, u := range p.upstream {
		ids[i] = u.ID()
	}
	return ids
}

// downstreamIDs returns the IDs of the downstream bodies; for tests.
func (p *Property[T]) downstreamIDs() []uint64 {
	graph.mu.Lock()
	defer graph.mu.Unlock()
	ids := make([]uint64, len(p.downstream))
	for i, d := range p.downstream {
		ids[i] = d.ID()
	}
	return ids
}

// Reader is an immutable, typed, read-only handle to a [Property],
// used by expressions to read an upstream value without owning its
// lifetime. Readers are comparable by property identity.
type Reader[T comparable] struct {
	p *Property[T]
}

// Value returns the property's current value. Within an expression or
// validator this is the correct (and only legal) way to read a
// dependency: it sees the values committed earlier in the same
// propagation.
func (r Reader[T]) Value() T {
	return r.p.value
}

// Property returns the underlying property.
func (r Reader[T]) Property() *Property[T] {
	return r.p
}

func (r Reader[T]) prop() body {
	return r.p
}

// dedupeReaders converts the given readers into an ordered,
// duplicate-free body list. Nil readers are a programming error.
func dedupeReaders(deps []AnyReader) []body {
	ds := make([]body, 0, len(deps))
	for _, d := range deps {
		if d == nil {
			panic("property: nil reader in dependency list")
		}
		b := d.prop()
		if b == nil || b.base().id == 0 {
			panic("property: reader to uninitialized property in dependency list")
		}
		if slices.Contains(ds, b) {
			continue
		}
		ds = append(ds, b)
	}
	return ds
}
