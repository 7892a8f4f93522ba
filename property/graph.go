// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package property

import (
	"slices"
	"sort"
	"sync"
	"sync/atomic"
)

// graph is the process-wide coordinator for all properties.
// A single mutex serializes every structural or value mutation
// and every read that must be consistent with a pending propagation.
// Expressions and validators are always invoked with the mutex held
// and must therefore be pure: they may only read their dependencies
// through [Reader.Value] and must not mutate the graph.
var graph = &coordinator{}

type coordinator struct {
	mu sync.Mutex

	// nextID is the monotonic source of body identifiers.
	// Identifiers are never reused within a process.
	nextID atomic.Uint64

	// effectHooks are called with each committed effect list,
	// after the mutex is released.
	effectHooks []func([]Effect)

	// notifyQueue holds pending post-commit notifications in the
	// order their transactions acquired the mutex.
	notifyQueue []func()

	// delivering is whether some goroutine is currently draining
	// the notifyQueue. Guarded by mu.
	delivering bool
}

// Effect describes one property whose value changed as the result
// of a committed mutation.
type Effect struct {
	// Property is the changed property.
	Property AnyProperty

	// Value is the committed value.
	Value any
}

// OnEffects adds a hook that is called with the ordered effect list of
// every committed mutation, after the graph lock has been released.
// Hooks cannot be removed; they live for the rest of the process.
func OnEffects(fn func([]Effect)) {
	graph.mu.Lock()
	defer graph.mu.Unlock()
	graph.effectHooks = append(graph.effectHooks, fn)
}

// enqueueNotify schedules the given notification. Must be called with
// the graph mutex held; the notification runs without it.
func (g *coordinator) enqueueNotify(fn func()) {
	if fn == nil {
		return
	}
	g.notifyQueue = append(g.notifyQueue, fn)
}

// flushNotifies drains the notification queue in FIFO order. Only one
// goroutine drains at a time; transactions committed while a drain is
// in progress are delivered by the draining goroutine, which preserves
// the lock-acquisition order of effect emission. Listeners may freely
// mutate the graph: re-entrant notifications are appended to the queue
// and delivered after the current one.
func (g *coordinator) flushNotifies() {
	g.mu.Lock()
	if g.delivering {
		g.mu.Unlock()
		return
	}
	g.delivering = true
	for len(g.notifyQueue) > 0 {
		fn := g.notifyQueue[0]
		g.notifyQueue = g.notifyQueue[1:]
		g.mu.Unlock()
		fn()
		g.mu.Lock()
	}
	g.delivering = false
	g.mu.Unlock()
}

// dependsOn reports whether target is in the transitive upstream of
// any of the given bodies. pending optionally overrides the upstream
// lists of bodies that have earlier updates staged in the same batch.
// Must be called with the graph mutex held.
func dependsOn(target body, deps []body, pending map[body][]body) bool {
	stack := slices.Clone(deps)
	seen := map[body]bool{}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		up := n.base().upstream
		if pending != nil {
			if pu, ok := pending[n]; ok {
				up = pu
			}
		}
		stack = append(stack, up...)
	}
	return false
}

// propagate re-evaluates everything downstream of the given source
// bodies and commits the resulting values. It returns the notification
// closure that delivers the ordered effect list, or an error if a
// validator rejected an evaluated value, in which case the values
// changed so far are recorded in j for the caller to revert.
// Must be called with the graph mutex held.
func propagate(sources []body, j *journal) (func(), error) {
	if len(sources) == 0 {
		return nil, nil
	}

	// reachable set over downstream edges, sources included
	reach := map[body]bool{}
	stack := slices.Clone(sources)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reach[n] {
			continue
		}
		reach[n] = true
		stack = append(stack, n.base().downstream...)
	}

	// linear order consistent with the upstream partial order,
	// ties broken by body identity for determinism
	indeg := map[body]int{}
	for n := range reach {
		for _, u := range n.base().upstream {
			if reach[u] {
				indeg[n]++
			}
		}
	}
	ready := make([]body, 0, len(reach))
	for n := range reach {
		if indeg[n] == 0 {
			ready = append(ready, n)
		}
	}
	order := make([]body, 0, len(reach))
	for len(ready) > 0 {
		sort.Slice(ready, func(i, k int) bool { return ready[i].ID() < ready[k].ID() })
		n := ready[0]
		ready = ready[1:]
		order = append(order, n)
		for _, d := range n.base().downstream {
			if !reach[d] {
				continue
			}
			indeg[d]--
			if indeg[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	isSource := map[body]bool{}
	for _, s := range sources {
		isSource[s] = true
	}

	var effects []body
	for _, n := range order {
		if !n.hasExpression() {
			// a directly set source; the value is already committed
			if isSource[n] {
				effects = append(effects, n)
			}
			continue
		}
		changed, err := n.reevaluate(j)
		if err != nil {
			return nil, err
		}
		if changed {
			effects = append(effects, n)
		}
	}
	return graph.notifier(effects), nil
}

// notifier builds the closure that delivers the given effects to the
// graph-level hooks and then to each property's own change listeners,
// in propagation order. Must be called with the graph mutex held; the
// returned closure must be called without it.
func (g *coordinator) notifier(effects []body) func() {
	if len(effects) == 0 {
		return nil
	}
	evs := make([]Effect, len(effects))
	perProp := make([]func(), len(effects))
	for i, b := range effects {
		evs[i] = Effect{Property: b, Value: b.Current()}
		perProp[i] = b.notifier()
	}
	hooks := slices.Clone(g.effectHooks)
	return func() {
		for _, hook := range hooks {
			hook(evs)
		}
		for _, fn := range perProp {
			fn()
		}
	}
}

// journal records undo closures for a transaction, so that a failure
// during propagation can roll every body back to its pre-transaction
// state. Reverting runs the closures in reverse order.
type journal struct {
	undos []func()
}

func (j *journal) record(fn func()) {
	j.undos = append(j.undos, fn)
}

func (j *journal) revert() {
	for i := len(j.undos) - 1; i >= 0; i-- {
		j.undos[i]()
	}
	j.undos = nil
}
