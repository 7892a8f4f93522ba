// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package property

// Batch is a transactional group of prepared updates: value sets and
// expression installs staged with [Queue] and [QueueExpression] and
// applied atomically by [Batch.Execute]. A batch that is never
// executed simply discards its updates. Batches are not safe for
// concurrent staging; Execute serializes with the rest of the graph.
type Batch struct {
	updates []batchUpdate
}

// NewBatch returns a new empty [Batch].
func NewBatch() *Batch {
	return &Batch{}
}

// Len returns the number of staged updates.
func (b *Batch) Len() int {
	return len(b.updates)
}

// Drop discards all staged updates without applying them.
func (b *Batch) Drop() {
	b.updates = nil
}

// Queue stages setting the given property to the given value.
// Updates apply in the order they are staged.
func Queue[T comparable](b *Batch, p *Property[T], value T) {
	b.updates = append(b.updates, &valueUpdate[T]{p: p, value: value})
}

// QueueExpression stages installing the given expression with the
// given dependencies on the given property. Updates apply in the
// order they are staged.
func QueueExpression[T comparable](b *Batch, p *Property[T], expression func() T, deps ...AnyReader) {
	if expression == nil {
		panic("property: QueueExpression called with nil expression")
	}
	b.updates = append(b.updates, &exprUpdate[T]{p: p, expression: expression, deps: dedupeReaders(deps)})
}

// Execute validates and applies every staged update as one atomic
// transaction: all cycle checks and validators run first, and any
// failure aborts the whole batch with no property modified. On
// success all updates are applied, downstream expressions are
// re-evaluated once, and the combined changed set is emitted as a
// single ordered event. The batch is emptied either way.
func (b *Batch) Execute() error {
	updates := b.updates
	b.updates = nil
	if len(updates) == 0 {
		return nil
	}
	queued, err := execute(updates)
	if err != nil {
		return err
	}
	if queued {
		graph.flushNotifies()
	}
	return nil
}

func execute(updates []batchUpdate) (bool, error) {
	graph.mu.Lock()
	defer graph.mu.Unlock()

	// validate the combined effect of all updates before touching
	// anything; pending tracks the upstream lists that earlier staged
	// updates will produce, so cycle checks see the batch as a whole
	pending := map[body][]body{}
	for _, u := range updates {
		if err := u.prepare(pending); err != nil {
			return false, err
		}
	}

	var j journal
	var sources []body
	seen := map[body]bool{}
	for _, u := range updates {
		tgt, changed := u.commit(&j)
		if changed && !seen[tgt] {
			seen[tgt] = true
			sources = append(sources, tgt)
		}
	}

	notify, err := propagate(sources, &j)
	if err != nil {
		// a validator rejected an evaluated value; poison the batch
		j.revert()
		return false, err
	}
	graph.enqueueNotify(notify)
	return notify != nil, nil
}

// batchUpdate is one staged update in a [Batch].
type batchUpdate interface {
	// prepare validates the update under the graph lock. pending maps
	// bodies updated earlier in the batch to their staged upstream
	// lists. prepare must not modify any body.
	prepare(pending map[body][]body) error

	// commit applies the update, recording undos in j. It returns the
	// target body and whether the update changed its value or
	// installed an expression.
	commit(j *journal) (body, bool)
}

type valueUpdate[T comparable] struct {
	p         *Property[T]
	value     T
	validated T
}

func (u *valueUpdate[T]) prepare(pending map[body][]body) error {
	v := u.value
	if u.p.validator != nil {
		var err error
		v, err = u.p.validator(u.value)
		if err != nil {
			return &ValidationError{Property: u.p, Err: err}
		}
	}
	u.validated = v
	pending[u.p] = nil // a direct set grounds the property
	return nil
}

func (u *valueUpdate[T]) commit(j *journal) (body, bool) {
	p := u.p
	p.ground(j)
	p.dropExpression(j)
	if p.value == u.validated {
		return p, false
	}
	old := p.value
	p.value = u.validated
	j.record(func() { p.value = old })
	return p, true
}

type exprUpdate[T comparable] struct {
	p          *Property[T]
	expression func() T
	deps       []body
}

func (u *exprUpdate[T]) prepare(pending map[body][]body) error {
	if dependsOn(u.p, u.deps, pending) {
		return &CycleError{Property: u.p}
	}
	pending[u.p] = u.deps
	return nil
}

func (u *exprUpdate[T]) commit(j *journal) (body, bool) {
	p := u.p
	p.ground(j)
	p.install(u.expression, u.deps, j)
	return p, true
}
