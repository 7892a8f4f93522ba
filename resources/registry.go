// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resources provides name-keyed registries of opaque shared
// resource handles (fonts, textures, shaders, paint descriptions).
// The scene core treats the resources themselves as black boxes; it
// only resolves them by name and passes the shared handles through.
package resources

import (
	"fmt"
	"sync"

	"golang.org/x/exp/maps"
)

// NotFoundError is the error returned when a resource name cannot be
// resolved.
type NotFoundError struct {
	// Kind is the registry's resource kind (e.g., "font").
	Kind string

	// Name is the unresolvable name.
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resources: no %s named %q", e.Kind, e.Name)
}

// Registry is a name-keyed collection of shared resource handles of
// one kind. It is safe for concurrent use.
type Registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]*T
}

// NewRegistry returns a new [Registry] for the given resource kind,
// which is used in diagnostics only.
func NewRegistry[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, items: map[string]*T{}}
}

// Register adds the given resource under the given name, replacing any
// existing resource with that name.
func (r *Registry[T]) Register(name string, item *T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[name] = item
}

// Get returns the resource registered under the given name, or a
// [*NotFoundError] if there is none. The returned handle is shared:
// all callers resolve to the same underlying resource.
func (r *Registry[T]) Get(name string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[name]
	if !ok {
		return nil, &NotFoundError{Kind: r.kind, Name: name}
	}
	return item, nil
}

// Remove removes the resource registered under the given name,
// returning whether it was present.
func (r *Registry[T]) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[name]
	delete(r.items, name)
	return ok
}

// Names returns the registered names, in unspecified order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maps.Keys(r.items)
}
