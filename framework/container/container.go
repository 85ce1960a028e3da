package container

import (
	"errors"
	"fmt"
	"sync"
)

// ── Errors ────────────────────────────────────────────────────────────────────

// ErrNotBound is returned by Make when no binding exists for a key.
var ErrNotBound = errors.New("container: not bound")

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

// binding holds a registered factory and whether it is a singleton.
type binding struct {
	factory   Factory
	singleton bool
}

// extender wraps an already-resolved instance with decorator logic.
type extender func(instance any, c *Container) any

// ── Container ─────────────────────────────────────────────────────────────────

// Container is a keyed IoC registry. Keys are opaque identities compared
// with ==, so any comparable value works: strings, pointers, token objects.
//
// It supports:
//   - Bind / Singleton / Instance
//   - Make / MustMake
//   - Extend (decorate / wrap resolved instances)
//   - Bound / Resolved / Forget / Flush introspection
//
// Higher layers (framework/inject) key the registry by token pointer
// identity; nothing in the container assumes keys carry meaning.
type Container struct {
	mu sync.RWMutex

	// key → binding
	bindings map[any]*binding

	// key → resolved singleton instance
	instances map[any]any

	// key → extender funcs
	extenders map[any][]extender
}

// New creates an empty container.
func New() *Container {
	return &Container{
		bindings:  make(map[any]*binding),
		instances: make(map[any]any),
		extenders: make(map[any][]extender),
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory: a new instance is built on every Make.
func (c *Container) Bind(key any, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(key, factory, false)
}

// Singleton registers a factory whose result is cached after the first
// successful resolution. A factory that panics caches nothing; the next
// Make runs it again.
func (c *Container) Singleton(key any, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bind(key, factory, true)
}

// Instance registers a pre-built value as a singleton.
func (c *Container) Instance(key any, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, key)
	c.instances[key] = instance
}

// bind is the internal registration helper (caller holds mu).
func (c *Container) bind(key any, factory Factory, singleton bool) {
	// Drop any existing singleton instance so it is rebuilt with the new factory
	delete(c.instances, key)
	c.bindings[key] = &binding{factory: factory, singleton: singleton}
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extend decorates the resolved instance of a key. Extenders run in
// registration order, once per built instance.
func (c *Container) Extend(key any, fn func(instance any, c *Container) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.extenders[key] = append(c.extenders[key], fn)

	// Already resolved as singleton: re-apply so callers see the decorated value
	if inst, ok := c.instances[key]; ok {
		c.instances[key] = fn(inst, c)
	}
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves a key from the container. Returns ErrNotBound (wrapped with
// the key) when nothing is registered under it.
func (c *Container) Make(key any) (any, error) {
	// Singleton instance cache first
	c.mu.RLock()
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	b, ok := c.bindings[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotBound, key)
	}

	return c.runFactory(key, b.factory, b.singleton), nil
}

// MustMake is like Make but panics when the key is not bound.
func (c *Container) MustMake(key any) any {
	v, err := c.Make(key)
	if err != nil {
		panic(err)
	}
	return v
}

// runFactory executes a factory, applies extenders, and caches the result
// for singletons. The cache write happens only after the factory returns,
// so a panicking factory leaves the binding intact and retryable.
func (c *Container) runFactory(key any, f Factory, singleton bool) any {
	instance := f(c)

	c.mu.RLock()
	exts := c.extenders[key]
	c.mu.RUnlock()
	for _, ext := range exts {
		instance = ext(instance, c)
	}

	if singleton {
		c.mu.Lock()
		// A concurrent Make may have raced us here; first write wins so
		// every caller keeps seeing one instance.
		if cached, ok := c.instances[key]; ok {
			instance = cached
		} else {
			c.instances[key] = instance
		}
		c.mu.Unlock()
	}

	return instance
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Bound returns true if the key has been registered.
func (c *Container) Bound(key any) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved returns true if the key has a cached singleton instance,
// i.e. it was resolved at least once or registered via Instance.
func (c *Container) Resolved(key any) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[key]
	return ok
}

// Forget removes all registrations for a key (binding + instance + extenders).
func (c *Container) Forget(key any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, key)
	delete(c.instances, key)
	delete(c.extenders, key)
}

// Flush resets the entire container: every binding, every cached instance,
// every extender.
func (c *Container) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bindings = make(map[any]*binding)
	c.instances = make(map[any]any)
	c.extenders = make(map[any][]extender)
}

// Keys returns all registered keys (for debugging).
func (c *Container) Keys() []any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]any, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	return out
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Make and type-asserts the result.
//
//	// Instead of: cfg := c.MustMake(key).(*config.Config)
//	// Write:      cfg, err := container.Resolve[*config.Config](c, key)
func Resolve[T any](c *Container, key any) (T, error) {
	var zero T
	instance, err := c.Make(key)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%T]: %v resolved to %T", zero, key, instance)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, key any) T {
	v, err := Resolve[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}
