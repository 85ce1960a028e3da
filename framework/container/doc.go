// Package container provides the keyed IoC registry that underpins the
// injection-token layer in framework/inject.
//
// # Overview
//
// The container is a flat mapping from opaque keys to bindings. A binding is
// either a pre-built instance, a singleton factory (run once, result cached),
// or a transient factory (run on every Make). Keys are compared with ==, so
// strings work for hand wiring and pointer identities work for tokens.
//
// # Bindings
//
//	c := container.New()
//
//	// Pre-built value
//	c.Instance(key, myConfig)
//
//	// Singleton — created once, reused
//	c.Singleton(key, func(c *container.Container) any {
//	    return buildExpensiveThing()
//	})
//
//	// Transient — new instance every Make()
//	c.Bind(key, func(c *container.Container) any { return &Scratch{} })
//
// # Resolving
//
//	raw, err := c.Make(key)
//
//	// Generic (preferred — no type assertion required)
//	cfg, err := container.Resolve[*config.Config](c, key)
//
// # Lifecycle
//
// Bound reports whether a key has any registration; Resolved reports whether
// a singleton instance has been built. Forget removes one key, Flush removes
// everything — Flush is what gives the token layer its Reset semantics.
//
// A singleton factory that panics during its first run caches nothing: the
// binding stays in place and the next Make retries it.
package container
