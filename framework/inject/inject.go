package inject

import (
	"errors"
	"fmt"
	"sync"

	"github.com/km-arc/go-angular/framework/container"
)

// ── Errors ────────────────────────────────────────────────────────────────────

// ErrDuplicate is returned by Register when the token already has a binding.
// Registrations are write-once until Reset; hitting this is a wiring bug,
// not a runtime condition to recover from.
var ErrDuplicate = errors.New("inject: token already registered")

// ErrUnresolved is returned by Inject when the token has no binding and no
// default provider.
var ErrUnresolved = errors.New("inject: unresolved token")

// ── Injector ──────────────────────────────────────────────────────────────────

// Injector owns one registry. Most code uses the process-wide default
// injector implicitly; tests and embedded uses can build isolated ones with
// NewInjector and pass them as the optional trailing argument of Register,
// Inject, Find and Reset.
type Injector struct {
	runtime *container.Container

	// serializes the check-then-install sequence in register
	mu sync.Mutex
}

// NewInjector creates an empty, isolated injector.
func NewInjector() *Injector {
	return &Injector{runtime: container.New()}
}

// Runtime exposes the underlying container, for advanced wiring and tests.
func (in *Injector) Runtime() *container.Container { return in.runtime }

var defaultInjector = NewInjector()

// Default returns the process-wide injector used when calls omit an
// explicit one.
func Default() *Injector { return defaultInjector }

// pick selects the explicit injector if one was passed, the default otherwise.
func pick(injectors []*Injector) *Injector {
	if len(injectors) > 0 && injectors[0] != nil {
		return injectors[0]
	}
	return defaultInjector
}

// ── Register ──────────────────────────────────────────────────────────────────

// Register binds a provider to a token. Bindings are write-once: a second
// Register for the same token fails with ErrDuplicate and leaves the
// existing binding untouched. Reset clears the slate.
//
//	// Angular: providers: [{provide: API_URL, useValue: url}]
//	err := inject.Register(APIURL, inject.UseValue(url))
func Register[T any](token *Token[T], provider Provider[T], injectors ...*Injector) error {
	if token == nil {
		panic("inject: Register: nil token")
	}
	if provider == nil {
		panic("inject: Register: nil provider")
	}

	in := pick(injectors)
	in.mu.Lock()
	defer in.mu.Unlock()

	if in.runtime.Bound(token) {
		return fmt.Errorf("%w: %s", ErrDuplicate, token.Name())
	}
	provider.install(in.runtime, token)
	return nil
}

// MustRegister is Register for composition roots: it panics on error.
func MustRegister[T any](token *Token[T], provider Provider[T], injectors ...*Injector) {
	if err := Register(token, provider, injectors...); err != nil {
		panic(err)
	}
}

// ── Inject ────────────────────────────────────────────────────────────────────

// Inject resolves the instance bound to a token.
//
// When the token is unregistered but carries a default provider, the default
// is registered first (lazy self-registration), then resolved. When it is
// unregistered and defaultless, Inject fails with ErrUnresolved.
//
// Value, class and factory bindings are all singleton from the caller's
// perspective: every Inject of the same token yields the same instance until
// Reset.
//
//	// Angular: const url = inject(API_URL);
//	url, err := inject.Inject(APIURL)
func Inject[T any](token *Token[T], injectors ...*Injector) (T, error) {
	if token == nil {
		panic("inject: Inject: nil token")
	}

	in := pick(injectors)
	if !in.runtime.Bound(token) {
		var zero T
		if token.def == nil {
			return zero, fmt.Errorf("%w: %s", ErrUnresolved, token.Name())
		}
		// ErrDuplicate here means a concurrent caller installed the default
		// between our check and theirs; either way the binding exists now.
		if err := Register(token, token.def, in); err != nil && !errors.Is(err, ErrDuplicate) {
			return zero, err
		}
	}

	return container.Resolve[T](in.runtime, token)
}

// MustInject is Inject for code that treats a missing binding as a wiring
// bug: it panics on error.
//
//	logger := inject.MustInject(providers.Logger)
func MustInject[T any](token *Token[T], injectors ...*Injector) T {
	v, err := Inject(token, injectors...)
	if err != nil {
		panic(err)
	}
	return v
}

// Find is like Inject but reports a missing binding as (zero, false) instead
// of an error. A token with a default provider is never "missing".
func Find[T any](token *Token[T], injectors ...*Injector) (T, bool) {
	v, err := Inject(token, injectors...)
	if err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// ── Reset ─────────────────────────────────────────────────────────────────────

// Reset unconditionally discards every binding and every cached instance in
// the injector. Previously registered tokens can be registered again, and
// tokens with default providers will self-register anew on next Inject.
//
// Intended for isolation between test cases, not for steady-state use.
func Reset(injectors ...*Injector) {
	pick(injectors).runtime.Flush()
}
