package inject

import (
	"fmt"
	"reflect"

	"github.com/km-arc/go-angular/framework/container"
)

// ── Provider shapes ───────────────────────────────────────────────────────────

// Provider describes how to produce the instance bound to a token. Exactly
// one of three shapes, fixed at construction:
//
//   - UseValue   — a pre-built instance, returned as-is on every resolution
//   - UseClass   — a pointer-to-struct type, allocated and constructed once
//   - UseFactory — a zero-argument function, run at most once, result cached
//
// The constructors below are the only way to build a Provider, so shape
// discrimination happens here rather than by field-sniffing at resolve time.
type Provider[T any] interface {
	// install writes this provider's binding into the runtime under key.
	install(rt *container.Container, key any)
}

// Constructor is implemented by class-provided types that need to pull their
// own dependencies. Construct runs exactly once, right after allocation, and
// is the place to call Inject/MustInject — class providers take no
// constructor parameters.
type Constructor interface {
	Construct()
}

type valueProvider[T any] struct {
	value T
}

type classProvider[T any] struct {
	elem reflect.Type
}

type factoryProvider[T any] struct {
	fn func() T
}

// ── Constructors ──────────────────────────────────────────────────────────────

// UseValue binds a pre-built instance.
//
//	// Angular: {provide: API_URL, useValue: 'https://api.example.com'}
//	inject.Register(APIURL, inject.UseValue("https://api.example.com"))
func UseValue[T any](v T) Provider[T] {
	return valueProvider[T]{value: v}
}

// UseClass binds a type to be instantiated as a shared singleton. T must be
// a pointer to a struct; anything else panics here, at declaration time. The
// first resolution allocates the struct and calls its Construct method if it
// has one; every later resolution returns that same instance.
//
//	// Angular: {provide: GreeterToken, useClass: GreeterService}
//	inject.Register(Greeter, inject.UseClass[*GreeterService]())
func UseClass[T any]() Provider[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		panic(fmt.Sprintf("inject: UseClass[%s]: type parameter must be a pointer to a struct", t))
	}
	return classProvider[T]{elem: t.Elem()}
}

// UseFactory binds a zero-argument factory. The factory runs at most once;
// its result is cached and shared. A factory may itself call Inject to pull
// further dependencies.
//
//	// Angular: {provide: Clock, useFactory: () => new SystemClock()}
//	inject.Register(Clock, inject.UseFactory(func() Clock { return SystemClock{} }))
func UseFactory[T any](fn func() T) Provider[T] {
	if fn == nil {
		panic("inject: UseFactory: nil factory")
	}
	return factoryProvider[T]{fn: fn}
}

// ── Installation ──────────────────────────────────────────────────────────────

func (p valueProvider[T]) install(rt *container.Container, key any) {
	rt.Instance(key, p.value)
}

func (p classProvider[T]) install(rt *container.Container, key any) {
	elem := p.elem
	rt.Singleton(key, func(_ *container.Container) any {
		v := reflect.New(elem).Interface()
		if c, ok := v.(Constructor); ok {
			c.Construct()
		}
		return v
	})
}

func (p factoryProvider[T]) install(rt *container.Container, key any) {
	fn := p.fn
	rt.Singleton(key, func(_ *container.Container) any {
		return fn()
	})
}
