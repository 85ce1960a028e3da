package inject

// Token is an opaque typed identity used as a registry key for a dependency.
//
// Mirrors Angular's InjectionToken: the name is for humans and error
// messages only; identity is the pointer returned by NewToken, so two tokens
// created with the same name are still two distinct registry keys.
//
//	// Angular: export const API_URL = new InjectionToken<string>('api.url');
//	var APIURL = inject.NewToken[string]("api.url")
type Token[T any] struct {
	name string
	def  Provider[T]
}

// NewToken creates a fresh token. Every call allocates a new identity, even
// for identical names. Tokens are immutable after creation and live for the
// whole process; declare them once at package level.
//
// An optional default provider makes the token self-registering: the first
// Inject call on an otherwise unregistered token installs the default.
//
//	// Angular: new InjectionToken('clock', {factory: () => new SystemClock()})
//	var Clock = inject.NewToken[Clock]("clock",
//	    inject.UseFactory(func() Clock { return SystemClock{} }))
func NewToken[T any](name string, defaultProvider ...Provider[T]) *Token[T] {
	t := &Token[T]{name: name}
	if len(defaultProvider) > 0 {
		t.def = defaultProvider[0]
	}
	return t
}

// Name returns the token's debug name.
func (t *Token[T]) Name() string { return t.name }

// HasDefault reports whether the token carries a default provider.
func (t *Token[T]) HasDefault() bool { return t.def != nil }

func (t *Token[T]) String() string { return "Token(" + t.name + ")" }
