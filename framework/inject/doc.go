// Package inject ports Angular's injection-token DI idiom to Go: typed
// tokens, three provider shapes, lazy singleton resolution, and a reset for
// test isolation. The actual registry storage and caching live in
// framework/container; this package is the typed contract on top.
//
// # Tokens
//
// A token is an opaque typed identity. Declare tokens once, at package level:
//
//	// Angular: export const API_URL = new InjectionToken<string>('api.url');
//	var APIURL = inject.NewToken[string]("api.url")
//
// Identity is the allocation, not the name: two NewToken calls with the same
// name produce two unrelated tokens. Names only show up in error messages.
//
// A token may carry a default provider, installed automatically on first
// Inject if nothing was registered explicitly:
//
//	var Clock = inject.NewToken[Clock]("clock",
//	    inject.UseFactory(func() Clock { return SystemClock{} }))
//
// # Providers
//
// Three shapes, all singleton-cached from the caller's perspective:
//
//	inject.UseValue(cfg)                  // a pre-built instance
//	inject.UseClass[*GreeterService]()    // allocated + Construct()ed once
//	inject.UseFactory(func() T { ... })   // run once, result cached
//
// Class-provided types take no constructor parameters. If the struct needs
// dependencies, implement Construct and pull them there:
//
//	type GreeterService struct {
//	    log zerolog.Logger
//	}
//
//	func (g *GreeterService) Construct() {
//	    g.log = inject.MustInject(providers.Logger)
//	}
//
// # Register / Inject / Reset
//
//	err := inject.Register(APIURL, inject.UseValue("https://api.example.com"))
//	url, err := inject.Inject(APIURL)
//	inject.Reset() // between test cases
//
// Register is write-once per token (ErrDuplicate on the second attempt);
// Inject on an unbound, defaultless token fails with ErrUnresolved. Both are
// fail-fast wiring errors, surfaced during development, never retried.
//
// Calls operate on a process-wide default injector. Pass an explicit one as
// the optional trailing argument to keep tests isolated:
//
//	in := inject.NewInjector()
//	inject.MustRegister(APIURL, inject.UseValue("http://stub"), in)
//	url := inject.MustInject(APIURL, in)
package inject
