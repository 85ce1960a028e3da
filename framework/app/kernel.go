package app

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-angular/framework/config"
	"github.com/km-arc/go-angular/framework/inject"
	"github.com/km-arc/go-angular/framework/providers"
	"github.com/km-arc/go-angular/framework/routing"
)

// Application is the top-level kernel. It owns an isolated injector, wires
// the framework's core tokens through CoreModule, and exposes the module
// register/boot lifecycle — the Go rendition of bootstrapping a root module.
type Application struct {
	Injector *inject.Injector
	Modules  *providers.ModuleRegistry
}

// New creates and bootstraps the application on the process-wide default
// injector, so free-standing inject.Inject calls and class-provider
// Construct methods see the same registry. Core tokens (config, logger,
// router) are registered immediately; user modules are added with Register
// and come alive on Boot / Run.
//
// Call New before any Inject of a core token: an auto-registered default
// would make CoreModule's explicit registration a duplicate.
func New(envFiles ...string) *Application {
	return NewWith(inject.Default(), envFiles...)
}

// NewWith is New on an explicit injector. Used by tests and embedded apps
// that need isolation; note class providers resolve their Construct
// dependencies from the default injector, so isolated apps should prefer
// factory providers closing over the injector.
func NewWith(in *inject.Injector, envFiles ...string) *Application {
	registry := providers.NewModuleRegistry(in)

	app := &Application{
		Injector: in,
		Modules:  registry,
	}

	if err := registry.Register(&providers.CoreModule{EnvFiles: envFiles}); err != nil {
		// A duplicate here means a core token was resolved or registered
		// before the kernel was built. Fail fast: that is a wiring bug.
		panic(err)
	}

	return app
}

// Register adds a module to the application.
func (a *Application) Register(m providers.Module) error {
	return a.Modules.Register(m)
}

// Boot runs the Boot phase on all registered modules.
func (a *Application) Boot() error {
	return a.Modules.Boot()
}

// Config resolves the application configuration.
func (a *Application) Config() *config.Config {
	return inject.MustInject(providers.Config, a.Injector)
}

// Logger resolves the application logger.
func (a *Application) Logger() zerolog.Logger {
	return inject.MustInject(providers.Logger, a.Injector)
}

// Router resolves the HTTP router.
func (a *Application) Router() *routing.Router {
	return inject.MustInject(providers.Router, a.Injector)
}

// Run boots the application (if needed) and starts the HTTP server on the
// configured port. Blocks until the server stops.
func (a *Application) Run() error {
	if !a.Modules.Booted() {
		if err := a.Boot(); err != nil {
			return err
		}
	}

	cfg := a.Config()
	log := a.Logger()
	addr := ":" + cfg.App.Port

	log.Info().
		Str("addr", addr).
		Str("env", cfg.App.Env).
		Msgf("%s listening on http://localhost%s", cfg.App.Name, addr)

	return http.ListenAndServe(addr, a.Router())
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return "0.1.0" }
