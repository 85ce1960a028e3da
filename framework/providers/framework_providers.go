package providers

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-angular/framework/config"
	"github.com/km-arc/go-angular/framework/inject"
	"github.com/km-arc/go-angular/framework/routing"
)

// ── Core framework tokens ─────────────────────────────────────────────────────

// Config resolves the typed application configuration. Its default provider
// loads .env from the working directory, so configuration is available even
// before any module registers an override.
//
// Angular equivalent: an APP_CONFIG InjectionToken with a factory default.
var Config = inject.NewToken[*config.Config]("framework.config",
	inject.UseFactory(func() *config.Config {
		return config.Load()
	}))

// Logger resolves the application logger, built from the Config token's
// LOG_LEVEL / LOG_PRETTY settings on first use.
var Logger = inject.NewToken[zerolog.Logger]("framework.logger",
	inject.UseFactory(func() zerolog.Logger {
		return NewLogger(inject.MustInject(Config))
	}))

// Router resolves the HTTP router the kernel serves.
var Router = inject.NewToken[*routing.Router]("framework.router",
	inject.UseFactory(routing.New))

// NewLogger builds a zerolog.Logger from config. Exposed so modules that
// register Logger into an isolated injector can reuse the construction.
func NewLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.Log.Pretty {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", cfg.App.Name).
		Logger()
}

// ── Modules ───────────────────────────────────────────────────────────────────

// Module is a unit of composition-root wiring: Register binds tokens into
// the injector, Boot runs after every module has registered and is the first
// safe place to resolve other modules' tokens.
//
// Angular equivalent: an NgModule's providers array plus its initializer.
type Module interface {
	// Register binds tokens. Do not resolve other tokens here — use Boot.
	Register(in *inject.Injector) error

	// Boot is called after all modules are registered.
	Boot(in *inject.Injector) error
}

// BaseModule is an embeddable struct providing a no-op Boot.
// Embed it and implement only Register.
type BaseModule struct{}

func (BaseModule) Boot(_ *inject.Injector) error { return nil }

// ── ModuleRegistry ────────────────────────────────────────────────────────────

// ModuleRegistry manages the two-phase register/boot lifecycle of modules
// against one injector.
type ModuleRegistry struct {
	in         *inject.Injector
	modules    []Module
	registered map[Module]bool
	booted     bool
}

// NewModuleRegistry creates a registry bound to in (the default injector
// when nil).
func NewModuleRegistry(in *inject.Injector) *ModuleRegistry {
	if in == nil {
		in = inject.Default()
	}
	return &ModuleRegistry{
		in:         in,
		registered: make(map[Module]bool),
	}
}

// Register adds a module and runs its Register phase. Registering the same
// module instance twice is a no-op. If the registry has already booted, the
// module's Boot runs immediately after its Register.
func (r *ModuleRegistry) Register(m Module) error {
	if r.registered[m] {
		return nil
	}
	r.registered[m] = true

	if err := m.Register(r.in); err != nil {
		return err
	}
	r.modules = append(r.modules, m)

	if r.booted {
		return m.Boot(r.in)
	}
	return nil
}

// Boot runs the Boot phase on all registered modules, in registration order.
// Must be called after ALL modules have been registered; subsequent calls
// are no-ops.
func (r *ModuleRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, m := range r.modules {
		if err := m.Boot(r.in); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true once Boot has been called.
func (r *ModuleRegistry) Booted() bool { return r.booted }

// Modules returns all registered modules.
func (r *ModuleRegistry) Modules() []Module { return r.modules }

// ── CoreModule ────────────────────────────────────────────────────────────────

// CoreModule registers the framework tokens into a specific injector. Apps
// on the default injector get the same bindings for free through the tokens'
// default providers; isolated injectors (tests, embedded apps) register this
// module explicitly so the Logger factory resolves Config from the right
// place.
type CoreModule struct {
	BaseModule
	EnvFiles []string
}

func (m *CoreModule) Register(in *inject.Injector) error {
	envFiles := m.EnvFiles
	if err := inject.Register(Config, inject.UseFactory(func() *config.Config {
		return config.Load(envFiles...)
	}), in); err != nil {
		return err
	}
	if err := inject.Register(Logger, inject.UseFactory(func() zerolog.Logger {
		return NewLogger(inject.MustInject(Config, in))
	}), in); err != nil {
		return err
	}
	return inject.Register(Router, inject.UseFactory(routing.New), in)
}
