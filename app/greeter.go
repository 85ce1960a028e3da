package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-angular/framework/inject"
	"github.com/km-arc/go-angular/framework/providers"
)

// ── App tokens ────────────────────────────────────────────────────────────────

var (
	// Greeting is a plain value dependency, registered by Module.
	Greeting = inject.NewToken[string]("app.greeting")

	// ClockToken carries a factory default: the system clock installs
	// itself on first use unless a test registered a fake beforehand.
	ClockToken = inject.NewToken[Clock]("app.clock",
		inject.UseFactory(NewSystemClock))

	// Greeter is class-provided: one instance, constructed on first Inject.
	Greeter = inject.NewToken[*GreeterService]("app.greeter")
)

// ── Clock ─────────────────────────────────────────────────────────────────────

// Clock abstracts time for the greeter so tests can freeze it.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns the wall-clock implementation.
func NewSystemClock() Clock { return systemClock{} }

// ── GreeterService ────────────────────────────────────────────────────────────

// GreeterService demonstrates class-provided wiring: no constructor
// parameters; Construct pulls every dependency through tokens.
type GreeterService struct {
	log      zerolog.Logger
	clock    Clock
	greeting string
}

func (g *GreeterService) Construct() {
	g.log = inject.MustInject(providers.Logger)
	g.clock = inject.MustInject(ClockToken)
	g.greeting = inject.MustInject(Greeting)
}

// Greet builds the greeting line for a name.
func (g *GreeterService) Greet(name string) string {
	g.log.Debug().Str("name", name).Msg("greeting requested")
	return fmt.Sprintf("%s, %s! It is %s.",
		g.greeting, name, g.clock.Now().Format(time.Kitchen))
}

// ── Module ────────────────────────────────────────────────────────────────────

// Module wires the demo application's tokens.
type Module struct {
	providers.BaseModule
}

func (m *Module) Register(in *inject.Injector) error {
	if err := inject.Register(Greeting, inject.UseValue("Hello"), in); err != nil {
		return err
	}
	return inject.Register(Greeter, inject.UseClass[*GreeterService](), in)
}

func (m *Module) Boot(in *inject.Injector) error {
	log := inject.MustInject(providers.Logger, in)
	log.Debug().Msg("app module booted")
	return nil
}
