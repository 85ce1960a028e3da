package inject_test

import (
	"testing"

	"github.com/km-arc/go-angular/framework/inject"
)

type service struct {
	ready bool
}

func (s *service) Construct() { s.ready = true }

// plain has no Construct method; class provision must still work.
type plain struct {
	n int
}

func TestUseClass_RequiresPointerToStruct(t *testing.T) {
	mustPanic(t, func() { inject.UseClass[int]() })
	mustPanic(t, func() { inject.UseClass[string]() })
	mustPanic(t, func() { inject.UseClass[*int]() })

	// value struct (not pointer) is rejected too
	mustPanic(t, func() { inject.UseClass[plain]() })
}

func TestUseClass_ConstructOptional(t *testing.T) {
	in := inject.NewInjector()
	tok := inject.NewToken[*plain]("plain.class")

	inject.MustRegister(tok, inject.UseClass[*plain](), in)

	got := inject.MustInject(tok, in)
	if got == nil || got.n != 0 {
		t.Errorf("got %+v, want a zero-valued allocation", got)
	}
}

func TestUseClass_ConstructRuns(t *testing.T) {
	in := inject.NewInjector()
	tok := inject.NewToken[*service]("service.class")

	inject.MustRegister(tok, inject.UseClass[*service](), in)

	if got := inject.MustInject(tok, in); !got.ready {
		t.Error("Construct did not run")
	}
}

func TestUseFactory_NilPanics(t *testing.T) {
	mustPanic(t, func() { inject.UseFactory[int](nil) })
}

type stubGreeter struct{}

func (stubGreeter) Greet() string { return "hi" }

type greeterIface interface{ Greet() string }

func TestUseValue_InterfaceTyped(t *testing.T) {
	in := inject.NewInjector()
	tok := inject.NewToken[greeterIface]("iface.value")

	inject.MustRegister(tok, inject.UseValue[greeterIface](stubGreeter{}), in)

	got, err := inject.Inject(tok, in)
	if err != nil {
		t.Fatalf("Inject: %v", err)
	}
	if got.Greet() != "hi" {
		t.Errorf("Greet(): got %q want %q", got.Greet(), "hi")
	}
}
