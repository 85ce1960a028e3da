package container_test

import (
	"errors"
	"testing"

	"github.com/km-arc/go-angular/framework/container"
)

// ── Registration & resolution ────────────────────────────────────────────────

func TestInstance_ReturnsSameValue(t *testing.T) {
	c := container.New()
	cfg := &struct{ Name string }{Name: "app"}
	c.Instance("config", cfg)

	got, err := c.Make("config")
	if err != nil {
		t.Fatalf("Make: %v", err)
	}
	if got != any(cfg) {
		t.Error("Instance should return the exact registered value")
	}
}

func TestSingleton_CachedAfterFirstMake(t *testing.T) {
	c := container.New()
	calls := 0
	c.Singleton("svc", func(_ *container.Container) any {
		calls++
		return &struct{ id int }{id: calls}
	})

	first, _ := c.Make("svc")
	second, _ := c.Make("svc")

	if first != second {
		t.Error("singleton resolved to two instances")
	}
	if calls != 1 {
		t.Errorf("factory ran %d times, want 1", calls)
	}
}

func TestBind_TransientBuildsEveryTime(t *testing.T) {
	c := container.New()
	calls := 0
	c.Bind("scratch", func(_ *container.Container) any {
		calls++
		return &struct{ id int }{id: calls}
	})

	first, _ := c.Make("scratch")
	second, _ := c.Make("scratch")

	if first == second {
		t.Error("transient binding returned a cached instance")
	}
	if calls != 2 {
		t.Errorf("factory ran %d times, want 2", calls)
	}
}

func TestMake_NotBound(t *testing.T) {
	c := container.New()
	_, err := c.Make("ghost")
	if !errors.Is(err, container.ErrNotBound) {
		t.Fatalf("got %v, want ErrNotBound", err)
	}
}

func TestMustMake_PanicsWhenNotBound(t *testing.T) {
	c := container.New()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	c.MustMake("ghost")
}

func TestSingleton_PanickingFactoryIsRetried(t *testing.T) {
	c := container.New()
	calls := 0
	c.Singleton("flaky", func(_ *container.Container) any {
		calls++
		if calls == 1 {
			panic("first attempt fails")
		}
		return "ok"
	})

	func() {
		defer func() { _ = recover() }()
		_, _ = c.Make("flaky")
	}()

	if c.Resolved("flaky") {
		t.Fatal("a panicking factory must not cache an instance")
	}

	got, err := c.Make("flaky")
	if err != nil {
		t.Fatalf("retry Make: %v", err)
	}
	if got != any("ok") || calls != 2 {
		t.Errorf("got %v after %d calls, want ok after 2", got, calls)
	}
}

// ── Opaque keys ──────────────────────────────────────────────────────────────

func TestKeys_PointerIdentity(t *testing.T) {
	c := container.New()
	type key struct{ name string }
	k1 := &key{name: "same"}
	k2 := &key{name: "same"}

	c.Instance(k1, "one")
	c.Instance(k2, "two")

	if got, _ := c.Make(k1); got != any("one") {
		t.Errorf("k1: got %v", got)
	}
	if got, _ := c.Make(k2); got != any("two") {
		t.Errorf("k2: got %v", got)
	}
}

// ── Introspection ────────────────────────────────────────────────────────────

func TestBound_And_Resolved(t *testing.T) {
	c := container.New()

	if c.Bound("svc") {
		t.Error("empty container reports Bound")
	}

	c.Singleton("svc", func(_ *container.Container) any { return 1 })

	if !c.Bound("svc") {
		t.Error("Bound should be true after Singleton")
	}
	if c.Resolved("svc") {
		t.Error("Resolved should be false before first Make")
	}

	_, _ = c.Make("svc")

	if !c.Resolved("svc") {
		t.Error("Resolved should be true after Make")
	}
}

func TestForget_RemovesOneKey(t *testing.T) {
	c := container.New()
	c.Instance("keep", 1)
	c.Instance("drop", 2)

	c.Forget("drop")

	if c.Bound("drop") {
		t.Error("forgotten key still bound")
	}
	if !c.Bound("keep") {
		t.Error("Forget removed an unrelated key")
	}
}

func TestFlush_RemovesEverything(t *testing.T) {
	c := container.New()
	c.Instance("a", 1)
	c.Singleton("b", func(_ *container.Container) any { return 2 })
	_, _ = c.Make("b")

	c.Flush()

	if c.Bound("a") || c.Bound("b") {
		t.Error("Flush left bindings behind")
	}
	if c.Resolved("b") {
		t.Error("Flush left cached instances behind")
	}
	if len(c.Keys()) != 0 {
		t.Errorf("Keys after Flush: got %d, want 0", len(c.Keys()))
	}
}

func TestKeys_ListsBindingsAndInstances(t *testing.T) {
	c := container.New()
	c.Instance("inst", 1)
	c.Singleton("fact", func(_ *container.Container) any { return 2 })

	if got := len(c.Keys()); got != 2 {
		t.Errorf("Keys: got %d, want 2", got)
	}
}

// ── Extend ───────────────────────────────────────────────────────────────────

func TestExtend_DecoratesResolution(t *testing.T) {
	c := container.New()
	c.Singleton("msg", func(_ *container.Container) any { return "hello" })
	c.Extend("msg", func(instance any, _ *container.Container) any {
		return instance.(string) + ", world"
	})

	got, _ := c.Make("msg")
	if got != any("hello, world") {
		t.Errorf("got %v", got)
	}

	// Singleton: the decorated value is what gets cached.
	again, _ := c.Make("msg")
	if again != got {
		t.Error("extender re-ran on a cached singleton")
	}
}

func TestExtend_AppliesToAlreadyResolvedSingleton(t *testing.T) {
	c := container.New()
	c.Instance("msg", "hello")

	c.Extend("msg", func(instance any, _ *container.Container) any {
		return instance.(string) + "!"
	})

	got, _ := c.Make("msg")
	if got != any("hello!") {
		t.Errorf("got %v, want decorated value", got)
	}
}

// ── Generics helpers ─────────────────────────────────────────────────────────

func TestResolve_TypedSuccess(t *testing.T) {
	c := container.New()
	c.Instance("n", 42)

	got, err := container.Resolve[int](c, "n")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != 42 {
		t.Errorf("got %d want 42", got)
	}
}

func TestResolve_TypeMismatch(t *testing.T) {
	c := container.New()
	c.Instance("n", "not an int")

	_, err := container.Resolve[int](c, "n")
	if err == nil {
		t.Fatal("expected a type-mismatch error")
	}
}

func TestMustResolve_PanicsOnMissing(t *testing.T) {
	c := container.New()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	container.MustResolve[int](c, "ghost")
}

// ── Factory receives the container ───────────────────────────────────────────

func TestFactory_CanResolveOtherBindings(t *testing.T) {
	c := container.New()
	c.Instance("name", "svc")
	c.Singleton("greeting", func(c *container.Container) any {
		return "hello " + container.MustResolve[string](c, "name")
	})

	got, _ := c.Make("greeting")
	if got != any("hello svc") {
		t.Errorf("got %v", got)
	}
}
