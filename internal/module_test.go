package internal_test

import (
	"testing"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
	. "github.com/zephyrtronium/turtle/testutils"
)

var counterKey = internal.NewKey[*int]("counter")

// counter is a module whose procedure counts its calls.
type counter struct {
	inits *int
}

func (counter) Name() string { return "counter" }

func (m counter) Init(root *turtle.Frame) *turtle.Handoff {
	*m.inits++
	internal.Put(root.Registry(), counterKey, new(int))
	return nil
}

func (counter) Procedures() map[string]turtle.Procedure {
	return map[string]turtle.Procedure{
		"tick": turtle.NewHost("tick", nil, false, func(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
			n, h := internal.State(f, counterKey)
			if h != nil {
				return turtle.Nothing, h
			}
			*n++
			return turtle.Number(float64(*n)), nil
		}),
	}
}

// failing is a module whose initializer fails.
type failing struct{}

func (failing) Name() string                            { return "failing" }
func (failing) Procedures() map[string]turtle.Procedure { return nil }
func (failing) Init(root *turtle.Frame) *turtle.Handoff {
	return internal.Raise(turtle.ModuleError, "no")
}

func TestLoadModuleFromChild(t *testing.T) {
	f := Root(t)
	c, h := f.Child(Procs(Proc("local", nil)), nil)
	if h != nil {
		t.Fatal(h)
	}
	var inits int
	if h := internal.LoadModule(c, counter{&inits}); h != nil {
		t.Fatal(h)
	}
	if inits != 1 {
		t.Errorf("initializer ran %d times", inits)
	}
	if _, ok := f.Procedure("tick"); !ok {
		t.Error("module procedure not visible from root")
	}
	if _, ok := c.Procs().GetLocal("tick"); ok {
		t.Error("module procedure injected into child")
	}
	for i := 1; i <= 3; i++ {
		v, h := internal.Evaluate(c, Inv("tick"))
		if h != nil || !v.Equal(turtle.Number(float64(i))) {
			t.Errorf("wrong tick %d: have %v (%v)", i, v, h)
		}
	}
	if h := internal.LoadModule(f, counter{&inits}); h != nil {
		t.Fatal(h)
	}
	if inits != 1 {
		t.Errorf("reloading ran initializer again")
	}
	found := false
	for _, name := range f.Modules() {
		found = found || name == "counter"
	}
	if !found {
		t.Errorf("counter missing from loaded modules %v", f.Modules())
	}
}

func TestLoadModuleFails(t *testing.T) {
	_, h := internal.NewRoot(Config(t), nil, nil, failing{})
	if !h.Is(turtle.ModuleError) {
		t.Errorf("want module error, have %v", h)
	}
}

// flaky is a module whose initializer fails until it has been tried enough.
type flaky struct {
	tries *int
}

func (flaky) Name() string                            { return "flaky" }
func (flaky) Procedures() map[string]turtle.Procedure { return nil }
func (m flaky) Init(root *turtle.Frame) *turtle.Handoff {
	*m.tries++
	if *m.tries < 2 {
		return internal.Raise(turtle.ModuleError, "not yet")
	}
	return nil
}

func TestLoadModuleRetry(t *testing.T) {
	f := Root(t)
	var tries int
	if h := internal.LoadModule(f, flaky{&tries}); !h.Is(turtle.ModuleError) {
		t.Fatalf("first load: want module error, have %v", h)
	}
	for _, name := range f.Modules() {
		if name == "flaky" {
			t.Error("failed module counted as loaded")
		}
	}
	if h := internal.LoadModule(f, flaky{&tries}); h != nil {
		t.Fatalf("second load: %v", h)
	}
	if tries != 2 {
		t.Errorf("initializer ran %d times, want 2", tries)
	}
	if h := internal.LoadModule(f, failing{}); !h.Is(turtle.ModuleError) {
		t.Errorf("failing module: want module error, have %v", h)
	}
	if h := internal.LoadModule(f, failing{}); !h.Is(turtle.ModuleError) {
		t.Errorf("failing module again: want module error, have %v", h)
	}
}

func TestStateMissing(t *testing.T) {
	f := Root(t)
	f.Inject(counter{new(int)}.Procedures())
	if _, h := internal.Evaluate(f, Inv("tick")); !h.Is(turtle.ModuleError) {
		t.Errorf("calling without state: want module error, have %v", h)
	}
}

// TestRegistryTyped tests that registry lookups fail closed on type
// mismatches.
func TestRegistryTyped(t *testing.T) {
	r := internal.NewRegistry()
	ik := internal.NewKey[int]("k")
	sk := internal.NewKey[string]("k")
	internal.Put(r, ik, 7)
	if v, ok := internal.Lookup(r, ik); !ok || v != 7 {
		t.Errorf("wrong value: have %d (%t)", v, ok)
	}
	if v, ok := internal.Lookup(r, sk); ok || v != "" {
		t.Errorf("mismatched key found %q", v)
	}
	internal.Remove(r, ik)
	if _, ok := internal.Lookup(r, ik); ok {
		t.Error("removed value found")
	}
	if ik.String() != "k" {
		t.Errorf("wrong key name %q", ik.String())
	}
}
