package internal_test

import (
	"testing"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
	. "github.com/zephyrtronium/turtle/testutils"
)

func TestChildDepth(t *testing.T) {
	cfg := Config(t)
	cfg.MaxDepth = 3
	f := RootConfig(t, cfg)
	if f.Depth() != 0 {
		t.Errorf("root has depth %d", f.Depth())
	}
	for i := 1; i <= 3; i++ {
		c, h := f.Child(nil, nil)
		if h != nil {
			t.Fatalf("creating frame at depth %d: %v", i, h)
		}
		if c.Depth() != i || c.Parent() != f || c.Root() == c {
			t.Errorf("wrong frame at depth %d: have depth %d", i, c.Depth())
		}
		f = c
	}
	if _, h := f.Child(nil, nil); !h.Is(turtle.MaxDepthError) {
		t.Errorf("frame past the limit: want max depth error, have %v", h)
	}
}

func TestDefaultMaxDepth(t *testing.T) {
	cfg := Config(t)
	cfg.MaxDepth = 0
	f := RootConfig(t, cfg)
	if d := f.Config().MaxDepth; d != turtle.DefaultMaxDepth {
		t.Errorf("wrong default max depth %d", d)
	}
}

// TestChildStores tests that children always get their own variables but
// share procedures unless given new ones.
func TestChildStores(t *testing.T) {
	f := Root(t)
	shared, h := f.Child(nil, nil)
	if h != nil {
		t.Fatal(h)
	}
	if shared.Procs() != f.Procs() {
		t.Error("child without procedures has its own procedure store")
	}
	if shared.Vars() == f.Vars() {
		t.Error("child shares its parent's variable store")
	}
	p := Proc("square", []string{"x"})
	own, h := f.Child(Procs(p), map[string]turtle.Bottom{"y": turtle.Number(1)})
	if h != nil {
		t.Fatal(h)
	}
	if own.Procs() == f.Procs() || own.Procs().Parent() != f.Procs() {
		t.Error("child with procedures does not chain a new procedure store")
	}
	if q, ok := own.Procedure("square"); !ok || q != turtle.Procedure(p) {
		t.Error("child's procedure is not visible")
	}
	if _, ok := f.Procedure("square"); ok {
		t.Error("child's procedure is visible in parent")
	}
	if v, ok := own.Variable("y"); !ok || !v.Equal(turtle.Number(1)) {
		t.Errorf("wrong bound variable: have %v (%t)", v, ok)
	}
}

func TestInject(t *testing.T) {
	f := Root(t)
	c, h := f.Child(Procs(Proc("a", nil)), nil)
	if h != nil {
		t.Fatal(h)
	}
	c.Inject(Procs(Proc("b", nil)))
	if _, ok := c.Procedure("b"); !ok {
		t.Error("injected procedure not visible")
	}
	if _, ok := f.Procedure("b"); ok {
		t.Error("injected procedure visible in parent")
	}
	gc, h := c.Child(nil, nil)
	if h != nil {
		t.Fatal(h)
	}
	if _, ok := gc.Procedure("b"); !ok {
		t.Error("injected procedure not visible in descendant")
	}
}

// TestInjectShared tests that a frame without procedures of its own injects
// into the store it shares with its parent, including when a procedure runs
// in its caller's frame.
func TestInjectShared(t *testing.T) {
	f := Root(t)
	c, h := f.Child(nil, nil)
	if h != nil {
		t.Fatal(h)
	}
	c.Inject(Procs(Proc("b", nil)))
	if _, ok := f.Procedure("b"); !ok {
		t.Error("procedure injected through shared store not visible in parent")
	}
	p := turtle.NewInterpreted("body", nil, false, nil, Procs(Proc("helper", nil)))
	if _, h := internal.Apply(c, p, nil, true); h != nil {
		t.Fatal(h)
	}
	if _, ok := f.Procs().GetLocal("helper"); !ok {
		t.Error("sub-procedure of reused procedure not left in root")
	}
}

func TestAllVariables(t *testing.T) {
	f := Root(t)
	f.Vars().Set("a", turtle.Number(1))
	f.Vars().Set("b", turtle.Number(1))
	c, h := f.Child(nil, map[string]turtle.Bottom{"b": turtle.Number(2)})
	if h != nil {
		t.Fatal(h)
	}
	all := c.AllVariables()
	if len(all) != 2 || !all["a"].Equal(turtle.Number(1)) || !all["b"].Equal(turtle.Number(2)) {
		t.Errorf("wrong variables %v", all)
	}
	if _, ok := c.AllProcedures()["forward"]; !ok {
		t.Error("module procedure missing from all procedures")
	}
}

func TestDepthHook(t *testing.T) {
	var depths []int
	cfg := Config(t)
	cfg.DepthHook = func(depth int) { depths = append(depths, depth) }
	f := RootConfig(t, cfg, Proc("leaf", nil), Proc("branch", nil, Inv("leaf")))
	if _, h := internal.Invoke(f, Inv("branch"), false); h != nil {
		t.Fatal(h)
	}
	want := []int{1, 2, 1, 0}
	if len(depths) != len(want) {
		t.Fatalf("wrong depths: want %v, have %v", want, depths)
	}
	for i, d := range want {
		if depths[i] != d {
			t.Errorf("wrong depth at %d: want %d, have %d", i, d, depths[i])
		}
	}
}

func TestRunID(t *testing.T) {
	a, b := Root(t), Root(t)
	if a.RunID() == b.RunID() {
		t.Error("roots share a run ID")
	}
	c, h := a.Child(nil, nil)
	if h != nil {
		t.Fatal(h)
	}
	if c.RunID() != a.RunID() || c.Registry() != a.Registry() {
		t.Error("child does not share its root's state")
	}
}
