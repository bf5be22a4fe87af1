package internal_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/coreext/graphics"
	"github.com/zephyrtronium/turtle/internal"
	. "github.com/zephyrtronium/turtle/testutils"
)

func TestProgramRoundTrip(t *testing.T) {
	prog := &turtle.Program{
		Procedures: Procs(double(), sum(), countdown()),
		Body: []*turtle.Invocation{
			Inv("make", Ref("x"), Call("double", Num(21))),
			Inv("repeat", Num(4), Block(Inv("forward", Deref("x")), Inv("right", Num(90)))),
			Inv("print", Lit(turtle.List(turtle.Text("a"), turtle.Boolean(false), turtle.List()))),
			Inv("if", Compare(Deref("x"), turtle.OpGreater, Neg(Num(1))), Block(Inv("stop"))),
		},
	}
	b, err := turtle.MarshalProgram(prog)
	if err != nil {
		t.Fatal(err)
	}
	got, err := turtle.UnmarshalProgram(b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Body) != len(prog.Body) {
		t.Fatalf("wrong body length: want %d, have %d", len(prog.Body), len(got.Body))
	}
	for i, inv := range prog.Body {
		if have := got.Body[i].String(); have != inv.String() {
			t.Errorf("statement %d: want %q, have %q", i, inv.String(), have)
		}
	}
	if have, want := internal.ProcedureNames(got.Procedures), internal.ProcedureNames(prog.Procedures); !reflect.DeepEqual(have, want) {
		t.Errorf("wrong procedures: want %v, have %v", want, have)
	}
	s, ok := got.Procedures["sum"]
	if !ok || !s.HasRest() || !reflect.DeepEqual(s.Params(), []string{"a", "rest"}) {
		t.Errorf("wrong signature for sum: %v", s)
	}
	again, err := turtle.MarshalProgram(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(b) {
		t.Errorf("second encoding differs:\n%s\n----\n%s", b, again)
	}
}

// TestProgramReload tests that a decoded program behaves as the original.
func TestProgramReload(t *testing.T) {
	b, err := turtle.MarshalProgram(&turtle.Program{Procedures: Procs(double(), countdown())})
	if err != nil {
		t.Fatal(err)
	}
	prog, err := turtle.UnmarshalProgram(b)
	if err != nil {
		t.Fatal(err)
	}
	f := Root(t, prog.Procedures["double"], prog.Procedures["countdown"])
	if v, h := internal.Evaluate(f, Inv("double", Num(21))); h != nil || !v.Equal(turtle.Number(42)) {
		t.Errorf("reloaded double: want 42, have %v (%v)", v, h)
	}
	if v, h := internal.Evaluate(f, Inv("countdown", Num(1000))); h != nil || !v.Equal(turtle.Text("done")) {
		t.Errorf("reloaded countdown: want done, have %v (%v)", v, h)
	}
}

// TestHostPlaceholder tests that persisted host procedures load as
// placeholders which a module later replaces.
func TestHostPlaceholder(t *testing.T) {
	host := turtle.NewHost("fd", []string{"distance"}, false, func(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
		return turtle.Nothing, nil
	})
	b, err := internal.MarshalProcedure(host)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "host: true") {
		t.Errorf("host procedure not marked:\n%s", b)
	}
	p, err := internal.UnmarshalProcedure(b)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(*internal.Placeholder); !ok {
		t.Fatalf("host procedure loaded as %T", p)
	}
	f, h := internal.NewRoot(Config(t), Procs(p), nil)
	if h != nil {
		t.Fatal(h)
	}
	if _, h := internal.Invoke(f, Inv("fd", Num(10)), false); !h.Is(turtle.ModuleError) {
		t.Errorf("placeholder without module: want module error, have %v", h)
	}
	if h := internal.LoadModule(f, graphics.Module{}); h != nil {
		t.Fatal(h)
	}
	if _, h := internal.Invoke(f, Inv("fd", Num(10)), false); h != nil {
		t.Errorf("placeholder after loading module: %v", h)
	}
	if v, h := internal.Evaluate(f, Inv("ycor")); h != nil || !v.Equal(turtle.Number(10)) {
		t.Errorf("turtle did not move: %v (%v)", v, h)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	cases := map[string]string{
		"operator": "body:\n  - name: fd\n    args:\n      - expr: {lhs: {lhs: {lhs: {value: {lit: {number: 1}}}}, rhs: [{op: '%', expr: {lhs: {value: {lit: {number: 1}}}}}]}}\n",
		"value":    "body:\n  - name: fd\n    args:\n      - {}\n",
		"syntax":   "body: [\n",
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := turtle.UnmarshalProgram([]byte(c)); err == nil {
				t.Errorf("no error decoding %q", c)
			}
		})
	}
}
