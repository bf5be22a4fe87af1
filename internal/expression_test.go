package internal_test

import (
	"testing"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
	. "github.com/zephyrtronium/turtle/testutils"
)

// TestEvaluate tests evaluation of expression trees.
func TestEvaluate(t *testing.T) {
	f := Root(t)
	f.Vars().Set("x", turtle.Number(4))
	f.Vars().Set("s", turtle.Text("word"))
	f.Vars().Set("b", turtle.Boolean(true))
	f.Vars().Set("l", turtle.List(turtle.Number(1)))
	cases := map[string]struct {
		v    turtle.Value
		want turtle.Bottom
		kind turtle.ErrorKind
	}{
		"literal":         {Num(1), turtle.Number(1), 0},
		"deref":           {Deref("x"), turtle.Number(4), 0},
		"missing":         {Deref("y"), turtle.Nothing, turtle.MissingSymbol},
		"sum":             {Sum(Num(1), Plus(Num(2)), Plus(Num(3))), turtle.Number(6), 0},
		"left assoc sub":  {Sum(Num(10), Minus(Num(4)), Minus(Num(3))), turtle.Number(3), 0},
		"left assoc div":  {Product(Num(24), Over(Num(4)), Over(Num(2))), turtle.Number(3), 0},
		"precedence":      {Sum(Num(1), Plus(Product(Num(2), Times(Num(3))))), turtle.Number(7), 0},
		"parens":          {Product(Paren(Sum(Num(1), Plus(Num(2)))), Times(Num(3))), turtle.Number(9), 0},
		"variables":       {Product(Deref("x"), Times(Deref("x"))), turtle.Number(16), 0},
		"negate":          {Neg(Deref("x")), turtle.Number(-4), 0},
		"string sum":      {Sum(Str("a"), Plus(Num(1))), turtle.Text("a"), 0},
		"string product":  {Product(Deref("s"), Times(Num(2)), Over(Num(0))), turtle.Text("word"), 0},
		"string skips":    {Sum(Str("a"), Plus(Deref("nope"))), turtle.Text("a"), 0},
		"string rhs":      {Sum(Num(1), Plus(Str("a"))), turtle.Nothing, turtle.TypeError},
		"boolean sum":     {Sum(Deref("b"), Plus(Num(1))), turtle.Nothing, turtle.TypeError},
		"list product":    {Product(Deref("l"), Times(Num(1))), turtle.Nothing, turtle.TypeError},
		"lone boolean":    {Deref("b"), turtle.Boolean(true), 0},
		"less":            {Compare(Num(1), turtle.OpLess, Num(2)), turtle.Boolean(true), 0},
		"greater":         {Compare(Num(1), turtle.OpGreater, Num(2)), turtle.Boolean(false), 0},
		"equal":           {Compare(Sum(Num(1), Plus(Num(1))), turtle.OpEqual, Num(2)), turtle.Boolean(true), 0},
		"boolean equal":   {Compare(Deref("b"), turtle.OpEqual, Bool(true)), turtle.Boolean(true), 0},
		"boolean less":    {Compare(Bool(false), turtle.OpLess, Bool(true)), turtle.Nothing, turtle.TypeError},
		"boolean greater": {Compare(Bool(false), turtle.OpGreater, Bool(true)), turtle.Nothing, turtle.TypeError},
		"list equal":      {Compare(Deref("l"), turtle.OpEqual, Deref("l")), turtle.Nothing, turtle.TypeError},
		"mixed equal":     {Compare(Num(1), turtle.OpEqual, Bool(true)), turtle.Nothing, turtle.TypeError},
		"string equal":    {Compare(Str("a"), turtle.OpEqual, Str("a")), turtle.Nothing, turtle.TypeError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			r, h := c.v.Evaluate(f)
			if c.kind != 0 {
				if !h.Is(c.kind) {
					t.Errorf("%v: want %v, have %v (%v)", c.v, c.kind, r, h)
				}
				return
			}
			if h != nil || !r.Equal(c.want) {
				t.Errorf("%v: want %v, have %v (%v)", c.v, c.want, r, h)
			}
		})
	}
}

// TestNegateNonNumber pins that negating anything but a number passes the
// value through unchanged rather than failing.
func TestNegateNonNumber(t *testing.T) {
	f := Root(t)
	cases := map[string]turtle.Bottom{
		"string":  turtle.Text("abc"),
		"boolean": turtle.Boolean(true),
		"list":    turtle.List(turtle.Number(1)),
		"command": turtle.Command(Inv("fd", Num(1))),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			r, h := Neg(Lit(b)).Evaluate(f)
			if h != nil || !r.Equal(b) {
				t.Errorf("negating %v: have %v (%v)", b, r, h)
			}
		})
	}
}

// TestFoldingMatchesFloat tests that evaluation folds left to right exactly
// as float64 arithmetic does.
func TestFoldingMatchesFloat(t *testing.T) {
	f := Root(t)
	xs := []float64{0.1, 0.2, 0.3, 1e16, -1, 3}
	for _, a := range xs {
		for _, b := range xs {
			for _, c := range xs {
				r, h := Sum(Num(a), Plus(Num(b)), Minus(Num(c))).Evaluate(f)
				if h != nil || !r.Equal(turtle.Number(a+b-c)) {
					t.Errorf("%v + %v - %v: want %v, have %v (%v)", a, b, c, a+b-c, r, h)
				}
				r, h = Product(Num(a), Over(Num(b)), Times(Num(c))).Evaluate(f)
				if h != nil || !r.Equal(turtle.Number(a/b*c)) {
					t.Errorf("%v / %v * %v: want %v, have %v (%v)", a, b, c, a/b*c, r, h)
				}
			}
		}
	}
}

func TestReferenceValue(t *testing.T) {
	f := Root(t)
	f.Vars().Set("x", turtle.Number(1))
	c, h := f.Child(nil, nil)
	if h != nil {
		t.Fatal(h)
	}
	r, h := Ref("x").Evaluate(c)
	if h != nil {
		t.Fatal(h)
	}
	name, scope, ok := r.AsReference()
	if !ok || name != "x" || scope != f.Vars() {
		t.Errorf("reference to outer variable captured %p, want %p", scope, f.Vars())
	}
	r, h = Ref("y").Evaluate(c)
	if h != nil {
		t.Fatal(h)
	}
	if _, scope, _ := r.AsReference(); scope != c.Vars() {
		t.Errorf("reference to new variable captured %p, want %p", scope, c.Vars())
	}
}

func TestValueString(t *testing.T) {
	cases := map[string]struct {
		v    turtle.Value
		want string
	}{
		"sum":     {Sum(Num(1), Plus(Product(Num(2), Times(Num(3))))), "1 + 2 * 3"},
		"parens":  {Product(Paren(Sum(Num(1), Plus(Num(2)))), Times(Num(3))), "(1 + 2) * 3"},
		"deref":   {Sum(Deref("x"), Minus(Num(1))), ":x - 1"},
		"ref":     {Ref("x"), `"x`},
		"string":  {Str("x"), `"x`},
		"call":    {Call("double", Num(21)), "(double 21)"},
		"compare": {Compare(Deref("n"), turtle.OpEqual, Num(0)), ":n = 0"},
		"neg":     {Neg(Deref("x")), "-:x"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if have := c.v.String(); have != c.want {
				t.Errorf("want %q, have %q", c.want, have)
			}
		})
	}
	if k := internal.ValueKind(99).String(); k != "ValueKind(99)" {
		t.Errorf("wrong invalid kind name %q", k)
	}
}
