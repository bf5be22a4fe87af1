package text_test

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/coreext/text"
	"github.com/zephyrtronium/turtle/internal"
	. "github.com/zephyrtronium/turtle/testutils"
)

func TestCase(t *testing.T) {
	cases := map[string]struct {
		tag  language.Tag
		inv  *turtle.Invocation
		want turtle.Bottom
		kind turtle.ErrorKind
	}{
		"upper":        {language.Und, Inv("uppercase", Str("abc")), turtle.Text("ABC"), 0},
		"lower":        {language.Und, Inv("lowercase", Str("ÀBC")), turtle.Text("àbc"), 0},
		"title":        {language.Und, Inv("titlecase", Str("hello world")), turtle.Text("Hello World"), 0},
		"turkish":      {language.Turkish, Inv("uppercase", Str("i")), turtle.Text("İ"), 0},
		"upper number": {language.Und, Inv("uppercase", Num(1)), turtle.Nothing, turtle.TypeError},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			f, h := internal.NewRoot(Config(t), nil, nil, text.Module{Tag: c.tag})
			if h != nil {
				t.Fatal(h)
			}
			r, h := internal.Evaluate(f, c.inv)
			if c.kind != 0 {
				if !h.Is(c.kind) {
					t.Errorf("want %v, have %v (%v)", c.kind, r, h)
				}
				return
			}
			if h != nil || !r.Equal(c.want) {
				t.Errorf("want %v, have %v (%v)", c.want, r, h)
			}
		})
	}
}

// TestRepeatedUse tests that the case mappers are reusable.
func TestRepeatedUse(t *testing.T) {
	f, h := internal.NewRoot(Config(t), nil, nil, text.Module{})
	if h != nil {
		t.Fatal(h)
	}
	for _, s := range []string{"one two", "three", "four five six"} {
		r, h := internal.Evaluate(f, Inv("titlecase", Str(s)))
		if h != nil {
			t.Fatal(h)
		}
		u, h := internal.Evaluate(f, Inv("uppercase", Lit(r)))
		if h != nil {
			t.Fatal(h)
		}
		l, h := internal.Evaluate(f, Inv("lowercase", Lit(u)))
		if h != nil || !l.Equal(turtle.Text(s)) {
			t.Errorf("%q round trip gave %v (%v)", s, l, h)
		}
	}
}
