// Package text provides case mapping of words.
package text

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
)

// Module is the text module. Tag selects the language whose casing rules
// apply; the zero Tag is language.Und.
type Module struct {
	Tag language.Tag
}

// Name returns "text".
func (Module) Name() string {
	return "text"
}

// Procedures returns the text procedures.
func (m Module) Procedures() map[string]turtle.Procedure {
	return map[string]turtle.Procedure{
		"uppercase": caser("uppercase", cases.Upper(m.Tag)),
		"lowercase": caser("lowercase", cases.Lower(m.Tag)),
		"titlecase": caser("titlecase", cases.Title(m.Tag)),
	}
}

// caser creates a host procedure mapping the case of a word. A cases.Caser
// is stateful, so each call resets it.
func caser(name string, c cases.Caser) *turtle.Host {
	return turtle.NewHost(name, []string{"word"}, false, func(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
		s, h := internal.StringArg(name, args, 0)
		if h != nil {
			return turtle.Nothing, h
		}
		c.Reset()
		return turtle.Text(c.String(s)), nil
	})
}
