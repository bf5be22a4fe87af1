// Package coreext collects the standard modules.
package coreext

import (
	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/coreext/arith"
	"github.com/zephyrtronium/turtle/coreext/clock"
	"github.com/zephyrtronium/turtle/coreext/console"
	"github.com/zephyrtronium/turtle/coreext/core"
	"github.com/zephyrtronium/turtle/coreext/graphics"
	"github.com/zephyrtronium/turtle/coreext/text"
)

// Modules returns every standard module with its default settings, in load
// order.
func Modules() []turtle.Module {
	return []turtle.Module{
		core.Module{},
		graphics.Module{},
		arith.Module{},
		text.Module{},
		clock.Module{},
		console.Module{},
	}
}
