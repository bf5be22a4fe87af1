// Package arith provides numeric procedures. Angles are in degrees.
package arith

import (
	"math"
	"math/rand"
	"time"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
)

// RandKey addresses the random source used by random.
var RandKey = internal.NewKey[*rand.Rand]("github.com/zephyrtronium/turtle/coreext/arith")

// Module is the numeric module. Its state is the random source for random.
type Module struct {
	// Seed seeds the random source. If it is zero, the source is seeded from
	// the time at which the module is loaded.
	Seed int64
}

// Name returns "arith".
func (Module) Name() string {
	return "arith"
}

// Init allocates the module's random source.
func (m Module) Init(root *turtle.Frame) *turtle.Handoff {
	seed := m.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	internal.Put(root.Registry(), RandKey, rand.New(rand.NewSource(seed)))
	return nil
}

// Procedures returns the numeric procedures.
func (Module) Procedures() map[string]turtle.Procedure {
	return map[string]turtle.Procedure{
		"sqrt":      unary("sqrt", sqrt),
		"sin":       unary("sin", func(x float64) (float64, bool) { return math.Sin(x * math.Pi / 180), true }),
		"cos":       unary("cos", func(x float64) (float64, bool) { return math.Cos(x * math.Pi / 180), true }),
		"arctan":    unary("arctan", func(x float64) (float64, bool) { return math.Atan(x) * 180 / math.Pi, true }),
		"abs":       unary("abs", func(x float64) (float64, bool) { return math.Abs(x), true }),
		"int":       unary("int", func(x float64) (float64, bool) { return math.Trunc(x), true }),
		"round":     unary("round", func(x float64) (float64, bool) { return math.Round(x), true }),
		"minus":     unary("minus", func(x float64) (float64, bool) { return -x, true }),
		"remainder": turtle.NewHost("remainder", []string{"a", "b"}, false, remainder),
		"power":     turtle.NewHost("power", []string{"a", "b"}, false, power),
		"pi":        turtle.NewHost("pi", nil, false, pi),
		"random":    turtle.NewHost("random", []string{"n"}, false, random),
	}
}

// unary creates a host procedure applying fn to one number. If fn reports
// false, the input was out of its domain.
func unary(name string, fn func(float64) (float64, bool)) *turtle.Host {
	return turtle.NewHost(name, []string{"x"}, false, func(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
		x, h := internal.NumberArg(name, args, 0)
		if h != nil {
			return turtle.Nothing, h
		}
		r, ok := fn(x)
		if !ok {
			return turtle.Nothing, internal.Raise(turtle.ModuleError, "%s doesn't like %v as input", name, x)
		}
		return turtle.Number(r), nil
	})
}

func sqrt(x float64) (float64, bool) {
	if x < 0 {
		return 0, false
	}
	return math.Sqrt(x), true
}

// remainder is an arith procedure.
//
// remainder outputs the remainder of dividing a by b, with the sign of a.
func remainder(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	a, h := internal.NumberArg("remainder", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	b, h := internal.NumberArg("remainder", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	if b == 0 {
		return turtle.Nothing, internal.Raise(turtle.ModuleError, "remainder doesn't like 0 as input 2")
	}
	return turtle.Number(math.Mod(a, b)), nil
}

func power(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	a, h := internal.NumberArg("power", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	b, h := internal.NumberArg("power", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Number(math.Pow(a, b)), nil
}

func pi(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return turtle.Number(math.Pi), nil
}

// random is an arith procedure.
//
// random outputs a random integer at least 0 and less than n.
func random(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	x, h := internal.NumberArg("random", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	n := int64(x)
	if float64(n) != x || n <= 0 {
		return turtle.Nothing, internal.Raise(turtle.ModuleError, "random doesn't like %v as input", x)
	}
	r, h := internal.State(f, RandKey)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Number(float64(r.Int63n(n))), nil
}
