// Package testutils provides utilities for testing turtle programs in Go.
package testutils

import (
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/coreext/arith"
	"github.com/zephyrtronium/turtle/coreext/console"
	"github.com/zephyrtronium/turtle/coreext/core"
	"github.com/zephyrtronium/turtle/coreext/graphics"
	"github.com/zephyrtronium/turtle/internal"
)

// Config returns a configuration for testing which logs to t at debug level.
func Config(t testing.TB) turtle.Config {
	cfg := turtle.DefaultConfig()
	l := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	cfg.Logger = &l
	return cfg
}

// Modules returns the modules loaded by Root: core, graphics, arith with a
// fixed seed, and console writing nowhere.
func Modules() []turtle.Module {
	return []turtle.Module{
		core.Module{},
		graphics.Module{},
		arith.Module{Seed: 1},
		console.Module{Out: io.Discard},
	}
}

// Root creates a root frame for testing holding the given procedures, with
// Modules loaded.
func Root(t testing.TB, procs ...turtle.Procedure) *turtle.Frame {
	t.Helper()
	return RootConfig(t, Config(t), procs...)
}

// RootConfig is like Root with a custom configuration.
func RootConfig(t testing.TB, cfg turtle.Config, procs ...turtle.Procedure) *turtle.Frame {
	t.Helper()
	f, h := internal.NewRoot(cfg, Procs(procs...), nil, Modules()...)
	if h != nil {
		t.Fatalf("could not create root frame: %v", h)
	}
	return f
}

// A ProgramTestCase is a test case containing a program and a predicate to
// check the result.
type ProgramTestCase struct {
	// Procedures are the program's top-level procedures.
	Procedures []turtle.Procedure
	// Body is run as statements before Value.
	Body []*turtle.Invocation
	// Value, if not nil, is evaluated as a value after Body completes, and its
	// result is passed to Pass.
	Value *turtle.Invocation
	// Pass is a predicate taking the result of running the program. If Pass
	// returns false, then the test fails.
	Pass func(result turtle.Bottom, h *turtle.Handoff) bool
}

// TestFunc returns a test function for the test case. Each test gets a new
// root frame from Root.
func (c ProgramTestCase) TestFunc(name string) func(*testing.T) {
	return func(t *testing.T) {
		f := Root(t, c.Procedures...)
		r, h := turtle.Nothing, internal.Run(f, c.Body)
		if h == nil && c.Value != nil {
			r, h = internal.Evaluate(f, c.Value)
		}
		if !c.Pass(r, h) {
			t.Errorf("%s produced wrong result; got %v (%v)", name, r, h)
		}
	}
}

// PassEqual returns a Pass function for a ProgramTestCase that predicates on
// equality with want. If a control transfer occurred, then the predicate
// returns false.
func PassEqual(want turtle.Bottom) func(turtle.Bottom, *turtle.Handoff) bool {
	return func(result turtle.Bottom, h *turtle.Handoff) bool {
		return h == nil && want.Equal(result)
	}
}

// PassNumber returns a Pass function for a ProgramTestCase that predicates on
// the result being the given number.
func PassNumber(want float64) func(turtle.Bottom, *turtle.Handoff) bool {
	return PassEqual(turtle.Number(want))
}

// PassError returns a Pass function for a ProgramTestCase that returns true
// iff the program failed with an error of the given kind.
func PassError(kind turtle.ErrorKind) func(turtle.Bottom, *turtle.Handoff) bool {
	return func(result turtle.Bottom, h *turtle.Handoff) bool {
		return h.Is(kind)
	}
}

// PassSignal returns a Pass function for a ProgramTestCase that returns true
// iff the program ended with the given control signal.
func PassSignal(want internal.Signal) func(turtle.Bottom, *turtle.Handoff) bool {
	return func(result turtle.Bottom, h *turtle.Handoff) bool {
		return h != nil && h.Signal == want
	}
}

// PassSuccess returns a Pass function for a ProgramTestCase that returns true
// iff no control transfer occurred.
func PassSuccess() func(turtle.Bottom, *turtle.Handoff) bool {
	return func(result turtle.Bottom, h *turtle.Handoff) bool {
		return h == nil
	}
}

// Procs collects procedures into a table keyed by their names.
func Procs(procs ...turtle.Procedure) map[string]turtle.Procedure {
	if len(procs) == 0 {
		return nil
	}
	m := make(map[string]turtle.Procedure, len(procs))
	for _, p := range procs {
		m[p.Name()] = p
	}
	return m
}

// Proc creates an interpreted procedure with no rest parameter or
// sub-procedures.
func Proc(name string, params []string, body ...*turtle.Invocation) *turtle.Interpreted {
	return turtle.NewInterpreted(name, params, false, body, nil)
}

// Inv creates an invocation.
func Inv(name string, args ...turtle.Value) *turtle.Invocation {
	return turtle.NewInvocation(name, args...)
}

// Num creates a numeric literal.
func Num(x float64) turtle.Value {
	return internal.Lit(turtle.Number(x))
}

// Str creates a string literal.
func Str(s string) turtle.Value {
	return internal.Lit(turtle.Text(s))
}

// Bool creates a boolean literal.
func Bool(b bool) turtle.Value {
	return internal.Lit(turtle.Boolean(b))
}

// Lit embeds a value.
func Lit(b turtle.Bottom) turtle.Value {
	return internal.Lit(b)
}

// Deref creates a read of a variable.
func Deref(name string) turtle.Value {
	return internal.Deref(name)
}

// Ref creates a reference to a variable.
func Ref(name string) turtle.Value {
	return internal.Ref(name)
}

// Call creates a call used as a value.
func Call(name string, args ...turtle.Value) turtle.Value {
	return internal.Call(turtle.NewInvocation(name, args...))
}

// Block creates a literal list of commands, as a bracketed block in source.
func Block(invs ...*turtle.Invocation) turtle.Value {
	cmds := make([]turtle.Bottom, len(invs))
	for i, inv := range invs {
		cmds[i] = turtle.Command(inv)
	}
	return internal.Lit(turtle.List(cmds...))
}

// Term is an operator with its right operand.
type Term struct {
	Op turtle.Operator
	V  turtle.Value
}

// Plus creates a + term.
func Plus(v turtle.Value) Term { return Term{turtle.OpAdd, v} }

// Minus creates a - term.
func Minus(v turtle.Value) Term { return Term{turtle.OpSub, v} }

// Times creates a * term.
func Times(v turtle.Value) Term { return Term{turtle.OpMul, v} }

// Over creates a / term.
func Over(v turtle.Value) Term { return Term{turtle.OpDiv, v} }

// Sum creates an additive expression. Operands which are themselves
// expressions without operators at the additive level are spliced in rather
// than parenthesized.
func Sum(lhs turtle.Value, terms ...Term) turtle.Value {
	e := &turtle.ArithmeticExpression{Lhs: mulOf(lhs)}
	for _, t := range terms {
		e.Rhs = append(e.Rhs, turtle.ArithmeticTerm{Op: t.Op, Expr: mulOf(t.V)})
	}
	return internal.Expr(&turtle.Expression{Lhs: e})
}

// Product creates a multiplicative expression.
func Product(lhs turtle.Value, terms ...Term) turtle.Value {
	e := &turtle.MultiplyingExpression{Lhs: signOf(lhs)}
	for _, t := range terms {
		e.Rhs = append(e.Rhs, turtle.MultiplyingTerm{Op: t.Op, Expr: signOf(t.V)})
	}
	return internal.Expr(&turtle.Expression{Lhs: &turtle.ArithmeticExpression{Lhs: e}})
}

// Compare creates a comparison.
func Compare(lhs turtle.Value, op turtle.Operator, rhs turtle.Value) turtle.Value {
	return internal.Expr(&turtle.Expression{Lhs: arithOf(lhs), Cmp: op, Rhs: arithOf(rhs)})
}

// Neg creates a negation.
func Neg(v turtle.Value) turtle.Value {
	s := &turtle.SignExpression{Negative: true, Value: v}
	return internal.Expr(&turtle.Expression{Lhs: &turtle.ArithmeticExpression{Lhs: &turtle.MultiplyingExpression{Lhs: s}}})
}

// Paren parenthesizes a value, so that it is kept as a nested expression.
func Paren(v turtle.Value) turtle.Value {
	return internal.Expr(internal.Single(v))
}

func arithOf(v turtle.Value) *turtle.ArithmeticExpression {
	if v.Kind == internal.ExpressionValue && v.Expr.Rhs == nil {
		return v.Expr.Lhs
	}
	return &turtle.ArithmeticExpression{Lhs: mulOf(v)}
}

func mulOf(v turtle.Value) *turtle.MultiplyingExpression {
	if v.Kind == internal.ExpressionValue && v.Expr.Rhs == nil && len(v.Expr.Lhs.Rhs) == 0 {
		return v.Expr.Lhs.Lhs
	}
	return &turtle.MultiplyingExpression{Lhs: signOf(v)}
}

func signOf(v turtle.Value) *turtle.SignExpression {
	if v.Kind == internal.ExpressionValue && v.Expr.Rhs == nil && len(v.Expr.Lhs.Rhs) == 0 && len(v.Expr.Lhs.Lhs.Rhs) == 0 {
		return v.Expr.Lhs.Lhs.Lhs
	}
	return &turtle.SignExpression{Value: v}
}
