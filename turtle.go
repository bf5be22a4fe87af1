package turtle

import (
	"io"

	"github.com/zephyrtronium/turtle/internal"
)

// Bottom is a runtime value: a number, string, boolean, list, command, or
// reference. The zero Bottom is Nothing.
type Bottom = internal.Bottom

// Kind identifies the variant held by a Bottom.
type Kind = internal.Kind

// Value is a syntax-level value: an expression, a reference, a deref, a
// literal, or a call.
type Value = internal.Value

// Expression grammar nodes, from lowest to highest precedence.
type (
	Expression            = internal.Expression
	ArithmeticExpression  = internal.ArithmeticExpression
	ArithmeticTerm        = internal.ArithmeticTerm
	MultiplyingExpression = internal.MultiplyingExpression
	MultiplyingTerm       = internal.MultiplyingTerm
	SignExpression        = internal.SignExpression
	Operator              = internal.Operator
)

// An Invocation is a call of a procedure by name with unevaluated arguments.
type Invocation = internal.Invocation

// Procedure is a callable procedure: *Interpreted, *Host, or *Placeholder.
type Procedure = internal.Procedure

// An Interpreted procedure is a body of invocations defined by a program.
type Interpreted = internal.Interpreted

// A Host procedure is implemented in Go.
type Host = internal.Host

// HostFn is the native implementation of a host procedure.
type HostFn = internal.HostFn

// A Placeholder stands in for a host procedure whose implementation is
// missing.
type Placeholder = internal.Placeholder

// Frame is one scope of execution.
type Frame = internal.Frame

// Handoff is a control transfer in flight: a stop, an output, or an error.
type Handoff = internal.Handoff

// Error is a runtime error as reported to the outermost caller.
type Error = internal.Error

// ErrorKind classifies runtime errors.
type ErrorKind = internal.ErrorKind

// Module is a bundle of host procedures, possibly with private state.
type Module = internal.Module

// Program is a parsed program: top-level statements and procedures.
type Program = internal.Program

// Config controls an interpreter.
type Config = internal.Config

// Bottom kinds.
const (
	NoKind        = internal.NoKind
	NumberKind    = internal.NumberKind
	StringKind    = internal.StringKind
	BooleanKind   = internal.BooleanKind
	ListKind      = internal.ListKind
	CommandKind   = internal.CommandKind
	ReferenceKind = internal.ReferenceKind
)

// Runtime error kinds.
const (
	TypeError      = internal.TypeError
	MissingSymbol  = internal.MissingSymbol
	ParameterError = internal.ParameterError
	MaxDepthError  = internal.MaxDepthError
	NoOutputError  = internal.NoOutputError
	ModuleError    = internal.ModuleError
)

// Operators.
const (
	OpAdd     = internal.OpAdd
	OpSub     = internal.OpSub
	OpMul     = internal.OpMul
	OpDiv     = internal.OpDiv
	OpLess    = internal.OpLess
	OpGreater = internal.OpGreater
	OpEqual   = internal.OpEqual
)

// DefaultMaxDepth is the frame depth ceiling used when none is configured.
const DefaultMaxDepth = internal.DefaultMaxDepth

// Nothing is the zero Bottom.
var Nothing = internal.Nothing

// Number creates a numeric Bottom.
func Number(x float64) Bottom {
	return internal.Number(x)
}

// Text creates a string Bottom.
func Text(s string) Bottom {
	return internal.Text(s)
}

// Boolean creates a boolean Bottom.
func Boolean(b bool) Bottom {
	return internal.Boolean(b)
}

// List creates a list Bottom.
func List(items ...Bottom) Bottom {
	return internal.List(items...)
}

// Command creates a Bottom holding a deferred invocation.
func Command(inv *Invocation) Bottom {
	return internal.Command(inv)
}

// NewInvocation creates an invocation.
func NewInvocation(name string, args ...Value) *Invocation {
	return internal.NewInvocation(name, args...)
}

// NewInterpreted creates an interpreted procedure.
func NewInterpreted(name string, params []string, rest bool, body []*Invocation, procs map[string]Procedure) *Interpreted {
	return internal.NewInterpreted(name, params, rest, body, procs)
}

// NewHost creates a host procedure.
func NewHost(name string, params []string, rest bool, fn HostFn) *Host {
	return internal.NewHost(name, params, rest, fn)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return internal.DefaultConfig()
}

// LoadConfig decodes a YAML configuration on top of the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	return internal.LoadConfig(r)
}

// MarshalProgram encodes a program in its persisted YAML form.
func MarshalProgram(p *Program) ([]byte, error) {
	return internal.MarshalProgram(p)
}

// UnmarshalProgram decodes a program from its persisted YAML form. Host
// procedures in it load as placeholders.
func UnmarshalProgram(data []byte) (*Program, error) {
	return internal.UnmarshalProgram(data)
}

// Interpreter runs one program in its own frame tree.
type Interpreter struct {
	root *Frame
	prog *Program
}

// New creates an interpreter for prog with the given modules loaded into its
// root frame. prog may be nil for an interpreter used only through Eval.
func New(cfg Config, prog *Program, modules ...Module) (*Interpreter, error) {
	if prog == nil {
		prog = &Program{}
	}
	root, h := internal.NewRoot(cfg, prog.Procedures, nil, modules...)
	if err := h.Err(); err != nil {
		return nil, err
	}
	return &Interpreter{root: root, prog: prog}, nil
}

// Run executes the program's top-level statements. A stop or output at the
// top level ends the program without error. Any runtime error is returned as
// an *Error.
func (in *Interpreter) Run() error {
	h := internal.Run(in.root, in.prog.Body)
	in.root.Logger().Debug().Str("result", h.String()).Msg("program finished")
	return h.Err()
}

// Exec runs a single invocation at the top level as a statement.
func (in *Interpreter) Exec(inv *Invocation) error {
	_, h := internal.Invoke(in.root, inv, false)
	return h.Err()
}

// Eval calls inv at the top level as a value.
func (in *Interpreter) Eval(inv *Invocation) (Bottom, error) {
	v, h := internal.Evaluate(in.root, inv)
	if err := h.Err(); err != nil {
		return Nothing, err
	}
	return v, nil
}

// Optimize folds constant arithmetic in every procedure of the program and
// returns the number of expressions rewritten.
func (in *Interpreter) Optimize() int {
	return internal.OptimizeAll(in.root)
}

// Load installs another module into the interpreter.
func (in *Interpreter) Load(m Module) error {
	return internal.LoadModule(in.root, m).Err()
}

// Root returns the interpreter's root frame.
func (in *Interpreter) Root() *Frame {
	return in.root
}
