package internal

import (
	"fmt"
	"strings"
)

// An Invocation is a call of a procedure by name with unevaluated arguments.
type Invocation struct {
	Name string  `yaml:"name"`
	Args []Value `yaml:"args,omitempty"`
}

// NewInvocation creates an invocation.
func NewInvocation(name string, args ...Value) *Invocation {
	return &Invocation{Name: name, Args: args}
}

// String formats the invocation as source-like text.
func (inv *Invocation) String() string {
	if inv == nil {
		return "<nil invocation>"
	}
	var b strings.Builder
	b.WriteString(inv.Name)
	for _, arg := range inv.Args {
		b.WriteByte(' ')
		b.WriteString(arg.String())
	}
	return b.String()
}

// Invoke resolves and calls inv from the frame f. Arguments are evaluated in
// f from left to right before binding. Interpreted procedures run in a new
// child frame, unless reuse is true, in which case their sub-procedures and
// arguments are placed directly into f. Host procedures run in f.
//
// The result is the callee's output, or Nothing if it produced none.
func Invoke(f *Frame, inv *Invocation, reuse bool) (Bottom, *Handoff) {
	p, ok := f.procs.Get(inv.Name)
	if !ok {
		return Nothing, Raise(MissingSymbol, "I don't know how to %s", inv.Name)
	}
	args, h := evaluateArgs(f, p, inv)
	if h != nil {
		return Nothing, h
	}
	return call(f, p, args, reuse)
}

// Apply calls p with already evaluated arguments, following the same rules
// as Invoke.
func Apply(f *Frame, p Procedure, args []Bottom, reuse bool) (Bottom, *Handoff) {
	if h := checkArity(p, len(args)); h != nil {
		return Nothing, h
	}
	return call(f, p, args, reuse)
}

// Evaluate calls inv as a value. If the callee never produces an output, the
// result is a NoOutputError.
func Evaluate(f *Frame, inv *Invocation) (Bottom, *Handoff) {
	v, h := Invoke(f, inv, false)
	if h != nil {
		return Nothing, h
	}
	if v.IsNothing() {
		return Nothing, Raise(NoOutputError, "%s didn't output to anything", inv.Name)
	}
	return v, nil
}

// Run performs each invocation of body in f as a statement, discarding
// outputs. Control transfers stop the sequence and are returned.
func Run(f *Frame, body []*Invocation) *Handoff {
	for _, inv := range body {
		if _, h := Invoke(f, inv, false); h != nil {
			return h
		}
	}
	return nil
}

// RunCommand executes a command value in f. A command runs its deferred
// invocation with the given frame reuse; a list of commands runs each
// element in order as a statement. The result is the last output, if any.
func RunCommand(f *Frame, b Bottom, reuse bool) (Bottom, *Handoff) {
	switch b.kind {
	case CommandKind:
		return Invoke(f, b.cmd, reuse)
	case ListKind:
		r := Nothing
		for _, x := range b.list {
			v, h := RunCommand(f, x, false)
			if h != nil {
				return Nothing, h
			}
			r = v
		}
		return r, nil
	default:
		return Nothing, Raise(TypeError, "%v is not a command", b.kind)
	}
}

// call binds args to p's parameters and executes p.
func call(f *Frame, p Procedure, args []Bottom, reuse bool) (Bottom, *Handoff) {
	f.shared.log.Trace().Str("procedure", p.Name()).Int("args", len(args)).Bool("reuse", reuse).Msg("call")
	if _, ok := p.(*Interpreted); !ok {
		return execute(p, f, args, false)
	}
	bound := bind(p, args)
	if reuse {
		f.Inject(p.Procedures())
		f.vars.Merge(bound)
		return execute(p, f, args, false)
	}
	c, h := f.Child(p.Procedures(), bound)
	if h != nil {
		return Nothing, h
	}
	v, h := execute(p, c, args, true)
	f.depthChanged()
	return v, h
}

// evaluateArgs checks the arity of inv against p and evaluates its arguments.
func evaluateArgs(f *Frame, p Procedure, inv *Invocation) ([]Bottom, *Handoff) {
	if h := checkArity(p, len(inv.Args)); h != nil {
		return nil, h
	}
	args := make([]Bottom, len(inv.Args))
	for i, arg := range inv.Args {
		v, h := arg.Evaluate(f)
		if h != nil {
			return nil, h
		}
		args[i] = v
	}
	return args, nil
}

// checkArity validates an argument count. Variadic procedures accept any
// count of at least one less than their parameter count.
func checkArity(p Procedure, n int) *Handoff {
	want := len(p.Params())
	if p.HasRest() {
		if n >= want-1 {
			return nil
		}
		return Raise(ParameterError, "%s needs at least %d inputs (more are accepted), got %d", p.Name(), want-1, n)
	}
	if n != want {
		return Raise(ParameterError, "%s needs %d inputs, got %d", p.Name(), want, n)
	}
	return nil
}

// bind maps p's parameter names to args positionally. Surplus arguments of a
// variadic procedure are collected into a list bound to the last name.
func bind(p Procedure, args []Bottom) map[string]Bottom {
	params := p.Params()
	m := make(map[string]Bottom, len(params))
	if !p.HasRest() {
		for i, name := range params {
			m[name] = args[i]
		}
		return m
	}
	last := len(params) - 1
	for i, name := range params[:last] {
		m[name] = args[i]
	}
	rest := make([]Bottom, len(args)-last)
	copy(rest, args[last:])
	m[params[last]] = List(rest...)
	return m
}

// ArgError is a helper for host procedures that reports an argument of the
// wrong kind.
func ArgError(name string, n int, want Kind, got Bottom) *Handoff {
	return Raise(TypeError, "%s doesn't like %s as input %d (want %v)", name, describe(got), n+1, want)
}

func describe(b Bottom) string {
	if b.kind == StringKind {
		return fmt.Sprintf("%q", b.str)
	}
	return b.String()
}
