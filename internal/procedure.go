package internal

import (
	"fmt"
	"sync/atomic"
)

// Procedure is a callable procedure. The set of implementations is closed:
// *Interpreted, *Host, and *Placeholder.
type Procedure interface {
	// Name returns the procedure's name.
	Name() string
	// Params returns the ordered formal parameter names. If HasRest is true,
	// the last name receives a list of all surplus arguments.
	Params() []string
	// Procedures returns the sub-procedures visible only inside the
	// procedure.
	Procedures() map[string]Procedure
	// HasRest reports whether the procedure is variadic.
	HasRest() bool

	procedure()
}

// An Interpreted procedure is a body of invocations defined by a program.
type Interpreted struct {
	// Body is the ordered list of invocations the procedure performs. The
	// optimizer rewrites its arguments in place.
	Body []*Invocation

	name   string
	params []string
	rest   bool
	procs  map[string]Procedure
	id     uintptr
}

// procedureIDs is the source of unique interpreted procedure IDs.
var procedureIDs uintptr

// NewInterpreted creates an interpreted procedure. rest is ignored if there
// are no parameters.
func NewInterpreted(name string, params []string, rest bool, body []*Invocation, procs map[string]Procedure) *Interpreted {
	return &Interpreted{
		Body:   body,
		name:   name,
		params: params,
		rest:   rest && len(params) > 0,
		procs:  procs,
		id:     atomic.AddUintptr(&procedureIDs, 1),
	}
}

func (p *Interpreted) Name() string                     { return p.name }
func (p *Interpreted) Params() []string                 { return p.params }
func (p *Interpreted) Procedures() map[string]Procedure { return p.procs }
func (p *Interpreted) HasRest() bool                    { return p.rest }
func (p *Interpreted) procedure()                       {}

// UniqueID returns the procedure's unique ID.
func (p *Interpreted) UniqueID() uintptr {
	return p.id
}

// HostFn is the native implementation of a host procedure. It receives the
// calling frame and the evaluated arguments. A result other than Nothing is
// the procedure's output.
type HostFn func(f *Frame, args []Bottom) (Bottom, *Handoff)

// A Host procedure is implemented in Go, typically by a module.
type Host struct {
	name   string
	params []string
	rest   bool
	fn     HostFn
}

// NewHost creates a host procedure. rest is ignored if there are no
// parameters.
func NewHost(name string, params []string, rest bool, fn HostFn) *Host {
	return &Host{name: name, params: params, rest: rest && len(params) > 0, fn: fn}
}

func (p *Host) Name() string                     { return p.name }
func (p *Host) Params() []string                 { return p.params }
func (p *Host) Procedures() map[string]Procedure { return nil }
func (p *Host) HasRest() bool                    { return p.rest }
func (p *Host) procedure()                       {}

// A Placeholder stands in for a host procedure whose implementation is not
// available, e.g. after loading a persisted program. Calling it always fails.
type Placeholder struct {
	name   string
	params []string
	rest   bool
}

// NewPlaceholder creates a placeholder procedure.
func NewPlaceholder(name string, params []string, rest bool) *Placeholder {
	return &Placeholder{name: name, params: params, rest: rest && len(params) > 0}
}

func (p *Placeholder) Name() string                     { return p.name }
func (p *Placeholder) Params() []string                 { return p.params }
func (p *Placeholder) Procedures() map[string]Procedure { return nil }
func (p *Placeholder) HasRest() bool                    { return p.rest }
func (p *Placeholder) procedure()                       {}

// execute runs p in f, where the arguments are already bound. own is true if
// f was created for this call, making it a procedure boundary.
func execute(p Procedure, f *Frame, args []Bottom, own bool) (Bottom, *Handoff) {
	switch p := p.(type) {
	case *Interpreted:
		return p.run(f, own)
	case *Host:
		return p.fn(f, args)
	case *Placeholder:
		return Nothing, Raise(ModuleError, "%s has no implementation; load the module which provides it", p.name)
	default:
		panic(fmt.Errorf("turtle: invalid procedure type %T", p))
	}
}

// run interprets the body. A trailing call of p itself does not recurse:
// its arguments are bound into f and execution restarts at the top of the
// body. At a procedure boundary, a stop ends the procedure and an output
// becomes its result; otherwise both propagate.
func (p *Interpreted) run(f *Frame, own bool) (Bottom, *Handoff) {
	last := len(p.Body) - 1
	for ip := 0; ip <= last; ip++ {
		inv := p.Body[ip]
		if ip == last && p.isSelfCall(f, inv) {
			args, h := evaluateArgs(f, p, inv)
			if h != nil {
				return Nothing, h
			}
			f.vars.Merge(bind(p, args))
			f.shared.log.Trace().Str("procedure", p.name).Int("depth", f.depth).Msg("tail call")
			ip = -1
			continue
		}
		_, h := Invoke(f, inv, false)
		if h == nil {
			continue
		}
		if own {
			switch h.Signal {
			case StopSignal:
				return Nothing, nil
			case OutputSignal:
				return h.Value, nil
			}
		}
		return Nothing, h
	}
	return Nothing, nil
}

// isSelfCall returns true if inv calls p.
func (p *Interpreted) isSelfCall(f *Frame, inv *Invocation) bool {
	if inv.Name != p.name {
		return false
	}
	q, ok := f.procs.Get(inv.Name)
	return ok && q == Procedure(p)
}
