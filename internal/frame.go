package internal

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Frame is one scope of execution: a procedure store and a variable store,
// chained to the frame that created it. Frames are created for the program
// root, for each procedure call, and for nested blocks that need their own
// variables.
//
// Parent links point only upward, so a frame is garbage once no invocation
// holds it.
type Frame struct {
	procs  *Store[Procedure]
	vars   *Store[Bottom]
	depth  int
	parent *Frame
	shared *shared
}

// shared is the state owned by a root frame and referenced by every frame
// descending from it.
type shared struct {
	registry *Registry
	cfg      Config
	log      zerolog.Logger
	id       uuid.UUID
	// loaded holds the names of modules already loaded into the root.
	loaded map[string]bool
}

// NewRoot creates a depth-zero frame holding the given procedures and
// variables, then loads each module in order.
func NewRoot(cfg Config, procs map[string]Procedure, vars map[string]Bottom, modules ...Module) (*Frame, *Handoff) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	id := uuid.New()
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("run", id.String()).Logger()
	}
	f := &Frame{
		procs: NewStore(nil, procs),
		vars:  NewStore(nil, vars),
		shared: &shared{
			registry: NewRegistry(),
			cfg:      cfg,
			log:      log,
			id:       id,
			loaded:   make(map[string]bool),
		},
	}
	for _, m := range modules {
		if h := LoadModule(f, m); h != nil {
			return nil, h
		}
	}
	return f, nil
}

// Child creates a frame below f. The child always has its own variable store,
// even if vars is empty, so that it is a distinct write target. It has its
// own procedure store only if procs is not empty; otherwise it shares f's.
// Fails with MaxDepthError if the child would be deeper than the configured
// maximum.
func (f *Frame) Child(procs map[string]Procedure, vars map[string]Bottom) (*Frame, *Handoff) {
	depth := f.depth + 1
	if limit := f.shared.cfg.MaxDepth; depth > limit {
		return nil, Raise(MaxDepthError, "frame depth would exceed %d", limit)
	}
	ps := f.procs
	if len(procs) > 0 {
		ps = NewStore(f.procs, procs)
	}
	c := &Frame{
		procs:  ps,
		vars:   NewStore(f.vars, vars),
		depth:  depth,
		parent: f,
		shared: f.shared,
	}
	f.shared.log.Trace().Int("depth", depth).Int("procedures", len(procs)).Msg("new frame")
	c.depthChanged()
	return c, nil
}

// depthChanged reports f's depth to the configured hook.
func (f *Frame) depthChanged() {
	if hook := f.shared.cfg.DepthHook; hook != nil {
		hook(f.depth)
	}
}

// Inject adds procedure bindings to f's local procedure store. If f shares its
// procedure store with its parent, the bindings are visible there as well.
func (f *Frame) Inject(procs map[string]Procedure) {
	f.procs.Merge(procs)
}

// Procedure looks up a procedure visible from f.
func (f *Frame) Procedure(name string) (Procedure, bool) {
	return f.procs.Get(name)
}

// Variable looks up a variable visible from f.
func (f *Frame) Variable(name string) (Bottom, bool) {
	return f.vars.Get(name)
}

// AllVariables returns a snapshot of every variable visible from f.
func (f *Frame) AllVariables() map[string]Bottom {
	return f.vars.Flatten()
}

// AllProcedures returns a snapshot of every procedure visible from f.
func (f *Frame) AllProcedures() map[string]Procedure {
	return f.procs.Flatten()
}

// Vars returns f's variable store.
func (f *Frame) Vars() *Store[Bottom] {
	return f.vars
}

// Procs returns f's procedure store.
func (f *Frame) Procs() *Store[Procedure] {
	return f.procs
}

// Depth returns the number of frames between f and the root.
func (f *Frame) Depth() int {
	return f.depth
}

// Parent returns the frame which created f, or nil for a root.
func (f *Frame) Parent() *Frame {
	return f.parent
}

// Root returns the root frame above f.
func (f *Frame) Root() *Frame {
	for f.parent != nil {
		f = f.parent
	}
	return f
}

// Registry returns the module state registry shared by all frames under the
// same root.
func (f *Frame) Registry() *Registry {
	return f.shared.registry
}

// Logger returns the interpreter's logger.
func (f *Frame) Logger() *zerolog.Logger {
	return &f.shared.log
}

// RunID returns the unique ID of the root frame, which tags its logs.
func (f *Frame) RunID() uuid.UUID {
	return f.shared.id
}

// Config returns the configuration of the interpreter.
func (f *Frame) Config() Config {
	return f.shared.cfg
}
