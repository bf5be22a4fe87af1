package internal

// Module is a bundle of host procedures, possibly with private state.
//
// Modules are loaded into the root of a frame tree, so their procedures are
// visible everywhere. A module which needs state implements Initializer and
// allocates it in the root's Registry under a Key private to the module.
type Module interface {
	// Name returns the name of the module. A module name is loaded at most
	// once per root.
	Name() string
	// Procedures returns the procedures the module provides.
	Procedures() map[string]Procedure
}

// Initializer is implemented by modules that need to run code when loaded.
type Initializer interface {
	// Init is called once with the root frame after the module's procedures
	// are installed.
	Init(root *Frame) *Handoff
}

// LoadModule installs m into the root of f's tree and runs its initializer.
// A module procedure replaces a placeholder of the same name but never a
// procedure the program defined. Loading a module whose name is already
// loaded does nothing. A module counts as loaded only once its initializer
// succeeds, so a failed load may be retried.
func LoadModule(f *Frame, m Module) *Handoff {
	root := f.Root()
	name := m.Name()
	if root.shared.loaded[name] {
		return nil
	}
	procs := m.Procedures()
	n := 0
	for k, p := range procs {
		// Program procedures shadow module procedures. Placeholders exist
		// only to be replaced.
		if old, ok := root.procs.GetLocal(k); ok {
			if _, ok := old.(*Placeholder); !ok {
				continue
			}
		}
		root.procs.SetLocal(k, p)
		n++
	}
	root.shared.log.Debug().Str("module", name).Int("procedures", n).Msg("load module")
	if init, ok := m.(Initializer); ok {
		if h := init.Init(root); h != nil {
			return h
		}
	}
	root.shared.loaded[name] = true
	return nil
}

// Modules returns the names of modules loaded into f's tree.
func (f *Frame) Modules() []string {
	names := make([]string, 0, len(f.shared.loaded))
	for name := range f.shared.loaded {
		names = append(names, name)
	}
	return names
}

// Registry holds module state. Each slot is addressed by a Key whose type
// parameter fixes the type stored there.
//
// A Registry is not synchronized; it belongs to the goroutine running its
// interpreter.
type Registry struct {
	slots map[string]interface{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[string]interface{})}
}

// Key addresses a Registry slot holding a T.
type Key[T any] struct {
	name string
}

// NewKey creates a key. Modules should use their import path or another
// unique string as the name.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// String returns the key's name.
func (k Key[T]) String() string {
	return k.name
}

// Put stores v under k.
func Put[T any](r *Registry, k Key[T], v T) {
	r.slots[k.name] = v
}

// Lookup retrieves the value under k. If the slot is empty or holds a value of
// a different type, the result is the zero T and false.
func Lookup[T any](r *Registry, k Key[T]) (T, bool) {
	v, ok := r.slots[k.name].(T)
	return v, ok
}

// Remove empties the slot under k.
func Remove[T any](r *Registry, k Key[T]) {
	delete(r.slots, k.name)
}

// State retrieves module state for a host procedure, reporting a ModuleError
// if it is absent.
func State[T any](f *Frame, k Key[T]) (T, *Handoff) {
	v, ok := Lookup(f.shared.registry, k)
	if !ok {
		return v, Raise(ModuleError, "no state for module %s; is it loaded?", k.name)
	}
	return v, nil
}
