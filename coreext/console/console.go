// Package console provides procedures which write text for the user.
package console

import (
	"io"
	"os"
	"strings"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
)

// WriterKey addresses the module's output in an interpreter's registry.
var WriterKey = internal.NewKey[io.Writer]("github.com/zephyrtronium/turtle/coreext/console")

// Module is the console module.
type Module struct {
	// Out receives printed text. If nil, it is os.Stdout.
	Out io.Writer
}

// Name returns "console".
func (Module) Name() string {
	return "console"
}

// Init installs the module's output.
func (m Module) Init(root *turtle.Frame) *turtle.Handoff {
	w := m.Out
	if w == nil {
		w = os.Stdout
	}
	internal.Put(root.Registry(), WriterKey, w)
	return nil
}

// Procedures returns the console procedures.
func (Module) Procedures() map[string]turtle.Procedure {
	procs := map[string]turtle.Procedure{
		"print": turtle.NewHost("print", []string{"things"}, true, printFn),
		"show":  turtle.NewHost("show", []string{"thing"}, false, show),
		"type":  turtle.NewHost("type", []string{"things"}, true, typeFn),
	}
	procs["pr"] = procs["print"]
	return procs
}

// write writes the inputs separated by spaces, then end.
func write(f *turtle.Frame, name string, args []turtle.Bottom, outer bool, end string) (turtle.Bottom, *turtle.Handoff) {
	w, h := internal.State(f, WriterKey)
	if h != nil {
		return turtle.Nothing, h
	}
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = text(arg, outer)
	}
	if _, err := io.WriteString(w, strings.Join(parts, " ")+end); err != nil {
		return turtle.Nothing, internal.Raise(turtle.ModuleError, "%s: %v", name, err)
	}
	return turtle.Nothing, nil
}

// text formats a value for printing. Unless outer is true, the brackets of a
// top-level list are left off.
func text(b turtle.Bottom, outer bool) string {
	s := b.String()
	if !outer && b.Kind() == turtle.ListKind {
		s = s[1 : len(s)-1]
	}
	return s
}

// printFn is a console procedure.
//
// print writes its inputs separated by spaces and followed by a newline. A
// list is printed without its outer brackets.
func printFn(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return write(f, "print", args, false, "\n")
}

// show is a console procedure.
//
// show writes its input followed by a newline, keeping the brackets of a
// list.
func show(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return write(f, "show", args, true, "\n")
}

// typeFn is a console procedure.
//
// type writes its inputs like print, but without the newline.
func typeFn(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return write(f, "type", args, false, "")
}
