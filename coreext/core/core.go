// Package core provides the control flow, variable, list, and logic
// procedures that every program expects.
package core

import (
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
)

// Module is the core module. It has no state.
type Module struct{}

// Name returns "core".
func (Module) Name() string {
	return "core"
}

// Procedures returns the core procedures.
func (Module) Procedures() map[string]turtle.Procedure {
	procs := map[string]turtle.Procedure{
		"make":        turtle.NewHost("make", []string{"name", "value"}, false, makeFn),
		"local":       turtle.NewHost("local", []string{"name"}, false, local),
		"localmake":   turtle.NewHost("localmake", []string{"name", "value"}, false, localmake),
		"thing":       turtle.NewHost("thing", []string{"name"}, false, thing),
		"output":      turtle.NewHost("output", []string{"value"}, false, output),
		"stop":        turtle.NewHost("stop", nil, false, stop),
		"if":          turtle.NewHost("if", []string{"condition", "then"}, false, ifFn),
		"ifelse":      turtle.NewHost("ifelse", []string{"condition", "then", "else"}, false, ifelse),
		"repeat":      turtle.NewHost("repeat", []string{"count", "body"}, false, repeat),
		"run":         turtle.NewHost("run", []string{"body"}, false, run),
		"list":        turtle.NewHost("list", []string{"items"}, true, list),
		"first":       turtle.NewHost("first", []string{"thing"}, false, first),
		"butfirst":    turtle.NewHost("butfirst", []string{"thing"}, false, butfirst),
		"last":        turtle.NewHost("last", []string{"thing"}, false, last),
		"fput":        turtle.NewHost("fput", []string{"thing", "list"}, false, fput),
		"lput":        turtle.NewHost("lput", []string{"thing", "list"}, false, lput),
		"count":       turtle.NewHost("count", []string{"thing"}, false, count),
		"item":        turtle.NewHost("item", []string{"index", "thing"}, false, item),
		"emptyp":      turtle.NewHost("emptyp", []string{"thing"}, false, emptyp),
		"equalp":      turtle.NewHost("equalp", []string{"a", "b"}, false, equalp),
		"word":        turtle.NewHost("word", []string{"parts"}, true, word),
		"not":         turtle.NewHost("not", []string{"a"}, false, not),
		"and":         turtle.NewHost("and", []string{"a", "b"}, false, and),
		"or":          turtle.NewHost("or", []string{"a", "b"}, false, or),
		"variables":   turtle.NewHost("variables", nil, false, variables),
		"procedures":  turtle.NewHost("procedures", nil, false, procedures),
		"optimize":    turtle.NewHost("optimize", []string{"name"}, false, optimize),
		"optimizeall": turtle.NewHost("optimizeall", nil, false, optimizeall),
	}
	procs["op"] = procs["output"]
	procs["bf"] = procs["butfirst"]
	return procs
}

// makeFn is a core procedure.
//
// make assigns a value to a variable. If the variable is a reference, the
// write goes to the scope it was captured from; otherwise it goes to the
// nearest scope which has the variable, or the caller's scope if none does.
func makeFn(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	name, scope, h := internal.NameArg("make", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	if scope == nil {
		scope = f.Vars()
	}
	scope.Set(name, args[1])
	return turtle.Nothing, nil
}

// local is a core procedure.
//
// local declares a variable without a value in the caller's scope, shadowing
// any outer variable of the same name.
func local(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	name, _, h := internal.NameArg("local", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	f.Vars().SetLocal(name, turtle.Nothing)
	return turtle.Nothing, nil
}

// localmake is a core procedure.
//
// localmake declares a variable in the caller's scope and assigns it.
func localmake(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	name, _, h := internal.NameArg("localmake", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	f.Vars().SetLocal(name, args[1])
	return turtle.Nothing, nil
}

// thing is a core procedure.
//
// thing outputs the value of a variable, read through a reference if given
// one.
func thing(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	name, scope, h := internal.NameArg("thing", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	if scope == nil {
		scope = f.Vars()
	}
	v, ok := scope.Get(name)
	if !ok || v.IsNothing() {
		return turtle.Nothing, internal.Raise(turtle.MissingSymbol, "%s has no value", name)
	}
	return v, nil
}

// output is a core procedure.
//
// output ends the enclosing procedure, which outputs the given value.
func output(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return turtle.Nothing, internal.Output(args[0])
}

// stop is a core procedure.
//
// stop ends the enclosing procedure without output.
func stop(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return turtle.Nothing, internal.Halt()
}

// ifFn is a core procedure.
//
// if runs a block in the caller's scope if the condition is true.
func ifFn(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	cond, h := internal.BoolArg("if", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	body, h := internal.CommandArg("if", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	if !cond {
		return turtle.Nothing, nil
	}
	return internal.RunCommand(f, body, true)
}

// ifelse is a core procedure.
//
// ifelse runs its second input if the condition is true and its third
// otherwise.
func ifelse(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	cond, h := internal.BoolArg("ifelse", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	n := 2
	if cond {
		n = 1
	}
	body, h := internal.CommandArg("ifelse", args, n)
	if h != nil {
		return turtle.Nothing, h
	}
	return internal.RunCommand(f, body, true)
}

// repeat is a core procedure.
//
// repeat runs a block the given number of times in the caller's scope. The
// variable repcount holds the number of the current repetition, starting
// from 1.
func repeat(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	n, h := internal.NumberArg("repeat", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	body, h := internal.CommandArg("repeat", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	for i := 1; i <= int(n); i++ {
		f.Vars().SetLocal("repcount", turtle.Number(float64(i)))
		if _, h := internal.RunCommand(f, body, true); h != nil {
			return turtle.Nothing, h
		}
	}
	return turtle.Nothing, nil
}

// run is a core procedure.
//
// run runs a block in the caller's scope and outputs whatever it outputs.
func run(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	body, h := internal.CommandArg("run", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	return internal.RunCommand(f, body, true)
}

func list(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	items := make([]turtle.Bottom, len(args))
	copy(items, args)
	return turtle.List(items...), nil
}

// first is a core procedure.
//
// first outputs the first item of a list or the first character of a string.
func first(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	if s, ok := args[0].AsString(); ok {
		if s == "" {
			return turtle.Nothing, internal.Raise(turtle.ParameterError, "first doesn't like an empty word")
		}
		_, n := utf8.DecodeRuneInString(s)
		return turtle.Text(s[:n]), nil
	}
	l, h := internal.ListArg("first", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	if len(l) == 0 {
		return turtle.Nothing, internal.Raise(turtle.ParameterError, "first doesn't like an empty list")
	}
	return l[0], nil
}

// butfirst is a core procedure.
//
// butfirst outputs all but the first item of a list or character of a string.
func butfirst(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	if s, ok := args[0].AsString(); ok {
		if s == "" {
			return turtle.Nothing, internal.Raise(turtle.ParameterError, "butfirst doesn't like an empty word")
		}
		_, n := utf8.DecodeRuneInString(s)
		return turtle.Text(s[n:]), nil
	}
	l, h := internal.ListArg("butfirst", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	if len(l) == 0 {
		return turtle.Nothing, internal.Raise(turtle.ParameterError, "butfirst doesn't like an empty list")
	}
	r := make([]turtle.Bottom, len(l)-1)
	copy(r, l[1:])
	return turtle.List(r...), nil
}

// last is a core procedure.
//
// last outputs the last item of a list or the last character of a string.
func last(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	if s, ok := args[0].AsString(); ok {
		if s == "" {
			return turtle.Nothing, internal.Raise(turtle.ParameterError, "last doesn't like an empty word")
		}
		_, n := utf8.DecodeLastRuneInString(s)
		return turtle.Text(s[len(s)-n:]), nil
	}
	l, h := internal.ListArg("last", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	if len(l) == 0 {
		return turtle.Nothing, internal.Raise(turtle.ParameterError, "last doesn't like an empty list")
	}
	return l[len(l)-1], nil
}

func fput(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	l, h := internal.ListArg("fput", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	r := make([]turtle.Bottom, 0, len(l)+1)
	r = append(r, args[0])
	return turtle.List(append(r, l...)...), nil
}

func lput(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	l, h := internal.ListArg("lput", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	r := make([]turtle.Bottom, 0, len(l)+1)
	r = append(r, l...)
	return turtle.List(append(r, args[0])...), nil
}

// count is a core procedure.
//
// count outputs the number of items in a list or characters in a string.
func count(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	if s, ok := args[0].AsString(); ok {
		return turtle.Number(float64(utf8.RuneCountInString(s))), nil
	}
	l, h := internal.ListArg("count", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Number(float64(len(l))), nil
}

// item is a core procedure.
//
// item outputs the item of a list at an index counted from 1.
func item(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	x, h := internal.NumberArg("item", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	l, h := internal.ListArg("item", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	i := int(x)
	if float64(i) != x || i < 1 || i > len(l) {
		return turtle.Nothing, internal.Raise(turtle.ParameterError, "item doesn't like %v as input 1 for a list of %d items", x, len(l))
	}
	return l[i-1], nil
}

func emptyp(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	if s, ok := args[0].AsString(); ok {
		return turtle.Boolean(s == ""), nil
	}
	l, h := internal.ListArg("emptyp", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Boolean(len(l) == 0), nil
}

// equalp is a core procedure.
//
// equalp outputs true if its inputs are equal. Values of different kinds are
// never equal, and references are equal only if they name the same variable
// in the same scope.
func equalp(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return turtle.Boolean(args[0].Equal(args[1])), nil
}

// word is a core procedure.
//
// word outputs the concatenation of its inputs, which must be strings or
// numbers.
func word(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	var b strings.Builder
	for i, arg := range args {
		switch arg.Kind() {
		case turtle.StringKind, turtle.NumberKind:
			b.WriteString(arg.String())
		default:
			return turtle.Nothing, internal.ArgError("word", i, turtle.StringKind, arg)
		}
	}
	return turtle.Text(b.String()), nil
}

func not(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	a, h := internal.BoolArg("not", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Boolean(!a), nil
}

func and(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	a, h := internal.BoolArg("and", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	b, h := internal.BoolArg("and", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Boolean(a && b), nil
}

func or(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	a, h := internal.BoolArg("or", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	b, h := internal.BoolArg("or", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Boolean(a || b), nil
}

// variables is a core procedure.
//
// variables outputs a list of the names of every variable visible to the
// caller.
func variables(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return names(f.Vars().Keys()), nil
}

// procedures is a core procedure.
//
// procedures outputs a list of the names of every procedure visible to the
// caller.
func procedures(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	return names(f.Procs().Keys()), nil
}

func names(keys []string) turtle.Bottom {
	l := make([]turtle.Bottom, len(keys))
	for i, k := range keys {
		l[i] = turtle.Text(k)
	}
	return turtle.List(l...)
}

// optimize is a core procedure.
//
// optimize folds the constant arithmetic in the named procedure's body.
func optimize(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	name, _, h := internal.NameArg("optimize", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	p, ok := f.Procedure(name)
	if !ok {
		return turtle.Nothing, internal.Raise(turtle.MissingSymbol, "I don't know how to %s", name)
	}
	ip, ok := p.(*turtle.Interpreted)
	if !ok {
		return turtle.Nothing, internal.Raise(turtle.TypeError, "optimize doesn't like %s, which is a primitive", name)
	}
	n := internal.Optimize(ip)
	f.Logger().Debug().Str("procedure", name).Int("folds", n).Msg("optimize")
	return turtle.Nothing, nil
}

// optimizeall is a core procedure.
//
// optimizeall folds the constant arithmetic in every procedure visible to
// the caller.
func optimizeall(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	internal.OptimizeAll(f)
	return turtle.Nothing, nil
}
