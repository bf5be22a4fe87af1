package internal

// NumberArg returns the nth argument as a number. If it is not a number, the
// result is a TypeError naming the procedure.
func NumberArg(name string, args []Bottom, n int) (float64, *Handoff) {
	x, ok := args[n].AsNumber()
	if !ok {
		return 0, ArgError(name, n, NumberKind, args[n])
	}
	return x, nil
}

// StringArg returns the nth argument as a string.
func StringArg(name string, args []Bottom, n int) (string, *Handoff) {
	s, ok := args[n].AsString()
	if !ok {
		return "", ArgError(name, n, StringKind, args[n])
	}
	return s, nil
}

// BoolArg returns the nth argument as a boolean.
func BoolArg(name string, args []Bottom, n int) (bool, *Handoff) {
	b, ok := args[n].AsBool()
	if !ok {
		return false, ArgError(name, n, BooleanKind, args[n])
	}
	return b, nil
}

// ListArg returns the nth argument as a list.
func ListArg(name string, args []Bottom, n int) ([]Bottom, *Handoff) {
	l, ok := args[n].AsList()
	if !ok {
		return nil, ArgError(name, n, ListKind, args[n])
	}
	return l, nil
}

// NameArg returns the variable or procedure name given by the nth argument,
// which may be a reference or a string. The store is the one captured by a
// reference, or nil for a string.
func NameArg(name string, args []Bottom, n int) (string, *Store[Bottom], *Handoff) {
	if s, scope, ok := args[n].AsReference(); ok {
		return s, scope, nil
	}
	if s, ok := args[n].AsString(); ok {
		return s, nil, nil
	}
	return "", nil, ArgError(name, n, ReferenceKind, args[n])
}

// CommandArg checks that the nth argument is a command or a list of
// commands, so that it can be passed to RunCommand. Elements of a list are
// checked when they run.
func CommandArg(name string, args []Bottom, n int) (Bottom, *Handoff) {
	switch args[n].kind {
	case CommandKind, ListKind:
		return args[n], nil
	}
	return Nothing, ArgError(name, n, CommandKind, args[n])
}
