package internal

import "fmt"

// Signal represents the reason for a control transfer.
type Signal int

// Control transfer reasons.
const (
	// StopSignal unwinds to the nearest enclosing procedure boundary without
	// a value.
	StopSignal Signal = iota + 1
	// OutputSignal unwinds to the nearest enclosing procedure boundary,
	// which then produces the carried value as the result of its call.
	OutputSignal
	// ErrorSignal unwinds to the outermost caller. Nothing inside the engine
	// recovers from it.
	ErrorSignal
)

var signalNames = [...]string{"", "stop", "output", "error"}

// String returns a string representation of the Signal.
func (s Signal) String() string {
	if s < StopSignal || s > ErrorSignal {
		return fmt.Sprintf("Signal(%d)", int(s))
	}
	return signalNames[s]
}

// ErrorKind classifies runtime errors.
type ErrorKind int

// Runtime error kinds.
const (
	// TypeError is an operand kind mismatch.
	TypeError ErrorKind = iota + 1
	// MissingSymbol is an unresolved variable or procedure name.
	MissingSymbol
	// ParameterError is an arity or argument shape violation.
	ParameterError
	// MaxDepthError means the frame depth ceiling was exceeded.
	MaxDepthError
	// NoOutputError means a value was expected from a procedure which never
	// produced one.
	NoOutputError
	// ModuleError is a failure reported by a host module.
	ModuleError
)

var errorKindNames = [...]string{"", "type error", "missing symbol", "parameter error", "max depth", "no output", "module error"}

// String returns a string representation of the ErrorKind.
func (k ErrorKind) String() string {
	if k < TypeError || k > ModuleError {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return errorKindNames[k]
}

// Handoff is a control transfer in flight. Every evaluation and execution
// returns a *Handoff alongside its result; nil means normal completion.
// Exactly one of the signals is active in a non-nil Handoff.
type Handoff struct {
	// Signal is the reason for the transfer.
	Signal Signal
	// Value is the output value of an OutputSignal.
	Value Bottom
	// Kind and Message describe an ErrorSignal.
	Kind    ErrorKind
	Message string
}

// Halt returns a Handoff carrying a StopSignal.
func Halt() *Handoff {
	return &Handoff{Signal: StopSignal}
}

// Output returns a Handoff carrying an OutputSignal with the given value.
func Output(v Bottom) *Handoff {
	return &Handoff{Signal: OutputSignal, Value: v}
}

// Raise returns a Handoff carrying an ErrorSignal of the given kind with a
// formatted message.
func Raise(kind ErrorKind, format string, args ...interface{}) *Handoff {
	return &Handoff{Signal: ErrorSignal, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsError returns true if h carries an ErrorSignal.
func (h *Handoff) IsError() bool {
	return h != nil && h.Signal == ErrorSignal
}

// Is returns true if h carries an error of the given kind.
func (h *Handoff) Is(kind ErrorKind) bool {
	return h.IsError() && h.Kind == kind
}

// Err returns nil if h is nil or carries a StopSignal or OutputSignal, which
// are not failures. Otherwise it returns an *Error describing the failure.
func (h *Handoff) Err() error {
	if !h.IsError() {
		return nil
	}
	return &Error{Kind: h.Kind, Message: h.Message}
}

// String returns a diagnostic representation of the Handoff.
func (h *Handoff) String() string {
	switch {
	case h == nil:
		return "normal"
	case h.Signal == OutputSignal:
		return "output " + h.Value.String()
	case h.Signal == ErrorSignal:
		return h.Kind.String() + ": " + h.Message
	default:
		return h.Signal.String()
	}
}

// Error is a runtime error reported to the outermost caller.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error returns the error message.
func (err *Error) Error() string {
	return err.Kind.String() + ": " + err.Message
}
