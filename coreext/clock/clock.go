// Package clock provides wall clock procedures.
package clock

import (
	"time"

	"gitlab.com/variadico/lctime"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
)

// DefaultFormat is the strftime format used by date with no input.
const DefaultFormat = "%Y-%m-%d %H:%M:%S"

// State is the clock module's state.
type State struct {
	// Now returns the current time.
	Now func() time.Time
	// Start is the time from which timer counts.
	Start time.Time
}

// StateKey addresses the clock state in an interpreter's registry.
var StateKey = internal.NewKey[*State]("github.com/zephyrtronium/turtle/coreext/clock")

// Module is the clock module.
type Module struct {
	// Now, if not nil, replaces time.Now.
	Now func() time.Time
}

// Name returns "clock".
func (Module) Name() string {
	return "clock"
}

// Init starts the timer.
func (m Module) Init(root *turtle.Frame) *turtle.Handoff {
	now := m.Now
	if now == nil {
		now = time.Now
	}
	internal.Put(root.Registry(), StateKey, &State{Now: now, Start: now()})
	return nil
}

// Procedures returns the clock procedures.
func (Module) Procedures() map[string]turtle.Procedure {
	return map[string]turtle.Procedure{
		"date":       turtle.NewHost("date", []string{"format"}, true, date),
		"timer":      turtle.NewHost("timer", nil, false, timer),
		"resettimer": turtle.NewHost("resettimer", nil, false, resettimer),
	}
}

// date is a clock procedure.
//
// date outputs the current time formatted with strftime conversions. The
// format is optional.
func date(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	format := DefaultFormat
	switch len(args) {
	case 0: // use the default
	case 1:
		s, h := internal.StringArg("date", args, 0)
		if h != nil {
			return turtle.Nothing, h
		}
		format = s
	default:
		return turtle.Nothing, internal.Raise(turtle.ParameterError, "date needs at most 1 input, got %d", len(args))
	}
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Text(lctime.Strftime(format, s.Now())), nil
}

// timer is a clock procedure.
//
// timer outputs the number of seconds since the module was loaded or since
// the last resettimer.
func timer(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Number(s.Now().Sub(s.Start).Seconds()), nil
}

func resettimer(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.Start = s.Now()
	return turtle.Nothing, nil
}
