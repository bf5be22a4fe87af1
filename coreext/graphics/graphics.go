// Package graphics provides the turtle: a cursor with a position, a heading,
// and a pen, which records the path it draws as it moves.
//
// Headings are in degrees, clockwise from north, so a turtle at heading 0
// moving forward increases its y coordinate. Rendering the path is left to
// the embedder, which retrieves it with Path.
package graphics

import (
	"math"

	"github.com/zephyrtronium/turtle"
	"github.com/zephyrtronium/turtle/internal"
)

// Point is a position on the drawing plane.
type Point struct {
	X, Y float64
}

// Segment is a line drawn by the turtle.
type Segment struct {
	From, To Point
}

// State is the turtle's state.
type State struct {
	Pos     Point
	Heading float64
	PenDown bool
	Path    []Segment
}

// StateKey addresses the turtle state in an interpreter's registry.
var StateKey = internal.NewKey[*State]("github.com/zephyrtronium/turtle/coreext/graphics")

// Module is the turtle graphics module.
type Module struct{}

// Name returns "graphics".
func (Module) Name() string {
	return "graphics"
}

// Init places a new turtle at the origin, facing north with its pen down.
func (Module) Init(root *turtle.Frame) *turtle.Handoff {
	internal.Put(root.Registry(), StateKey, &State{PenDown: true})
	return nil
}

// Procedures returns the turtle procedures.
func (Module) Procedures() map[string]turtle.Procedure {
	procs := map[string]turtle.Procedure{
		"forward":     turtle.NewHost("forward", []string{"distance"}, false, forward),
		"back":        turtle.NewHost("back", []string{"distance"}, false, back),
		"left":        turtle.NewHost("left", []string{"angle"}, false, left),
		"right":       turtle.NewHost("right", []string{"angle"}, false, right),
		"penup":       turtle.NewHost("penup", nil, false, penup),
		"pendown":     turtle.NewHost("pendown", nil, false, pendown),
		"home":        turtle.NewHost("home", nil, false, home),
		"setxy":       turtle.NewHost("setxy", []string{"x", "y"}, false, setxy),
		"setheading":  turtle.NewHost("setheading", []string{"angle"}, false, setheading),
		"xcor":        turtle.NewHost("xcor", nil, false, xcor),
		"ycor":        turtle.NewHost("ycor", nil, false, ycor),
		"heading":     turtle.NewHost("heading", nil, false, heading),
		"pos":         turtle.NewHost("pos", nil, false, pos),
		"pendownp":    turtle.NewHost("pendownp", nil, false, pendownp),
		"clearscreen": turtle.NewHost("clearscreen", nil, false, clearscreen),
	}
	procs["fd"] = procs["forward"]
	procs["bk"] = procs["back"]
	procs["lt"] = procs["left"]
	procs["rt"] = procs["right"]
	procs["pu"] = procs["penup"]
	procs["pd"] = procs["pendown"]
	procs["seth"] = procs["setheading"]
	procs["cs"] = procs["clearscreen"]
	return procs
}

// Path returns the segments drawn so far by the turtle of f's interpreter.
// The result is false if the module is not loaded.
func Path(f *turtle.Frame) ([]Segment, bool) {
	s, ok := internal.Lookup(f.Registry(), StateKey)
	if !ok {
		return nil, false
	}
	return s.Path, true
}

// moveTo moves the turtle, drawing a segment if the pen is down.
func (s *State) moveTo(p Point) {
	if s.PenDown {
		s.Path = append(s.Path, Segment{From: s.Pos, To: p})
	}
	s.Pos = p
}

// move moves the turtle d units along its heading.
func (s *State) move(d float64) {
	rad := s.Heading * math.Pi / 180
	s.moveTo(Point{X: s.Pos.X + d*math.Sin(rad), Y: s.Pos.Y + d*math.Cos(rad)})
}

// turn rotates the turtle clockwise by a degrees.
func (s *State) turn(a float64) {
	s.Heading = normalize(s.Heading + a)
}

func normalize(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

// forward is a turtle procedure.
//
// forward moves the turtle along its heading.
func forward(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	d, h := internal.NumberArg("forward", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.move(d)
	return turtle.Nothing, nil
}

// back is a turtle procedure.
//
// back moves the turtle opposite its heading.
func back(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	d, h := internal.NumberArg("back", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.move(-d)
	return turtle.Nothing, nil
}

// left is a turtle procedure.
//
// left turns the turtle counterclockwise.
func left(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	a, h := internal.NumberArg("left", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.turn(-a)
	return turtle.Nothing, nil
}

// right is a turtle procedure.
//
// right turns the turtle clockwise.
func right(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	a, h := internal.NumberArg("right", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.turn(a)
	return turtle.Nothing, nil
}

func penup(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.PenDown = false
	return turtle.Nothing, nil
}

func pendown(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.PenDown = true
	return turtle.Nothing, nil
}

// home is a turtle procedure.
//
// home moves the turtle to the origin and faces it north. It draws if the
// pen is down.
func home(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.moveTo(Point{})
	s.Heading = 0
	return turtle.Nothing, nil
}

// setxy is a turtle procedure.
//
// setxy moves the turtle to the given coordinates without changing its
// heading. It draws if the pen is down.
func setxy(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	x, h := internal.NumberArg("setxy", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	y, h := internal.NumberArg("setxy", args, 1)
	if h != nil {
		return turtle.Nothing, h
	}
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.moveTo(Point{X: x, Y: y})
	return turtle.Nothing, nil
}

func setheading(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	a, h := internal.NumberArg("setheading", args, 0)
	if h != nil {
		return turtle.Nothing, h
	}
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.Heading = normalize(a)
	return turtle.Nothing, nil
}

func xcor(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Number(s.Pos.X), nil
}

func ycor(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Number(s.Pos.Y), nil
}

func heading(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Number(s.Heading), nil
}

func pos(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.List(turtle.Number(s.Pos.X), turtle.Number(s.Pos.Y)), nil
}

func pendownp(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	return turtle.Boolean(s.PenDown), nil
}

// clearscreen is a turtle procedure.
//
// clearscreen erases the path and returns the turtle home without drawing.
func clearscreen(f *turtle.Frame, args []turtle.Bottom) (turtle.Bottom, *turtle.Handoff) {
	s, h := internal.State(f, StateKey)
	if h != nil {
		return turtle.Nothing, h
	}
	s.Path = nil
	s.Pos = Point{}
	s.Heading = 0
	return turtle.Nothing, nil
}
