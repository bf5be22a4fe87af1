package internal

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Bottom.
type Kind int

// Bottom kinds.
const (
	// NoKind is the kind of the zero Bottom. It is what host procedures return
	// when they produce no value, and it is never a valid operand.
	NoKind Kind = iota
	NumberKind
	StringKind
	BooleanKind
	ListKind
	// CommandKind values hold a deferred, unevaluated invocation.
	CommandKind
	// ReferenceKind values name a variable's storage location rather than
	// its contents.
	ReferenceKind
)

var kindNames = [...]string{"nothing", "number", "string", "boolean", "list", "command", "reference"}

// String returns the name of the kind.
func (k Kind) String() string {
	if k < NoKind || k > ReferenceKind {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Bottom is a runtime value. The zero Bottom holds nothing.
type Bottom struct {
	kind Kind
	num  float64
	// str is the string contents of a StringKind or the variable name of a
	// ReferenceKind.
	str  string
	b    bool
	list []Bottom
	cmd  *Invocation
	// scope is the store captured by a ReferenceKind.
	scope *Store[Bottom]
}

// Nothing is the zero Bottom.
var Nothing Bottom

// Number creates a numeric Bottom.
func Number(x float64) Bottom {
	return Bottom{kind: NumberKind, num: x}
}

// Text creates a string Bottom.
func Text(s string) Bottom {
	return Bottom{kind: StringKind, str: s}
}

// Boolean creates a boolean Bottom.
func Boolean(b bool) Bottom {
	return Bottom{kind: BooleanKind, b: b}
}

// List creates a list Bottom. The items slice is retained.
func List(items ...Bottom) Bottom {
	return Bottom{kind: ListKind, list: items}
}

// Command creates a Bottom holding a deferred invocation.
func Command(inv *Invocation) Bottom {
	return Bottom{kind: CommandKind, cmd: inv}
}

// Reference creates a Bottom naming a storage location. scope may be nil.
func Reference(name string, scope *Store[Bottom]) Bottom {
	return Bottom{kind: ReferenceKind, str: name, scope: scope}
}

// Kind returns the variant of the value.
func (b Bottom) Kind() Kind {
	return b.kind
}

// IsNothing returns true if b is the zero Bottom.
func (b Bottom) IsNothing() bool {
	return b.kind == NoKind
}

// AsNumber returns the numeric value and whether b is a number.
func (b Bottom) AsNumber() (float64, bool) {
	return b.num, b.kind == NumberKind
}

// AsString returns the string value and whether b is a string.
func (b Bottom) AsString() (string, bool) {
	if b.kind != StringKind {
		return "", false
	}
	return b.str, true
}

// AsBool returns the boolean value and whether b is a boolean.
func (b Bottom) AsBool() (bool, bool) {
	return b.b, b.kind == BooleanKind
}

// AsList returns the items and whether b is a list. The returned slice must
// not be modified.
func (b Bottom) AsList() ([]Bottom, bool) {
	if b.kind != ListKind {
		return nil, false
	}
	return b.list, true
}

// AsCommand returns the deferred invocation and whether b is a command.
func (b Bottom) AsCommand() (*Invocation, bool) {
	if b.kind != CommandKind {
		return nil, false
	}
	return b.cmd, true
}

// AsReference returns the name and captured store of a reference.
func (b Bottom) AsReference() (string, *Store[Bottom], bool) {
	if b.kind != ReferenceKind {
		return "", nil, false
	}
	return b.str, b.scope, true
}

// target resolves the store which a reference designates.
func (b Bottom) target() *Store[Bottom] {
	if b.scope == nil {
		return nil
	}
	return b.scope.Resolve(b.str)
}

// Equal compares two values. Values of different kinds are never equal.
// References are equal when they have the same name and designate the same
// store.
func (b Bottom) Equal(o Bottom) bool {
	if b.kind != o.kind {
		return false
	}
	switch b.kind {
	case NoKind:
		return true
	case NumberKind:
		return b.num == o.num
	case StringKind:
		return b.str == o.str
	case BooleanKind:
		return b.b == o.b
	case ListKind:
		if len(b.list) != len(o.list) {
			return false
		}
		for i, x := range b.list {
			if !x.Equal(o.list[i]) {
				return false
			}
		}
		return true
	case CommandKind:
		return b.cmd == o.cmd || reflect.DeepEqual(b.cmd, o.cmd)
	case ReferenceKind:
		return b.str == o.str && b.target() == o.target()
	default:
		panic(fmt.Errorf("turtle: invalid Bottom kind %v", b.kind))
	}
}

// String formats the value for display.
func (b Bottom) String() string {
	var s strings.Builder
	b.format(&s)
	return s.String()
}

func (b Bottom) format(s *strings.Builder) {
	switch b.kind {
	case NoKind:
		s.WriteString("nothing")
	case NumberKind:
		s.WriteString(strconv.FormatFloat(b.num, 'g', -1, 64))
	case StringKind:
		s.WriteString(b.str)
	case BooleanKind:
		s.WriteString(strconv.FormatBool(b.b))
	case ListKind:
		s.WriteByte('[')
		for i, x := range b.list {
			if i > 0 {
				s.WriteByte(' ')
			}
			x.format(s)
		}
		s.WriteByte(']')
	case CommandKind:
		s.WriteByte('[')
		s.WriteString(b.cmd.String())
		s.WriteByte(']')
	case ReferenceKind:
		s.WriteByte('"')
		s.WriteString(b.str)
	}
}
