package internal

import "fmt"

// ValueKind identifies the syntactic form of a Value.
type ValueKind int

// Value kinds.
const (
	// ExpressionValue evaluates an expression tree.
	ExpressionValue ValueKind = iota + 1
	// ReferenceValue captures the storage location of a variable without
	// reading it.
	ReferenceValue
	// DerefValue reads a variable through the scope chain.
	DerefValue
	// LiteralValue is an embedded Bottom. Command literals stay deferred.
	LiteralValue
	// CallValue executes an invocation and uses its output.
	CallValue
)

var valueKindNames = [...]string{"", "expression", "reference", "deref", "literal", "call"}

// String returns the name of the kind.
func (k ValueKind) String() string {
	if k < ExpressionValue || k > CallValue {
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
	return valueKindNames[k]
}

// Value is a syntax-level value: an argument to an invocation or an operand
// of an expression.
type Value struct {
	Kind ValueKind
	// Expr is the expression of an ExpressionValue.
	Expr *Expression
	// Name is the variable name of a ReferenceValue or DerefValue.
	Name string
	// Literal is the value of a LiteralValue.
	Literal Bottom
	// Call is the invocation of a CallValue.
	Call *Invocation
}

// Expr creates an ExpressionValue.
func Expr(e *Expression) Value {
	return Value{Kind: ExpressionValue, Expr: e}
}

// Ref creates a ReferenceValue.
func Ref(name string) Value {
	return Value{Kind: ReferenceValue, Name: name}
}

// Deref creates a DerefValue.
func Deref(name string) Value {
	return Value{Kind: DerefValue, Name: name}
}

// Lit creates a LiteralValue.
func Lit(b Bottom) Value {
	return Value{Kind: LiteralValue, Literal: b}
}

// Call creates a CallValue.
func Call(inv *Invocation) Value {
	return Value{Kind: CallValue, Call: inv}
}

// Evaluate produces the runtime value of v in the frame f.
func (v Value) Evaluate(f *Frame) (Bottom, *Handoff) {
	switch v.Kind {
	case ExpressionValue:
		return v.Expr.Evaluate(f)
	case ReferenceValue:
		return Reference(v.Name, f.vars.Resolve(v.Name)), nil
	case DerefValue:
		if x, ok := f.vars.Get(v.Name); ok && !x.IsNothing() {
			return x, nil
		}
		return Nothing, Raise(MissingSymbol, "%s has no value", v.Name)
	case LiteralValue:
		return v.Literal, nil
	case CallValue:
		return Evaluate(f, v.Call)
	default:
		panic(fmt.Errorf("turtle: invalid Value kind %v", v.Kind))
	}
}

// number returns the numeric literal held by v, if it is one.
func (v Value) number() (float64, bool) {
	if v.Kind != LiteralValue {
		return 0, false
	}
	return v.Literal.AsNumber()
}

// String formats the value as source-like text.
func (v Value) String() string {
	switch v.Kind {
	case ExpressionValue:
		return v.Expr.String()
	case ReferenceValue:
		return `"` + v.Name
	case DerefValue:
		return ":" + v.Name
	case LiteralValue:
		if s, ok := v.Literal.AsString(); ok {
			return `"` + s
		}
		return v.Literal.String()
	case CallValue:
		return "(" + v.Call.String() + ")"
	default:
		return v.Kind.String()
	}
}
