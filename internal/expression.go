package internal

import (
	"fmt"
	"strings"
)

// Operator is an arithmetic or comparison operator.
type Operator byte

// Operators.
const (
	OpAdd     Operator = '+'
	OpSub     Operator = '-'
	OpMul     Operator = '*'
	OpDiv     Operator = '/'
	OpLess    Operator = '<'
	OpGreater Operator = '>'
	OpEqual   Operator = '='
)

// String returns the operator's symbol.
func (op Operator) String() string {
	return string(rune(op))
}

// apply folds x into acc.
func (op Operator) apply(acc, x float64) float64 {
	switch op {
	case OpAdd:
		return acc + x
	case OpSub:
		return acc - x
	case OpMul:
		return acc * x
	case OpDiv:
		return acc / x
	default:
		panic(fmt.Errorf("turtle: %q is not an arithmetic operator", byte(op)))
	}
}

// Expression is the lowest-precedence level of the grammar: an arithmetic
// expression optionally compared with another.
type Expression struct {
	Lhs *ArithmeticExpression `yaml:"lhs"`
	// Cmp is zero when the expression has no comparison.
	Cmp Operator              `yaml:"cmp,omitempty"`
	Rhs *ArithmeticExpression `yaml:"rhs,omitempty"`
}

// ArithmeticTerm is one additive operand with its operator.
type ArithmeticTerm struct {
	Op   Operator               `yaml:"op"`
	Expr *MultiplyingExpression `yaml:"expr"`
}

// ArithmeticExpression is a left-associative sequence of additions and
// subtractions.
type ArithmeticExpression struct {
	Lhs *MultiplyingExpression `yaml:"lhs"`
	Rhs []ArithmeticTerm       `yaml:"rhs,omitempty"`
}

// MultiplyingTerm is one multiplicative operand with its operator.
type MultiplyingTerm struct {
	Op   Operator        `yaml:"op"`
	Expr *SignExpression `yaml:"expr"`
}

// MultiplyingExpression is a left-associative sequence of multiplications and
// divisions.
type MultiplyingExpression struct {
	Lhs *SignExpression   `yaml:"lhs"`
	Rhs []MultiplyingTerm `yaml:"rhs,omitempty"`
}

// SignExpression is a possibly negated value.
type SignExpression struct {
	Negative bool  `yaml:"negative,omitempty"`
	Value    Value `yaml:"value"`
}

// Single wraps a value in a complete expression tree with no operators.
func Single(v Value) *Expression {
	return &Expression{Lhs: &ArithmeticExpression{Lhs: &MultiplyingExpression{Lhs: &SignExpression{Value: v}}}}
}

// Evaluate evaluates the expression.
func (e *Expression) Evaluate(f *Frame) (Bottom, *Handoff) {
	l, h := e.Lhs.Evaluate(f)
	if h != nil || e.Rhs == nil {
		return l, h
	}
	r, h := e.Rhs.Evaluate(f)
	if h != nil {
		return Nothing, h
	}
	return compare(e.Cmp, l, r)
}

func compare(op Operator, l, r Bottom) (Bottom, *Handoff) {
	switch {
	case l.kind == NumberKind && r.kind == NumberKind:
		switch op {
		case OpLess:
			return Boolean(l.num < r.num), nil
		case OpGreater:
			return Boolean(l.num > r.num), nil
		case OpEqual:
			return Boolean(l.num == r.num), nil
		}
		return Nothing, Raise(TypeError, "%q is not a comparison", byte(op))
	case l.kind == BooleanKind && r.kind == BooleanKind:
		if op == OpEqual {
			return Boolean(l.b == r.b), nil
		}
		return Nothing, Raise(TypeError, "booleans cannot be compared with %v", op)
	}
	return Nothing, Raise(TypeError, "cannot compare %v with %v", l.kind, r.kind)
}

// Evaluate evaluates the expression. A string on the left makes the entire
// expression evaluate to that string without evaluating the other terms.
func (e *ArithmeticExpression) Evaluate(f *Frame) (Bottom, *Handoff) {
	l, h := e.Lhs.Evaluate(f)
	if h != nil || len(e.Rhs) == 0 || l.kind == StringKind {
		return l, h
	}
	acc, ok := l.AsNumber()
	if !ok {
		return Nothing, Raise(TypeError, "cannot apply %v to %v", e.Rhs[0].Op, l.kind)
	}
	for _, t := range e.Rhs {
		r, h := t.Expr.Evaluate(f)
		if h != nil {
			return Nothing, h
		}
		x, ok := r.AsNumber()
		if !ok {
			return Nothing, Raise(TypeError, "cannot apply %v to %v", t.Op, r.kind)
		}
		acc = t.Op.apply(acc, x)
	}
	return Number(acc), nil
}

// Evaluate evaluates the expression. A string on the left makes the entire
// expression evaluate to that string without evaluating the other terms.
func (e *MultiplyingExpression) Evaluate(f *Frame) (Bottom, *Handoff) {
	l, h := e.Lhs.Evaluate(f)
	if h != nil || len(e.Rhs) == 0 || l.kind == StringKind {
		return l, h
	}
	acc, ok := l.AsNumber()
	if !ok {
		return Nothing, Raise(TypeError, "cannot apply %v to %v", e.Rhs[0].Op, l.kind)
	}
	for _, t := range e.Rhs {
		r, h := t.Expr.Evaluate(f)
		if h != nil {
			return Nothing, h
		}
		x, ok := r.AsNumber()
		if !ok {
			return Nothing, Raise(TypeError, "cannot apply %v to %v", t.Op, r.kind)
		}
		acc = t.Op.apply(acc, x)
	}
	return Number(acc), nil
}

// Evaluate evaluates the expression. Negating anything but a number yields
// the value unchanged.
func (e *SignExpression) Evaluate(f *Frame) (Bottom, *Handoff) {
	v, h := e.Value.Evaluate(f)
	if h != nil {
		return Nothing, h
	}
	if e.Negative {
		if x, ok := v.AsNumber(); ok {
			return Number(-x), nil
		}
	}
	return v, nil
}

func (e *Expression) String() string {
	if e.Rhs == nil {
		return e.Lhs.String()
	}
	return e.Lhs.String() + " " + e.Cmp.String() + " " + e.Rhs.String()
}

func (e *ArithmeticExpression) String() string {
	var b strings.Builder
	b.WriteString(e.Lhs.String())
	for _, t := range e.Rhs {
		b.WriteString(" " + t.Op.String() + " ")
		b.WriteString(t.Expr.String())
	}
	return b.String()
}

func (e *MultiplyingExpression) String() string {
	var b strings.Builder
	b.WriteString(e.Lhs.String())
	for _, t := range e.Rhs {
		b.WriteString(" " + t.Op.String() + " ")
		b.WriteString(t.Expr.String())
	}
	return b.String()
}

func (e *SignExpression) String() string {
	s := e.Value.String()
	if e.Value.Kind == ExpressionValue {
		s = "(" + s + ")"
	}
	if e.Negative {
		return "-" + s
	}
	return s
}
