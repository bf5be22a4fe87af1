package internal

import "github.com/zephyrtronium/contains"

// Optimize folds constant arithmetic in the arguments of every invocation in
// p's body and in its sub-procedures, rewriting them in place. It returns the
// number of expression nodes rewritten.
//
// Folding is a single bottom-up pass. Parenthesized sub-expressions are
// folded before the expressions containing them, so a subtree made only of
// numeric literals always reduces to one literal. Strings, booleans, lists,
// and commands are never folded, and the arguments of deferred commands are
// left alone.
func Optimize(p *Interpreted) int {
	o := optimizer{seen: contains.Set{}}
	o.procedure(p)
	return o.folds
}

// OptimizeAll optimizes every interpreted procedure visible from f. Each
// procedure is optimized once even if it is visible under several names.
func OptimizeAll(f *Frame) int {
	o := optimizer{seen: contains.Set{}}
	for _, p := range f.AllProcedures() {
		if ip, ok := p.(*Interpreted); ok {
			o.procedure(ip)
		}
	}
	f.shared.log.Debug().Int("folds", o.folds).Msg("optimize all")
	return o.folds
}

type optimizer struct {
	// seen is the set of procedure IDs already optimized.
	seen  contains.Set
	folds int
}

func (o *optimizer) procedure(p *Interpreted) {
	if !o.seen.Add(p.UniqueID()) {
		return
	}
	for _, inv := range p.Body {
		o.invocation(inv)
	}
	for _, sub := range p.procs {
		if ip, ok := sub.(*Interpreted); ok {
			o.procedure(ip)
		}
	}
}

func (o *optimizer) invocation(inv *Invocation) {
	for i, arg := range inv.Args {
		inv.Args[i] = o.value(arg)
	}
}

// value folds the expressions within v. If v is an expression which reduces
// to a single numeric literal, the result is that literal.
func (o *optimizer) value(v Value) Value {
	switch v.Kind {
	case ExpressionValue:
		o.arithmetic(v.Expr.Lhs)
		if v.Expr.Rhs != nil {
			o.arithmetic(v.Expr.Rhs)
			return v
		}
		if x, ok := literalMultiplying(v.Expr.Lhs.Lhs); ok && len(v.Expr.Lhs.Rhs) == 0 {
			return Lit(Number(x))
		}
	case CallValue:
		o.invocation(v.Call)
	}
	return v
}

// arithmetic folds the literal terms of e into its left operand when that
// operand is itself a literal. The node is only replaced if that does not
// increase its number of terms. Terms following a non-literal left operand
// stay as written, since combining them would reassociate float arithmetic.
func (o *optimizer) arithmetic(e *ArithmeticExpression) {
	o.multiplying(e.Lhs)
	for _, t := range e.Rhs {
		o.multiplying(t.Expr)
	}
	var (
		acc    float64
		folded int
		rest   []ArithmeticTerm
	)
	lhs, lit := literalMultiplying(e.Lhs)
	if lit {
		acc = OpAdd.apply(acc, lhs)
	}
	for _, t := range e.Rhs {
		if x, ok := literalMultiplying(t.Expr); ok {
			acc = t.Op.apply(acc, x)
			folded++
		} else {
			rest = append(rest, t)
		}
	}
	if !lit || folded == 0 {
		return
	}
	if len(rest) > len(e.Rhs) {
		return
	}
	e.Lhs, e.Rhs = multiplyingLiteral(acc), rest
	o.folds++
}

// multiplying is the same as arithmetic for the multiplicative level.
func (o *optimizer) multiplying(e *MultiplyingExpression) {
	o.sign(e.Lhs)
	for _, t := range e.Rhs {
		o.sign(t.Expr)
	}
	var (
		acc    = 1.0
		folded int
		rest   []MultiplyingTerm
	)
	lhs, lit := literalSign(e.Lhs)
	if lit {
		acc = OpMul.apply(acc, lhs)
	}
	for _, t := range e.Rhs {
		if x, ok := literalSign(t.Expr); ok {
			acc = t.Op.apply(acc, x)
			folded++
		} else {
			rest = append(rest, t)
		}
	}
	if !lit || folded == 0 {
		return
	}
	if len(rest) > len(e.Rhs) {
		return
	}
	e.Lhs, e.Rhs = signLiteral(acc), rest
	o.folds++
}

func (o *optimizer) sign(e *SignExpression) {
	e.Value = o.value(e.Value)
}

func literalSign(e *SignExpression) (float64, bool) {
	x, ok := e.Value.number()
	if ok && e.Negative {
		x = -x
	}
	return x, ok
}

func literalMultiplying(e *MultiplyingExpression) (float64, bool) {
	if len(e.Rhs) != 0 {
		return 0, false
	}
	return literalSign(e.Lhs)
}

func signLiteral(x float64) *SignExpression {
	return &SignExpression{Value: Lit(Number(x))}
}

func multiplyingLiteral(x float64) *MultiplyingExpression {
	return &MultiplyingExpression{Lhs: signLiteral(x)}
}
