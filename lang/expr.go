package lang

import (
	"log/slog"
	"strconv"
)

// Expr is an expression node. The set of implementations is closed:
// [Number], [*Operation], [*BindingUsage], [*Block] and [*FuncCall].
type Expr interface {
	// Eval computes the expression's value against env.
	Eval(env *Env) (Value, error)

	// String renders the expression as canonical source text.
	String() string

	exprNode()
}

// Number is an integer literal.
type Number int64

func (Number) exprNode() {}

// ParseNumber parses a maximal run of ASCII digits.
func ParseNumber(s string) (string, Number, error) {
	rest, digits, err := ExtractDigits(s)
	if err != nil {
		return s, 0, err
	}

	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return s, 0, ErrNumberRange.Wrap(err).
			With(slog.String("digits", digits))
	}

	return rest, Number(n), nil
}

// Eval returns the literal's value.
func (n Number) Eval(*Env) (Value, error) {
	return NumberValue(int64(n)), nil
}

// String renders the literal in decimal.
func (n Number) String() string { return strconv.FormatInt(int64(n), 10) }

// Op is a binary arithmetic operator.
type Op int

const (
	OpAdd Op = iota // +
	OpSub           // -
	OpMul           // *
	OpDiv           // /
)

// opSymbols lists each operator's symbol in parse priority order.
var opSymbols = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
}

// ParseOp parses a single operator symbol.
func ParseOp(s string) (string, Op, error) {
	var err error

	for op, sym := range opSymbols {
		var rest string

		rest, err = Tag(sym, s)
		if err == nil {
			return rest, Op(op), nil
		}
	}

	return s, 0, err
}

// String returns the operator's symbol.
func (op Op) String() string {
	if op < 0 || int(op) >= len(opSymbols) {
		return "?"
	}

	return opSymbols[op]
}

// Apply computes lhs op rhs with integer semantics.
// Division truncates toward zero; a zero divisor is an error.
func (op Op) Apply(lhs, rhs int64) (int64, error) {
	switch op {
	case OpAdd:
		return lhs + rhs, nil

	case OpSub:
		return lhs - rhs, nil

	case OpMul:
		return lhs * rhs, nil

	case OpDiv:
		if rhs == 0 {
			return 0, ErrDivideByZero.
				With(slog.Int64("lhs", lhs), slog.Int64("rhs", rhs))
		}

		return lhs / rhs, nil

	default:
		return 0, ErrExpectedLiteral.Reason("expected operator").
			With(slog.Int("op", int(op)))
	}
}

// Operation is a binary operation on two number literals.
type Operation struct {
	Lhs Number
	Rhs Number
	Op  Op
}

func (*Operation) exprNode() {}

// ParseOperation parses: Number ws? Op ws? Number.
func ParseOperation(s string) (string, *Operation, error) {
	s, lhs, err := ParseNumber(s)
	if err != nil {
		return s, nil, err
	}

	s, _ = ExtractWhitespace(s)

	s, op, err := ParseOp(s)
	if err != nil {
		return s, nil, err
	}

	s, _ = ExtractWhitespace(s)

	s, rhs, err := ParseNumber(s)
	if err != nil {
		return s, nil, err
	}

	return s, &Operation{Lhs: lhs, Rhs: rhs, Op: op}, nil
}

// Eval applies the operator to both literals. Operands are never evaluated
// recursively because the grammar only admits literals here.
func (o *Operation) Eval(*Env) (Value, error) {
	n, err := o.Op.Apply(int64(o.Lhs), int64(o.Rhs))
	if err != nil {
		return Unit, err
	}

	return NumberValue(n), nil
}

// String renders the operation with single spaces around the operator.
func (o *Operation) String() string {
	return o.Lhs.String() + " " + o.Op.String() + " " + o.Rhs.String()
}

// BindingUsage is a reference to a binding by name.
type BindingUsage struct {
	Name string
}

func (*BindingUsage) exprNode() {}

// ParseBindingUsage parses a bare identifier.
func ParseBindingUsage(s string) (string, *BindingUsage, error) {
	rest, name, err := ExtractIdentifier(s)
	if err != nil {
		return s, nil, err
	}

	return rest, &BindingUsage{Name: name}, nil
}

// Eval looks the name up through env's parent chain.
func (b *BindingUsage) Eval(env *Env) (Value, error) {
	return env.GetBinding(b.Name)
}

// String returns the referenced name.
func (b *BindingUsage) String() string { return b.Name }

// ParseExpr parses an expression by trying each alternative in a fixed
// order and committing to the first that succeeds:
// operation, number, function call, binding usage, block.
// When every alternative fails, the error from the last one is returned.
func ParseExpr(s string) (string, Expr, error) {
	return firstOf(s,
		asExpr(ParseOperation),
		asExpr(ParseNumber),
		asExpr(ParseFuncCall),
		asExpr(ParseBindingUsage),
		asExpr(ParseBlock),
	)
}

// asExpr adapts a parser of a concrete node type to one returning [Expr].
func asExpr[T Expr](p func(string) (string, T, error)) Parser[Expr] {
	return func(s string) (string, Expr, error) {
		rest, node, err := p(s)
		if err != nil {
			return s, nil, err
		}

		return rest, node, nil
	}
}

// firstOf runs each alternative against the same input and returns the
// first success.
func firstOf[T any](s string, alts ...Parser[T]) (string, T, error) {
	var (
		zero T
		err  error
	)

	for _, alt := range alts {
		var (
			rest string
			node T
		)

		rest, node, err = alt(s)
		if err == nil {
			return rest, node, nil
		}
	}

	return s, zero, err
}
