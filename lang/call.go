package lang

import (
	"fmt"
	"log/slog"
	"strings"
)

// FuncCall invokes a user-defined function with argument expressions.
type FuncCall struct {
	Callee string
	Params []Expr
}

func (*FuncCall) exprNode() {}

// ParseFuncCall parses an identifier followed by one or more
// space-separated argument expressions.
func ParseFuncCall(s string) (string, *FuncCall, error) {
	s, callee, err := ExtractIdentifier(s)
	if err != nil {
		return s, nil, err
	}

	s, _ = ExtractSpaces(s)

	s, params, err := SequenceRequired(ParseExpr, ExtractSpaces, s)
	if err != nil {
		return s, nil, err
	}

	return s, &FuncCall{Callee: callee, Params: params}, nil
}

// Eval calls the function named by Callee.
//
// A child of env is created first. Each argument is evaluated in that child
// and bound there under its parameter name, then the body is evaluated in
// the same child. The argument count must match the parameter count.
func (c *FuncCall) Eval(env *Env) (Value, error) {
	child := env.CreateChild()

	names, body, err := env.GetFunc(c.Callee)
	if err != nil {
		return Unit, err
	}

	if len(names) != len(c.Params) {
		return Unit, ErrParamCountMismatch.
			Reason(fmt.Sprintf(
				"expected %d parameters, got %d",
				len(names), len(c.Params),
			)).
			With(
				slog.String("callee", c.Callee),
				slog.Int("expected", len(names)),
				slog.Int("got", len(c.Params)),
			)
	}

	for i, name := range names {
		val, err := c.Params[i].Eval(child)
		if err != nil {
			return Unit, err
		}

		child.StoreBinding(name, val)
	}

	return body.Eval(child)
}

// String renders the call as the callee followed by its arguments.
func (c *FuncCall) String() string {
	parts := make([]string, 0, len(c.Params)+1)
	parts = append(parts, c.Callee)

	for _, p := range c.Params {
		parts = append(parts, p.String())
	}

	return strings.Join(parts, " ")
}
