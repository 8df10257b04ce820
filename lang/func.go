package lang

import "strings"

// FuncDef defines a named function in the acting scope.
type FuncDef struct {
	Name   string
	Params []string
	Body   Expr
}

func (*FuncDef) stmtNode() {}

// ParseFuncDef parses: 'fn' ws Identifier (ws Identifier)* ws? '=>' ws? Expr.
func ParseFuncDef(s string) (string, *FuncDef, error) {
	s, err := Tag("fn", s)
	if err != nil {
		return s, nil, err
	}

	s, _, err = ExtractWhitespaceRequired(s)
	if err != nil {
		return s, nil, err
	}

	s, name, err := ExtractIdentifier(s)
	if err != nil {
		return s, nil, err
	}

	s, _ = ExtractWhitespace(s)
	s, params := Sequence(ExtractIdentifier, ExtractWhitespace, s)

	s, err = Tag("=>", s)
	if err != nil {
		return s, nil, err
	}

	s, _ = ExtractWhitespace(s)

	s, body, err := ParseExpr(s)
	if err != nil {
		return s, nil, err
	}

	return s, &FuncDef{Name: name, Params: params, Body: body}, nil
}

// Eval stores the function in env and yields Unit.
func (f *FuncDef) Eval(env *Env) (Value, error) {
	env.StoreFunc(f.Name, f.Params, f.Body)

	return Unit, nil
}

// String renders the definition.
func (f *FuncDef) String() string {
	parts := make([]string, 0, len(f.Params)+4)
	parts = append(parts, "fn", f.Name)
	parts = append(parts, f.Params...)
	parts = append(parts, "=>", f.Body.String())

	return strings.Join(parts, " ")
}
