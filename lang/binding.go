package lang

// BindingDef binds the value of an expression to a name.
type BindingDef struct {
	Name string
	Val  Expr
}

func (*BindingDef) stmtNode() {}

// ParseBindingDef parses: 'let' ws Identifier ws? '=' ws? Expr.
func ParseBindingDef(s string) (string, *BindingDef, error) {
	s, err := Tag("let", s)
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

	s, err = Tag("=", s)
	if err != nil {
		return s, nil, err
	}

	s, _ = ExtractWhitespace(s)

	s, val, err := ParseExpr(s)
	if err != nil {
		return s, nil, err
	}

	return s, &BindingDef{Name: name, Val: val}, nil
}

// Eval evaluates Val against env and stores the result under Name in env
// itself, not in a child scope.
func (b *BindingDef) Eval(env *Env) (Value, error) {
	val, err := b.Val.Eval(env)
	if err != nil {
		return Unit, err
	}

	env.StoreBinding(b.Name, val)

	return Unit, nil
}

// String renders the definition.
func (b *BindingDef) String() string {
	return "let " + b.Name + " = " + b.Val.String()
}
