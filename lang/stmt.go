package lang

// Stmt is a statement node. The set of implementations is closed:
// [*BindingDef], [*FuncDef] and [ExprStmt].
type Stmt interface {
	// Eval runs the statement against env. Definitions mutate env itself
	// and yield Unit; an expression statement yields its value.
	Eval(env *Env) (Value, error)

	// String renders the statement as canonical source text.
	String() string

	stmtNode()
}

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	Expr Expr
}

func (ExprStmt) stmtNode() {}

// Eval evaluates the wrapped expression.
func (s ExprStmt) Eval(env *Env) (Value, error) { return s.Expr.Eval(env) }

// String renders the wrapped expression.
func (s ExprStmt) String() string { return s.Expr.String() }

// ParseStmt parses a binding definition, then a function definition, and
// falls back to a bare expression.
func ParseStmt(s string) (string, Stmt, error) {
	return firstOf(s,
		asStmt(ParseBindingDef),
		asStmt(ParseFuncDef),
		parseExprStmt,
	)
}

func parseExprStmt(s string) (string, Stmt, error) {
	rest, expr, err := ParseExpr(s)
	if err != nil {
		return s, nil, err
	}

	return rest, ExprStmt{Expr: expr}, nil
}

// asStmt adapts a parser of a concrete node type to one returning [Stmt].
func asStmt[T Stmt](p func(string) (string, T, error)) Parser[Stmt] {
	return func(s string) (string, Stmt, error) {
		rest, node, err := p(s)
		if err != nil {
			return s, nil, err
		}

		return rest, node, nil
	}
}
