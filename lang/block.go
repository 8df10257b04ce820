package lang

import "strings"

// Block is a braced sequence of statements evaluated in its own scope.
type Block struct {
	Stmts []Stmt
}

func (*Block) exprNode() {}

// ParseBlock parses: '{' ws? (Stmt ws?)* '}'.
func ParseBlock(s string) (string, *Block, error) {
	s, err := Tag("{", s)
	if err != nil {
		return s, nil, err
	}

	s, _ = ExtractWhitespace(s)
	s, stmts := Sequence(ParseStmt, ExtractWhitespace, s)
	s, _ = ExtractWhitespace(s)

	s, err = Tag("}", s)
	if err != nil {
		return s, nil, err
	}

	return s, &Block{Stmts: stmts}, nil
}

// Eval runs every statement in order inside a fresh child of env and
// returns the value of the last one. An empty block, or one ending in a
// definition, yields Unit. Nothing defined inside escapes to env.
func (b *Block) Eval(env *Env) (Value, error) {
	child := env.CreateChild()
	result := Unit

	for _, stmt := range b.Stmts {
		val, err := stmt.Eval(child)
		if err != nil {
			return Unit, err
		}

		result = val
	}

	return result, nil
}

// String renders the block with one statement per line, indented.
// Statements are separated by newlines because function call arguments
// only extend across spaces.
func (b *Block) String() string {
	if len(b.Stmts) == 0 {
		return "{}"
	}

	var sb strings.Builder

	sb.WriteString("{\n")

	for _, stmt := range b.Stmts {
		for line := range strings.Lines(stmt.String()) {
			sb.WriteString(blockIndent)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
	}

	sb.WriteString("}")

	return sb.String()
}

const blockIndent = "  "
