package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

// Mapper is implemented by parse results that can be converted to a tree of
// maps, slices and scalars for structured output.
type Mapper interface {
	ToMap() map[string]any
}

// ToMap converts the parsed statement to a native map tree.
func (p *Parsed) ToMap() map[string]any {
	return map[string]any{"statement": stmtToNative(p.Stmt)}
}

// ToMap converts the program to a native map tree.
func (p *Program) ToMap() map[string]any {
	stmts := make([]any, len(p.Stmts))
	for i, stmt := range p.Stmts {
		stmts[i] = stmtToNative(stmt)
	}

	return map[string]any{"statements": stmts}
}

// Format writes src in canonical eldiro syntax followed by a newline.
func Format(_ context.Context, w io.Writer, src fmt.Stringer) error {
	_, err := fmt.Fprintln(w, src.String())

	return err
}

// FormatJSON writes the map tree of m as JSON to the writer.
// A positive indent pretty-prints with that many spaces per level.
func FormatJSON(_ context.Context, w io.Writer, m Mapper, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(m.ToMap(), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(m.ToMap())
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the map tree of m as YAML to the writer.
// A positive indent uses block style; otherwise flow style.
func FormatYAML(ctx context.Context, w io.Writer, m Mapper, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, m.ToMap(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatValue writes v the way results are printed, followed by a newline.
func FormatValue(w io.Writer, v Value) error {
	_, err := fmt.Fprintln(w, v.String())

	return err
}

func stmtToNative(stmt Stmt) any {
	switch s := stmt.(type) {
	case *BindingDef:
		return map[string]any{
			"let":   s.Name,
			"value": exprToNative(s.Val),
		}

	case *FuncDef:
		params := make([]any, len(s.Params))
		for i, p := range s.Params {
			params[i] = p
		}

		return map[string]any{
			"fn":     s.Name,
			"params": params,
			"body":   exprToNative(s.Body),
		}

	case ExprStmt:
		return exprToNative(s.Expr)

	default:
		return nil
	}
}

func exprToNative(expr Expr) any {
	switch e := expr.(type) {
	case Number:
		return int64(e)

	case *Operation:
		return map[string]any{
			"op":  e.Op.String(),
			"lhs": int64(e.Lhs),
			"rhs": int64(e.Rhs),
		}

	case *BindingUsage:
		return map[string]any{"binding": e.Name}

	case *FuncCall:
		args := make([]any, len(e.Params))
		for i, p := range e.Params {
			args[i] = exprToNative(p)
		}

		return map[string]any{
			"call": e.Callee,
			"args": args,
		}

	case *Block:
		stmts := make([]any, len(e.Stmts))
		for i, stmt := range e.Stmts {
			stmts[i] = stmtToNative(stmt)
		}

		return map[string]any{"block": stmts}

	default:
		return nil
	}
}
