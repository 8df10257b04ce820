package lang

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseNumber(t *testing.T) {
	rest, n, err := ParseNumber("123")
	if err != nil {
		t.Fatalf("ParseNumber error: %v", err)
	}

	if rest != "" || n != 123 {
		t.Errorf("ParseNumber = (%q, %d), want (\"\", 123)", rest, n)
	}

	_, _, err = ParseNumber("99999999999999999999")
	if !errors.Is(err, ErrNumberRange) {
		t.Errorf("overflow error = %v, want ErrNumberRange", err)
	}
}

func TestParseOp(t *testing.T) {
	tests := []struct {
		input string
		want  Op
	}{
		{"+", OpAdd},
		{"-", OpSub},
		{"*", OpMul},
		{"/", OpDiv},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			rest, op, err := ParseOp(tt.input)
			if err != nil {
				t.Fatalf("ParseOp(%q) error: %v", tt.input, err)
			}

			if rest != "" || op != tt.want {
				t.Errorf("ParseOp(%q) = (%q, %v), want (\"\", %v)", tt.input, rest, op, tt.want)
			}

			if op.String() != tt.input {
				t.Errorf("String() = %q, want %q", op.String(), tt.input)
			}
		})
	}

	if _, _, err := ParseOp("%"); err == nil {
		t.Error("ParseOp(\"%\") succeeded, want error")
	}
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Expr
		rest  string
	}{
		{
			name:  "number",
			input: "456",
			want:  Number(456),
		},
		{
			name:  "operation without spaces",
			input: "1+2",
			want:  &Operation{Lhs: 1, Rhs: 2, Op: OpAdd},
		},
		{
			name:  "operation with spaces",
			input: "1 + 2",
			want:  &Operation{Lhs: 1, Rhs: 2, Op: OpAdd},
		},
		{
			name:  "operation with newlines",
			input: "7\n*\n6",
			want:  &Operation{Lhs: 7, Rhs: 6, Op: OpMul},
		},
		{
			name:  "number followed by non-operator",
			input: "1 x",
			want:  Number(1),
			rest:  " x",
		},
		{
			name:  "binding usage",
			input: "bar",
			want:  &BindingUsage{Name: "bar"},
		},
		{
			name:  "binding usage before newline",
			input: "bar\n1",
			want:  &BindingUsage{Name: "bar"},
			rest:  "\n1",
		},
		{
			name:  "block",
			input: "{ 200 }",
			want:  &Block{Stmts: []Stmt{ExprStmt{Expr: Number(200)}}},
		},
		{
			name:  "function call",
			input: "add 1 2",
			want: &FuncCall{
				Callee: "add",
				Params: []Expr{Number(1), Number(2)},
			},
		},
		{
			name:  "function call with nested call",
			input: "add x y",
			want: &FuncCall{
				Callee: "add",
				Params: []Expr{
					&FuncCall{
						Callee: "x",
						Params: []Expr{&BindingUsage{Name: "y"}},
					},
				},
			},
		},
		{
			name:  "function call with block argument",
			input: "f { 1 }",
			want: &FuncCall{
				Callee: "f",
				Params: []Expr{
					&Block{Stmts: []Stmt{ExprStmt{Expr: Number(1)}}},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, got, err := ParseExpr(tt.input)
			if err != nil {
				t.Fatalf("ParseExpr(%q) error: %v", tt.input, err)
			}

			if rest != tt.rest {
				t.Errorf("rest = %q, want %q", rest, tt.rest)
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseExpr(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExpr_Errors(t *testing.T) {
	for _, input := range []string{"", "+", "}", "=> 1"} {
		rest, expr, err := ParseExpr(input)
		if err == nil {
			t.Errorf("ParseExpr(%q) = %v, want error", input, expr)

			continue
		}

		if rest != input {
			t.Errorf("ParseExpr(%q) rest = %q, want input unchanged", input, rest)
		}
	}
}

func TestOperation_Eval(t *testing.T) {
	tests := []struct {
		op   Op
		want int64
	}{
		{OpAdd, 20},
		{OpSub, 0},
		{OpMul, 100},
		{OpDiv, 1},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			expr := &Operation{Lhs: 10, Rhs: 10, Op: tt.op}

			val, err := expr.Eval(NewEnv())
			if err != nil {
				t.Fatalf("Eval error: %v", err)
			}

			if val != NumberValue(tt.want) {
				t.Errorf("10 %s 10 = %v, want %d", tt.op, val, tt.want)
			}
		})
	}
}

func TestOperation_DivisionTruncates(t *testing.T) {
	val, err := (&Operation{Lhs: 7, Rhs: 2, Op: OpDiv}).Eval(NewEnv())
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}

	if val != NumberValue(3) {
		t.Errorf("7 / 2 = %v, want 3", val)
	}
}

func TestOperation_DivideByZero(t *testing.T) {
	val, err := (&Operation{Lhs: 1, Rhs: 0, Op: OpDiv}).Eval(NewEnv())
	if !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("error = %v, want ErrDivideByZero", err)
	}

	if err.Error() != "division by zero" {
		t.Errorf("error text = %q, want %q", err.Error(), "division by zero")
	}

	if !val.IsUnit() {
		t.Errorf("value = %v, want Unit", val)
	}
}

func TestBindingUsage_Eval(t *testing.T) {
	env := NewEnv()
	env.StoreBinding("ten", NumberValue(10))

	val, err := (&BindingUsage{Name: "ten"}).Eval(env)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}

	if val != NumberValue(10) {
		t.Errorf("ten = %v, want 10", val)
	}
}

func TestBindingUsage_Missing(t *testing.T) {
	_, err := (&BindingUsage{Name: "i_dont_exist"}).Eval(NewEnv())
	if !errors.Is(err, ErrBindingNotFound) {
		t.Fatalf("error = %v, want ErrBindingNotFound", err)
	}

	want := "binding with name 'i_dont_exist' does not exist"
	if err.Error() != want {
		t.Errorf("error text = %q, want %q", err.Error(), want)
	}
}

func TestExpr_String(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{Number(42), "42"},
		{&Operation{Lhs: 10, Rhs: 2, Op: OpDiv}, "10 / 2"},
		{&BindingUsage{Name: "x"}, "x"},
		{&FuncCall{Callee: "f", Params: []Expr{Number(1), &BindingUsage{Name: "y"}}}, "f 1 y"},
		{&Block{}, "{}"},
		{
			&Block{Stmts: []Stmt{
				&BindingDef{Name: "a", Val: Number(1)},
				ExprStmt{Expr: &BindingUsage{Name: "a"}},
			}},
			"{\n  let a = 1\n  a\n}",
		},
	}

	for _, tt := range tests {
		if got := tt.expr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
