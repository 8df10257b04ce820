// Package lang implements the eldiro language: a small expression-oriented
// language with integer arithmetic, let bindings, scoped blocks and
// user-defined functions.
//
// Source text is parsed by a hand-written recursive descent parser composed
// from the scanning primitives in scan.go ([Tag], [TakeWhile],
// [ExtractIdentifier], [Sequence] and friends). Each primitive takes the
// remaining input and returns the unconsumed remainder with what it matched,
// so the source is never mutated and alternatives can be retried from the
// same position.
//
// The resulting tree is evaluated directly against an [Env], a chain of
// lexical scopes. Blocks and function calls evaluate in a fresh child scope;
// let writes only to the scope it runs in.
//
// # Grammar
//
// Informal EBNF:
//
//	Program     → ws? (Stmt ws?)* EOF
//	Stmt        → BindingDef | FuncDef | Expr
//	BindingDef  → 'let' ws Identifier ws? '=' ws? Expr
//	FuncDef     → 'fn' ws Identifier ws? (Identifier ws?)* '=>' ws? Expr
//	Expr        → Operation | Number | FuncCall | BindingUsage | Block
//	Operation   → Number ws? Op ws? Number
//	Op          → '+' | '-' | '*' | '/'
//	FuncCall    → Identifier ' '* Expr (' '* Expr)*
//	BindingUsage→ Identifier
//	Block       → '{' ws? (Stmt ws?)* '}'
//	Number      → [0-9]+
//	Identifier  → [A-Za-z] [A-Za-z0-9]*
//	ws          → (' ' | '\t' | '\n')+
//
// Alternatives are tried in the order listed and the first success wins.
// Operands of an operation are number literals only.
//
// # Example
//
//	let x = 10 / 2
//	fn second a b => { b }
//	second 3 x
//
// evaluates to 5 and leaves x and second defined in the acting scope.
//
// Arguments extend to the end of the line, and an identifier followed by
// arguments is itself a call, so "second x 3" passes the single argument
// "x 3" (a call of x) rather than two.
//
// # Entry points
//
// [Parse] reads exactly one statement and requires the whole input to be
// consumed; [ParseProgram] and [ParseReader] read a sequence of statements.
// Results are evaluated with Eval against a caller-owned [Env], which may be
// reused across calls to accumulate bindings. [ParseCached] memoizes [Parse].
//
// Failures are reported as [*Error] values derived from the package's
// sentinel errors, so callers can classify them with [errors.Is].
package lang
