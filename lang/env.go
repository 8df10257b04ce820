package lang

// This file defines the lexical environment evaluation runs against.
// An Env owns its own bindings and function definitions and holds a
// non-owning pointer to its parent. Parents never reference children, so a
// child created for a block or call is garbage as soon as that evaluation
// returns.

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
)

// Func is a user-defined function: ordered parameter names and a body.
type Func struct {
	Params []string
	Body   Expr
}

// Env maps names to values and functions, chained to a parent scope.
// An Env is not safe for concurrent use.
type Env struct {
	bindings map[string]Value
	funcs    map[string]Func
	parent   *Env
}

// NewEnv returns an empty root environment with no parent.
func NewEnv() *Env {
	return &Env{
		bindings: make(map[string]Value),
		funcs:    make(map[string]Func),
	}
}

// CreateChild returns a new empty environment whose parent is env.
func (env *Env) CreateChild() *Env {
	child := NewEnv()
	child.parent = env

	return child
}

// Parent returns the enclosing environment, or nil for a root.
func (env *Env) Parent() *Env { return env.parent }

// StoreBinding inserts or overwrites name in env's own scope only.
func (env *Env) StoreBinding(name string, val Value) {
	env.bindings[name] = val
}

// GetBinding looks name up in env and then each ancestor in turn.
func (env *Env) GetBinding(name string) (Value, error) {
	for e := env; e != nil; e = e.parent {
		if val, ok := e.bindings[name]; ok {
			return val, nil
		}
	}

	return Unit, ErrBindingNotFound.
		Reason(fmt.Sprintf("binding with name '%s' does not exist", name)).
		With(slog.String("name", name))
}

// StoreFunc inserts or overwrites the function name in env's own scope only.
func (env *Env) StoreFunc(name string, params []string, body Expr) {
	env.funcs[name] = Func{
		Params: slices.Clone(params),
		Body:   body,
	}
}

// GetFunc looks the function name up in env and then each ancestor in turn.
// The returned parameter slice is a copy.
func (env *Env) GetFunc(name string) ([]string, Expr, error) {
	for e := env; e != nil; e = e.parent {
		if fn, ok := e.funcs[name]; ok {
			return slices.Clone(fn.Params), fn.Body, nil
		}
	}

	return nil, nil, ErrFuncNotFound.
		Reason(fmt.Sprintf("function with name '%s' does not exist", name)).
		With(slog.String("name", name))
}

// Bindings returns an iterator over every binding visible from env.
// A name shadowed by a nearer scope is yielded once, with its nearest value.
func (env *Env) Bindings() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		seen := make(map[string]struct{})

		for e := env; e != nil; e = e.parent {
			for _, name := range sortedKeys(e.bindings) {
				if _, ok := seen[name]; ok {
					continue
				}

				seen[name] = struct{}{}

				if !yield(name, e.bindings[name]) {
					return
				}
			}
		}
	}
}

// Funcs returns an iterator over every function visible from env.
// A name shadowed by a nearer scope is yielded once.
func (env *Env) Funcs() iter.Seq2[string, Func] {
	return func(yield func(string, Func) bool) {
		seen := make(map[string]struct{})

		for e := env; e != nil; e = e.parent {
			for _, name := range sortedKeys(e.funcs) {
				if _, ok := seen[name]; ok {
					continue
				}

				seen[name] = struct{}{}

				if !yield(name, e.funcs[name]) {
					return
				}
			}
		}
	}
}

// Names returns the sorted names of all visible bindings and functions.
func (env *Env) Names() []string {
	set := make(map[string]struct{})

	for name := range env.Bindings() {
		set[name] = struct{}{}
	}

	for name := range env.Funcs() {
		set[name] = struct{}{}
	}

	return sortedKeys(set)
}
