package lang

import (
	"errors"
	"maps"
	"slices"
	"testing"
)

func TestEnv_StoreAndGet(t *testing.T) {
	env := NewEnv()
	env.StoreBinding("a", NumberValue(1))
	env.StoreBinding("a", NumberValue(2))

	got, err := env.GetBinding("a")
	if err != nil {
		t.Fatalf("GetBinding error: %v", err)
	}

	if got != NumberValue(2) {
		t.Errorf("a = %v, want 2 after overwrite", got)
	}

	if env.Parent() != nil {
		t.Error("root environment has a parent")
	}
}

func TestEnv_ChildLookup(t *testing.T) {
	root := NewEnv()
	root.StoreBinding("x", NumberValue(1))

	child := root.CreateChild()
	grandchild := child.CreateChild()

	if grandchild.Parent() != child || child.Parent() != root {
		t.Fatal("CreateChild did not link parents")
	}

	got, err := grandchild.GetBinding("x")
	if err != nil {
		t.Fatalf("GetBinding through chain error: %v", err)
	}

	if got != NumberValue(1) {
		t.Errorf("x = %v, want 1", got)
	}

	child.StoreBinding("x", NumberValue(2))

	if got, _ = grandchild.GetBinding("x"); got != NumberValue(2) {
		t.Errorf("x = %v, want nearest binding 2", got)
	}

	if got, _ = root.GetBinding("x"); got != NumberValue(1) {
		t.Errorf("root x = %v, want 1 unchanged", got)
	}

	if _, err := root.GetBinding("missing"); !errors.Is(err, ErrBindingNotFound) {
		t.Errorf("missing binding error = %v, want ErrBindingNotFound", err)
	}
}

func TestEnv_Funcs(t *testing.T) {
	root := NewEnv()
	params := []string{"a", "b"}
	root.StoreFunc("f", params, Number(1))

	// Mutating the caller's slice must not change the stored definition.
	params[0] = "z"

	got, body, err := root.CreateChild().GetFunc("f")
	if err != nil {
		t.Fatalf("GetFunc error: %v", err)
	}

	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("params = %v, want [a b]", got)
	}

	if body != Number(1) {
		t.Errorf("body = %v, want 1", body)
	}

	if _, _, err := root.GetFunc("g"); !errors.Is(err, ErrFuncNotFound) {
		t.Errorf("missing func error = %v, want ErrFuncNotFound", err)
	}
}

func TestEnv_Iterators(t *testing.T) {
	root := NewEnv()
	root.StoreBinding("a", NumberValue(1))
	root.StoreBinding("b", NumberValue(2))
	root.StoreFunc("f", nil, Number(0))

	child := root.CreateChild()
	child.StoreBinding("b", NumberValue(20))
	child.StoreFunc("g", []string{"x"}, Number(0))

	bindings := maps.Collect(child.Bindings())

	want := map[string]Value{"a": NumberValue(1), "b": NumberValue(20)}
	if !maps.Equal(bindings, want) {
		t.Errorf("Bindings() = %v, want %v", bindings, want)
	}

	var funcs []string
	for name := range child.Funcs() {
		funcs = append(funcs, name)
	}

	if !slices.Equal(funcs, []string{"g", "f"}) {
		t.Errorf("Funcs() order = %v, want nearest scope first", funcs)
	}

	if names := child.Names(); !slices.Equal(names, []string{"a", "b", "f", "g"}) {
		t.Errorf("Names() = %v, want [a b f g]", names)
	}

	// Early termination must be honored.
	count := 0
	for range child.Bindings() {
		count++

		break
	}

	if count != 1 {
		t.Errorf("iteration continued after break: count = %d", count)
	}
}
