package cmd

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func readSources(t *testing.T, srcs []source) []string {
	t.Helper()

	var got []string

	for _, src := range srcs {
		data, err := io.ReadAll(src)
		if err != nil {
			t.Fatalf("reading %s: %v", src.name, err)
		}

		got = append(got, string(data))

		if err := src.Close(); err != nil {
			t.Errorf("closing %s: %v", src.name, err)
		}
	}

	return got
}

// TestOpenSources_Order tests that files open in order and stdin reads last.
func TestOpenSources_Order(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.eld", "first")
	second := writeFile(t, dir, "second.eld", "second")

	ctx := WithInput(t.Context(), strings.NewReader("stdin"))

	srcs, err := openSources(ctx, []string{"-", first, "-", second})
	if err != nil {
		t.Fatalf("openSources: %v", err)
	}

	got := strings.Join(readSources(t, srcs), ",")
	if want := "first,second,stdin"; got != want {
		t.Errorf("read %q, want %q", got, want)
	}
}

// TestOpenSources_Dedup tests that a file reached through different paths
// opens once.
func TestOpenSources_Dedup(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.eld", "let a = 1")

	link := filepath.Join(dir, "link.eld")
	if err := os.Symlink(path, link); err != nil {
		t.Skipf("symlink: %v", err)
	}

	relative := filepath.Join(dir, ".", "prog.eld")

	srcs, err := openSources(t.Context(), []string{path, link, relative})
	if err != nil {
		t.Fatalf("openSources: %v", err)
	}

	if got := readSources(t, srcs); len(got) != 1 {
		t.Errorf("opened %d sources, want 1", len(got))
	}
}

// TestOpenSources_Missing tests that a missing file fails with both the
// command sentinel and the underlying cause.
func TestOpenSources_Missing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.eld", "1")

	_, err := openSources(t.Context(),
		[]string{path, filepath.Join(dir, "missing.eld")})

	if !errors.Is(err, ErrOpenSource) {
		t.Errorf("error = %v, want %v", err, ErrOpenSource)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want %v", err, fs.ErrNotExist)
	}
}

// TestOutputFrom tests the output installed in the context.
func TestOutputFrom(t *testing.T) {
	if outputFrom(t.Context()) != os.Stdout {
		t.Error("default output is not os.Stdout")
	}

	var buf bytes.Buffer
	if outputFrom(WithOutput(t.Context(), &buf)) != &buf {
		t.Error("WithOutput writer not used")
	}

	if kongContextFrom(t.Context()) != nil {
		t.Error("kongContextFrom of empty context is not nil")
	}
}
