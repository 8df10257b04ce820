package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	inputKey  struct{}
	outputKey struct{}
)

// WithInput returns a new context.Context whose commands read the "-"
// source from r instead of os.Stdin.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

// WithOutput returns a new context.Context whose commands write results to
// w instead of os.Stdout.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is an opened program source.
type source struct {
	io.Reader

	name  string
	close func() error
}

// Close releases the underlying file, if any.
func (s source) Close() error {
	if s.close == nil {
		return nil
	}

	return s.close()
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// openSources opens the named sources in order.
//
// Files reached more than once, whether through symlinks or different
// relative paths, are opened only the first time. All occurrences of "-"
// are replaced with a single input reader placed last so it reads after all
// regular files. On error, every source already opened is closed.
func openSources(ctx context.Context, names []string) ([]source, error) {
	srcs := make([]source, 0, len(names))
	seen := make(map[fileKey]struct{})
	hasStdin := false

	closeAll := func() {
		for _, s := range srcs {
			_ = s.Close()
		}
	}

	for _, name := range names {
		if name == stdinSource {
			hasStdin = true

			continue
		}

		src, ok, err := openUniqueFile(name, seen)
		if err != nil {
			closeAll()

			return nil, ErrOpenSource.Wrap(err).
				With(slog.String("path", name))
		}

		if ok {
			srcs = append(srcs, src)
		}
	}

	if hasStdin {
		srcs = append(srcs, source{Reader: inputFrom(ctx), name: stdinSource})
	}

	return srcs, nil
}

// openUniqueFile opens the file at path if it hasn't been seen before.
// It resolves symlinks and uses device/inode to detect duplicates, returning
// false without error for a duplicate.
func openUniqueFile(
	path string,
	seen map[fileKey]struct{},
) (source, bool, error) {
	// Resolve to absolute path to handle relative path duplicates.
	absPath, err := filepath.Abs(path)
	if err != nil {
		return source{}, false, err
	}

	// Resolve symlinks to their target.
	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return source{}, false, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return source{}, false, err
	}

	if key, ok := makeFileKey(info); ok {
		if _, exists := seen[key]; exists {
			return source{}, false, nil
		}

		seen[key] = struct{}{}
	}

	file, err := os.Open(resolved)
	if err != nil {
		return source{}, false, err
	}

	return source{Reader: file, name: path, close: file.Close}, true, nil
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
