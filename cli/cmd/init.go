package cmd

import (
	"context"
	"log/slog"
	"os"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/eldiro/lang"
	"github.com/ardnew/eldiro/log"
	"github.com/ardnew/eldiro/profile"
)

// Init writes a configuration program holding the current value of every
// integer and boolean flag.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrNoKongContext.With(slog.String("command", "init"))
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		return ErrWriteConfig.With(slog.String("var", ConfigIdentifier))
	}

	// Check if file exists and force not set
	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(ErrFileExists)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	prog := i.program(ktx)

	if err := lang.Format(ctx, file, prog); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
		slog.Int("bindings", len(prog.Stmts)),
	)

	return nil
}

// program builds a `let` statement for each flag that a configuration
// program can set. Global flags take their current value; the flags of each
// command take their default.
func (i *Init) program(ktx *kong.Context) *lang.Program {
	var prog lang.Program

	seen := make(map[string]struct{})

	add := func(flag *kong.Flag, value reflect.Value) {
		name := identifier(flag.Name)
		if _, dup := seen[name]; dup || ignoreFlag(flag) {
			return
		}

		// Negative numbers have no literal syntax.
		n, ok := number(value)
		if !ok || n < 0 {
			return
		}

		seen[name] = struct{}{}
		prog.Stmts = append(prog.Stmts, &lang.BindingDef{
			Name: name,
			Val:  lang.Number(n),
		})
	}

	for _, flag := range ktx.Model.Flags {
		if val := ktx.FlagValue(flag); val != nil {
			add(flag, reflect.ValueOf(val))
		}
	}

	for _, node := range ktx.Model.Children {
		for _, flag := range node.Flags {
			if v, ok := parseDefault(flag); ok {
				add(flag, v)
			}
		}
	}

	return &prog
}

// ignoreFlag reports whether flag is never written to a configuration.
func ignoreFlag(flag *kong.Flag) bool {
	return flag.Hidden || slices.ContainsFunc(
		[]string{"help", "force", profile.Tag},
		func(s string) bool { return strings.HasPrefix(flag.Name, s) },
	)
}

// parseDefault returns the default value of flag, typed like its target.
func parseDefault(flag *kong.Flag) (reflect.Value, bool) {
	if !flag.Target.IsValid() {
		return reflect.Value{}, false
	}

	switch flag.Target.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(flag.Default)
		if err != nil {
			return reflect.Value{}, false
		}

		return reflect.ValueOf(b), true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(flag.Default, 10, 64)
		if err != nil {
			return reflect.Value{}, false
		}

		return reflect.ValueOf(n), true

	default:
		return reflect.Value{}, false
	}
}

// number converts a boolean or integer flag value to a literal.
func number(v reflect.Value) (int64, bool) {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return 1, true
		}

		return 0, true

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true

	default:
		return 0, false
	}
}

// identifier converts a hyphenated flag name to a lower camel case
// identifier: "log-caller" becomes "logCaller".
func identifier(flag string) string {
	parts := strings.Split(flag, "-")

	for i := 1; i < len(parts); i++ {
		if p := parts[i]; p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}

	return strings.Join(parts, "")
}
