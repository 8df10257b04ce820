package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/eldiro/lang"
	"github.com/ardnew/eldiro/log"
)

// resolve returns a [kong.ConfigurationLoader] for configuration files
// written in eldiro itself.
//
// The file is evaluated as a program in a fresh environment, and every
// binding left in that environment sets the flag of the same name. Since the
// language only has integers, bindings can set numeric flags and boolean
// flags (0 is false, anything else true). Identifiers cannot contain hyphens,
// so names are matched ignoring case with the hyphens of the flag removed:
//
//	let historyLimit = 500
//	let logCaller = 1
//
// is equivalent to --history-limit=500 --log-caller=true.
//
// A file that fails to parse or evaluate is reported and otherwise ignored.
// Command-line flags override configuration values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		logger := log.Default()

		prog, err := lang.ParseReader(ctx, r, lang.WithLogger(logger))
		if err != nil {
			logger.WarnContext(ctx, "ignoring configuration",
				slog.Any("error", err))

			return config{}, nil
		}

		env := lang.NewEnv()

		if _, err := prog.Eval(env); err != nil {
			logger.WarnContext(ctx, "ignoring configuration",
				slog.Any("error", err))

			return config{}, nil
		}

		return makeConfig(env), nil
	}
}

// config implements [kong.Resolver] for eldiro configuration programs.
type config map[string]int64

// makeConfig collects the bindings visible from env, keyed by [flagKey].
func makeConfig(env *lang.Env) config {
	c := make(config)

	for name, val := range env.Bindings() {
		if n, ok := val.Int(); ok {
			c[flagKey(name)] = n
		}
	}

	return c
}

// flagKey normalizes a flag or binding name for lookup.
func flagKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", ""))
}

// Validate implements [kong.Resolver].
func (c config) Validate(*kong.Application) error {
	// The program was already evaluated successfully.
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	n, ok := c[flagKey(flag.Name)]
	if !ok {
		return nil, nil
	}

	// Kong parses resolved values from strings.
	if flag.IsBool() {
		return strconv.FormatBool(n != 0), nil
	}

	return strconv.FormatInt(n, 10), nil
}
