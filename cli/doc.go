// Package cli contains the command line interface for eldiro.
//
// # Usage
//
//	eldiro eval 'let x = 6 * 7' x     # prints () then 42
//	eldiro run prog.eld               # prints the value of the last statement
//	eldiro fmt --format=yaml prog.eld # prints the program as YAML
//	eldiro                            # starts the REPL
//
// # Configuration
//
// Flag defaults may be overridden by two files in the configuration
// directory (see [pkg.ConfigDir]):
//
//   - config.json: a JSON object keyed by flag name.
//   - config: an eldiro program whose integer bindings set the flag with the
//     same name, compared without hyphens and ignoring case
//     (let historyLimit = 500 sets --history-limit).
//
// Command-line flags take precedence over both.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp layout (RFC3339, Kitchen, none, ...)
//   - --[no-]log-caller: Include caller information in log output
//   - --[no-]log-pretty: Colorize log output
//
// # Profiling Options
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: <cache>/pprof)
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
package cli
