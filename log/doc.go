// Package log is the structured logger used throughout eldiro, built on
// [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options.
// Settings are fixed when the logger is made; [Logger.Wrap] derives a new
// logger with different settings.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatJSON),
//		log.WithCaller(true))
//
//	logger.Info("program loaded", slog.Int("statements", 3))
//
// Every method takes [slog.Attr] values rather than alternating keys and
// values. Methods without a context argument use [DefaultContextProvider].
//
// # Levels
//
// In addition to the slog levels, [LevelTrace] sits below [LevelDebug]. The
// interpreter logs each parse and evaluation step at this level.
//
// # Output
//
// [FormatText] and [FormatJSON] select the slog text and JSON handlers. With
// [WithPretty] enabled (the default) both are replaced by a human-oriented
// handler that colors values by kind when writing to a terminal.
//
// # Package logger
//
// The package-level functions ([Info], [Error], ...) write through a shared
// logger that [Config] reconfigures. The zero [Logger] discards everything.
package log
