package cmd

import "github.com/ardnew/eldiro/lang"

// Command errors. Like the [lang] sentinels, each may be wrapped and
// annotated with attributes while remaining comparable with errors.Is.
var (
	ErrOpenSource    = lang.NewError("open source")
	ErrWriteOutput   = lang.NewError("write output")
	ErrWriteConfig   = lang.NewError("write configuration file")
	ErrFileExists    = lang.NewError("file exists (use --force to overwrite)")
	ErrNoKongContext = lang.NewError("command context unavailable")
)
