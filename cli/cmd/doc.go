// Package cmd implements the eldiro subcommands.
//
// Every command runs with a [context.Context] provided by kong. Commands
// read from the input and write to the output installed with [WithInput]
// and [WithOutput], defaulting to the standard streams.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the eldiro configuration program.
	ConfigIdentifier = "config"
)
