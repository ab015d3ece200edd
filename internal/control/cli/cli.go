// Package cli provides the command-line interface for tripplan.
package cli

type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	TuiCommand       TuiCommand       `command:"tui" subcommands-optional:"true"`
	ServeCommand     ServeCommand     `command:"serve" subcommands-optional:"true"`
	ExportCommand    ExportCommand    `command:"export" subcommands-optional:"true"`
	AddCommand       AddCommand       `command:"add" subcommands-optional:"true"`
	SummarizeCommand SummarizeCommand `command:"summarize" subcommands-optional:"true"`
	VersionCommand   VersionCommand   `command:"version" subcommands-optional:"true"`
}

var Opts CommandLineOpts
