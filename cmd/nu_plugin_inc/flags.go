// ABOUTME: CLI flag parsing with spf13/pflag
// ABOUTME: Supports --config, --log-level, --max-line-bytes, --max-read-errors, --version

package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/mauromedda/nu-plugin-inc-go/internal/config"
)

type cliArgs struct {
	configPath    string
	logLevel      string
	maxLineBytes  int
	maxReadErrors int
	version       bool
	help          bool

	flagSet *pflag.FlagSet
}

func parseFlags(args []string, stderr io.Writer) (cliArgs, error) {
	var a cliArgs
	fs := pflag.NewFlagSet("nu_plugin_inc", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&a.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&a.logLevel, "log-level", "", "Diagnostics level on stderr: debug, info, warn, error")
	fs.IntVar(&a.maxLineBytes, "max-line-bytes", 0, "Longest accepted input line in bytes")
	fs.IntVar(&a.maxReadErrors, "max-read-errors", 0, "Stop after this many consecutive read failures (0 = never)")
	fs.BoolVar(&a.version, "version", false, "Show version and exit")
	fs.BoolVarP(&a.help, "help", "h", false, "Show this help and exit")

	if err := fs.Parse(args); err != nil {
		return a, err
	}
	if fs.NArg() > 0 {
		return a, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	a.flagSet = fs
	return a, nil
}

// applyTo overrides settings with the flags given on the command line.
func (a cliArgs) applyTo(s *config.Settings) {
	if a.flagSet == nil {
		return
	}
	if a.flagSet.Changed("log-level") {
		s.LogLevel = a.logLevel
	}
	if a.flagSet.Changed("max-line-bytes") {
		s.MaxLineBytes = a.maxLineBytes
	}
	if a.flagSet.Changed("max-read-errors") {
		s.MaxReadErrors = a.maxReadErrors
	}
}

func (a cliArgs) printHelp(w io.Writer) {
	fmt.Fprintln(w, "nu_plugin_inc: increments integers and byte sizes for the host shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Speaks newline-delimited JSON on stdin/stdout; started by the host, not by hand.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	if a.flagSet != nil {
		fmt.Fprint(w, a.flagSet.FlagUsages())
	}
}
