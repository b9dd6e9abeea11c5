// ABOUTME: CLI entry point for the inc plugin: flags, config, signals, engine loop
// ABOUTME: stdout carries only protocol responses; diagnostics go to stderr

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/mauromedda/nu-plugin-inc-go/internal/config"
	"github.com/mauromedda/nu-plugin-inc-go/internal/engine"
	pilog "github.com/mauromedda/nu-plugin-inc-go/internal/log"
	"github.com/mauromedda/nu-plugin-inc-go/internal/protocol"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	args, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if args.help {
		args.printHelp(os.Stdout)
		os.Exit(0)
	}

	if args.version {
		fmt.Printf("nu_plugin_inc %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if err := run(args, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads settings and serves the protocol on stdin/stdout until quit,
// end of input or a termination signal.
func run(args cliArgs, stdin *os.File, stdout io.Writer) error {
	cfg, err := config.Load(args.configPath)
	if err != nil {
		return err
	}
	args.applyTo(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level, _ := pilog.ParseLevel(cfg.LogLevel)
	pilog.SetLevel(level)

	if term.IsTerminal(int(stdin.Fd())) {
		pilog.Warn("stdin is a terminal; this plugin expects newline-delimited JSON from its host")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := bufio.NewWriter(stdout)
	eng := engine.New(
		protocol.NewLineReader(stdin, cfg.MaxLineBytes),
		protocol.NewWriter(out),
		engine.WithMaxReadErrors(cfg.MaxReadErrors),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer stop()
		return eng.Run(gctx)
	})
	// A blocked read only returns once stdin is closed.
	g.Go(func() error {
		<-gctx.Done()
		_ = stdin.Close()
		return nil
	})

	err = g.Wait()
	s := eng.Stats()
	pilog.Debug("stopped: lines=%d init=%d filter=%d quit=%d read_errors=%d decode_errors=%d responses=%d",
		s.Lines, s.Inits, s.Filters, s.Quits, s.ReadErrors, s.DecodeErrors, s.Responses)

	if errors.Is(err, context.Canceled) {
		pilog.Info("interrupted")
		return nil
	}
	return err
}
