// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/lvmat/internal/config"
	"github.com/katalvlaran/lvmat/internal/job"
	"github.com/katalvlaran/lvmat/internal/logging"
	"github.com/katalvlaran/lvmat/matrix"
)

// Exit codes.
const (
	exitOK    = 0
	exitJob   = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is main without the process globals, so tests can drive it.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("densecalc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	jobPath := fs.String("job", "", "Path to the YAML job file (required)")
	format := fs.String("format", job.FormatText, "Output format: text or yaml")
	precision := fs.Int("precision", 0, "Significant digits, -1 for shortest exact (default from DENSECALC_PRECISION)")
	dev := fs.Bool("dev", false, "Development logging (console encoding)")
	timeout := fs.Duration("timeout", 0, "Abort the job after this long (0 = no limit)")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *jobPath == "" && fs.NArg() == 1 {
		*jobPath = fs.Arg(0)
	}
	if *jobPath == "" {
		fmt.Fprintln(stderr, "densecalc: -job is required")
		fs.Usage()

		return exitUsage
	}
	if *format != job.FormatText && *format != job.FormatYAML {
		fmt.Fprintf(stderr, "densecalc: unknown format %q\n", *format)

		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "densecalc: %v\n", err)

		return exitUsage
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "precision":
			cfg.Precision = *precision
		case "dev":
			cfg.Logging.Development = *dev
		}
	})
	if err = cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "densecalc: %v\n", err)

		return exitUsage
	}

	log, err := logging.New(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(stderr, "densecalc: logger: %v\n", err)

		return exitUsage
	}
	defer func() { _ = log.Sync() }()
	matrix.SetLogger(log)
	defer matrix.SetLogger(nil)

	doc, err := job.Load(*jobPath)
	if err != nil {
		log.Error("load job", zap.String("path", *jobPath), zap.Error(err))

		return exitJob
	}
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	started := time.Now()
	runner := job.NewRunner(log.Named("job"), cfg.Precision, cfg.Options()...)
	results, err := runner.Run(ctx, doc)
	if werr := job.Write(stdout, *format, results); werr != nil {
		log.Error("write results", zap.Error(werr))

		return exitUsage
	}
	if err != nil {
		log.Error("job failed", zap.String("path", *jobPath), zap.Error(err))

		return exitJob
	}
	log.Debug("job done", zap.String("path", *jobPath), zap.Duration("elapsed", time.Since(started)))

	return exitOK
}
