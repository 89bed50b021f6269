package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

// version is set by the release build; left blank in development builds.
var version string

func parseOptions(args []string) (cliOptions, error) {
	var opts cliOptions
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[option...] destination source.vcf..."

	if _, err := parser.ParseArgs(args); err != nil {
		return opts, err
	}

	if opts.Config != "" {
		if err := loadConfigDefaults(opts.Config, &opts); err != nil {
			return opts, fmt.Errorf("cannot read config file: %w", err)
		}
	}

	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			fmt.Println(err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	zapConfig := zap.NewProductionConfig()
	if len(opts.Verbose) > 0 {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapConfig.Encoding = "console"
	zapConfig.EncoderConfig.TimeKey = ""
	baseLogger, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer baseLogger.Sync()
	logger := baseLogger.Sugar()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := Run(ctx, logger, opts); err != nil {
		logger.Errorw("run failed", "error", err)
		os.Exit(1)
	}
}
