package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/brdbfs/internal/app"
	"github.com/GriffinCanCode/brdbfs/internal/config"
	"github.com/GriffinCanCode/brdbfs/internal/logging"
	"github.com/GriffinCanCode/brdbfs/internal/metrics"
)

const programName = "brdbfs"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run parses args and executes one command, returning the exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	code := app.ExitOK

	cliApp := &cli.App{
		Name:            programName,
		Usage:           "inspect the virtual filesystem inside a world file",
		UsageText:       programName + " [flags] <world file path> <ls|read|edit> <path>",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "log level (debug, info, warn, error)"},
			&cli.BoolFlag{Name: "log-dev", Usage: "human readable console logs"},
			&cli.StringFlag{Name: "schema-format", Usage: "schema output format (text, json, yaml)"},
			&cli.BoolFlag{Name: "no-verify", Usage: "skip blob hash verification"},
			&cli.StringFlag{Name: "metrics-file", Usage: "write Prometheus metrics to `FILE`"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			logCfg := logging.DefaultConfig()
			logCfg.Level = cfg.LogLevel
			logCfg.Development = cfg.LogDev
			logger, err := logging.New(logCfg)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()

			logger.Debug("starting", zap.Strings("args", c.Args().Slice()))

			d := &app.Dispatcher{
				Program: invokedAs(args),
				Stdout:  stdout,
				Stderr:  stderr,
				Config:  cfg,
				Logger:  logger,
				Metrics: metrics.New(),
			}
			code = d.Run(c.Context, c.Args().Slice())
			return nil
		},
	}

	if err := cliApp.RunContext(ctx, args); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return app.ExitFatal
	}
	return code
}

// loadConfig reads the environment, then applies any flags that were set.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-dev") {
		cfg.LogDev = c.Bool("log-dev")
	}
	if c.IsSet("schema-format") {
		cfg.SchemaFormat = c.String("schema-format")
	}
	if c.Bool("no-verify") {
		cfg.VerifyHashes = false
	}
	if c.IsSet("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// invokedAs returns the program name as typed by the user.
func invokedAs(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return programName
	}
	return args[0]
}
