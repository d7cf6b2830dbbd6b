package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/jmgilman/go/errors"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/brdbfs/internal/config"
	"github.com/GriffinCanCode/brdbfs/internal/logging"
	"github.com/GriffinCanCode/brdbfs/internal/metrics"
	"github.com/GriffinCanCode/brdbfs/internal/render"
	"github.com/GriffinCanCode/brdbfs/internal/schema"
	"github.com/GriffinCanCode/brdbfs/internal/storage"
	"github.com/GriffinCanCode/brdbfs/internal/vfs"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitFatal = 1
)

// Commands understood by the dispatcher.
const (
	CommandList = "ls"
	CommandRead = "read"
	CommandEdit = "edit"
)

// Command outcomes recorded in metrics.
const (
	outcomeOK            = "ok"
	outcomeNavError      = "navigation_error"
	outcomeFatal         = "fatal"
	outcomeUnimplemented = "unimplemented"
	outcomeInvalid       = "invalid"
)

// Dispatcher runs a single command. Zero-valued optional fields fall back to
// defaults: Config to config.Default, Logger to a no-op logger.
type Dispatcher struct {
	// Program is the name the tool was invoked as, shown in usage and
	// diagnostics.
	Program string
	Stdout  io.Writer
	Stderr  io.Writer
	Config  *config.Config
	Logger  *logging.Logger
	Metrics *metrics.Metrics
}

// Usage returns the one-line usage string.
func (d *Dispatcher) Usage() string {
	return fmt.Sprintf("usage: %s <world file path> <ls|read|edit> <path>", d.program())
}

// Run executes args, which are the world file path, the command and the
// entry path, and returns the process exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string) int {
	if len(args) < 3 {
		d.writeText(d.Usage())
		return ExitOK
	}

	worldPath, command := args[0], args[1]
	entryPath := strings.TrimLeft(args[2], "/")

	cfg := d.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := logging.OrNop(d.Logger).With(
		zap.String("run_id", uuid.NewString()),
		zap.String("command", command),
		zap.String("path", entryPath),
	)

	defer d.flushMetrics(cfg, logger)

	world, err := storage.Open(ctx, worldPath, storage.Options{
		Logger:       logger,
		Metrics:      d.Metrics,
		VerifyHashes: cfg.VerifyHashes,
	})
	if err != nil {
		return d.fatal(logger, command, "couldn't open world file", err)
	}
	defer world.Close()

	root, err := world.Tree(ctx)
	if err != nil {
		return d.fatal(logger, command, "couldn't read world tree", err)
	}

	switch command {
	case CommandList:
		return d.list(logger, root, entryPath)
	case CommandRead:
		return d.read(ctx, logger, cfg, world, entryPath)
	case CommandEdit:
		d.Metrics.RecordCommand(command, outcomeUnimplemented)
		d.writeText("edit is not implemented yet")
		return ExitOK
	default:
		d.Metrics.RecordCommand("other", outcomeInvalid)
		d.writeText(fmt.Sprintf("invalid command: %s. use one of: <ls|read|edit>", command))
		return ExitOK
	}
}

func (d *Dispatcher) list(logger *logging.Logger, root *vfs.Node, path string) int {
	out, err := vfs.ListPath(root, path)
	if err != nil {
		var nav *vfs.NavigationError
		if !stderrors.As(err, &nav) {
			return d.fatal(logger, CommandList, "couldn't list path", err)
		}
		logger.Debug("navigation failed", zap.Error(err))
		d.Metrics.RecordNavigationError(navigationReason(nav))
		d.Metrics.RecordCommand(CommandList, outcomeNavError)
		d.writeText("error: " + nav.Error())
		return ExitOK
	}

	d.Metrics.RecordCommand(CommandList, outcomeOK)
	d.writeText(out)
	return ExitOK
}

func (d *Dispatcher) read(ctx context.Context, logger *logging.Logger, cfg *config.Config, reader render.Reader, path string) int {
	format, err := schema.ParseFormat(cfg.SchemaFormat)
	if err != nil {
		return d.fatal(logger, CommandRead, "couldn't read file", err)
	}

	r := render.New(reader, d.Stdout, render.WithFormat(format), render.WithLogger(logger))
	text, err := r.RenderContext(ctx, path)
	if err != nil {
		return d.fatal(logger, CommandRead, "couldn't read file", err)
	}

	d.Metrics.RecordCommand(CommandRead, outcomeOK)
	// Raw kinds were already written verbatim
	if kind, _, _ := render.Classify(path); kind == render.KindMPS {
		return ExitOK
	}
	d.writeText(text)
	return ExitOK
}

// fatal reports err on stderr and returns the fatal exit code.
func (d *Dispatcher) fatal(logger *logging.Logger, command, msg string, err error) int {
	fields := []zap.Field{zap.String("code", string(errors.GetCode(err))), zap.Error(err)}
	var perr errors.PlatformError
	if errors.As(err, &perr) {
		for k, v := range perr.Context() {
			fields = append(fields, zap.Any(k, v))
		}
	}
	logger.Error(msg, fields...)

	if command != CommandList && command != CommandRead && command != CommandEdit {
		command = "other"
	}
	d.Metrics.RecordCommand(command, outcomeFatal)
	fmt.Fprintf(d.Stderr, "%s: %s: %v\n", d.program(), msg, err)
	return ExitFatal
}

// writeText writes text to stdout with exactly one trailing newline.
func (d *Dispatcher) writeText(text string) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	io.WriteString(d.Stdout, text)
}

func (d *Dispatcher) flushMetrics(cfg *config.Config, logger *logging.Logger) {
	if err := d.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
		logger.Warn("failed to write metrics", zap.String("file", cfg.MetricsFile), zap.Error(err))
	}
}

func (d *Dispatcher) program() string {
	if d.Program == "" {
		return "brdbfs"
	}
	return d.Program
}

func navigationReason(nav *vfs.NavigationError) string {
	switch nav.Reason {
	case vfs.ErrNoParentOfRoot:
		return "no_parent_of_root"
	case vfs.ErrNotFound:
		return "not_found"
	case vfs.ErrTraverseIntoFile:
		return "traverse_into_file"
	default:
		return "unknown"
	}
}
