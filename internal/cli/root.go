// Package cli implements the ascii-frog command line with cobra.
//
// Every subcommand that touches frogs goes through commands.CommandExecutor, so the
// CLI validates parameters and reports errors exactly like the HTTP API. Running the
// binary without a subcommand opens the terminal widget.
package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/froggen/ascii-frog/internal/clipboard"
	"github.com/froggen/ascii-frog/internal/commands"
	"github.com/froggen/ascii-frog/internal/config"
	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/logging"
	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/renderer"
	"github.com/froggen/ascii-frog/internal/service"
	"github.com/froggen/ascii-frog/internal/storage"
	"github.com/froggen/ascii-frog/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// annotationConfigOptional marks commands that run when --config names a missing file
const annotationConfigOptional = "config-optional"

// Options customizes the command tree
type Options struct {
	Version   string
	Clipboard *clipboard.Clipboard

	// IsTTY reports whether stdin and stdout are terminals; defaults to hasTTY
	IsTTY func() bool
}

// app holds state shared by the subcommands of one invocation
type app struct {
	opts Options

	cfgFile   string
	logLevel  string
	logFormat string

	cfg      *config.Config
	logger   zerolog.Logger
	svc      *service.Service
	executor *commands.CommandExecutor
}

// Execute runs the CLI and returns the process exit code
func Execute(version string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd(Options{Version: version})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), formatError(err))
		return 1
	}
	return 0
}

func formatError(err error) string {
	if !errors.IsAppError(err) {
		return "❌ ERROR: " + err.Error()
	}
	return errors.NewCLIErrorHandler(false, zerolog.Nop()).FormatError(err)
}

// NewRootCmd builds the full command tree
func NewRootCmd(opts Options) *cobra.Command {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.New()
	}
	if opts.IsTTY == nil {
		opts.IsTTY = hasTTY
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "ascii-frog",
		Short: "Render colorful ASCII-art frogs",
		Long: "ascii-frog renders ASCII-art frog templates, optionally colorized with a color scheme.\n" +
			"Run without a command to open the terminal widget.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/ascii-frog/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (console, json)")

	root.AddCommand(
		newRenderCmd(a),
		newRandomCmd(a),
		newCopyCmd(a),
		newListCmd(a),
		newSchemesCmd(a),
		newSearchCmd(a),
		newServeCmd(a),
		newTUICmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)

	return root
}

// setup loads configuration and logging before any subcommand runs
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		if cmd.Annotations[annotationConfigOptional] != "true" || errors.GetAppError(err).Code != errors.ErrCodeFileNotFound {
			return err
		}
		cfg = config.DefaultConfig()
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	logger, err := logging.Init(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return errors.ValidationError("Invalid log level").WithDetails(err.Error())
	}

	a.cfg = cfg
	a.logger = logger
	a.logger.Debug().Str("config", cfg.File).Msg("configuration loaded")
	return nil
}

// service builds the library, renderer and service on first use
func (a *app) service() (*service.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	lib, err := storage.NewLibrary(a.cfg.Catalog.Path, logging.Component("storage"))
	if err != nil {
		return nil, err
	}

	profile, err := renderer.ParseColorProfile(a.cfg.Render.ColorProfile)
	if err != nil {
		return nil, errors.ValidationError("Invalid color profile").WithDetails(err.Error())
	}
	format, _ := models.ParseFormat(a.cfg.Render.Format)
	r := renderer.NewRenderer(lib, renderer.WithColorProfile(profile), renderer.WithDefaultFormat(format))

	a.svc = service.NewService(lib, r, service.Options{
		Version:  a.opts.Version,
		Terminal: a.cfg.Terminal,
		Logger:   logging.Component("service"),
	})
	a.executor = commands.NewCommandExecutor(a.svc)
	return a.svc, nil
}

// execute runs a command and returns its data, or the command's error
func (a *app) execute(ctx context.Context, name string, params map[string]interface{}) (interface{}, error) {
	if _, err := a.service(); err != nil {
		return nil, err
	}

	result, err := a.executor.Execute(ctx, name, params)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, result.Err
	}
	return result.Data, nil
}

func (a *app) runTUI(cmd *cobra.Command) error {
	if !a.opts.IsTTY() {
		return errors.NewAppError(errors.ErrCodeInvalidInput, "The terminal widget requires an interactive terminal").
			WithDetails("try 'ascii-frog render classic' or 'ascii-frog --help'")
	}

	svc, err := a.service()
	if err != nil {
		return err
	}

	// the alt screen owns the terminal, so log only when stderr is redirected
	logger := zerolog.Nop()
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		logger = logging.Component("ui")
	}

	err = ui.Run(cmd.Context(), svc, ui.Options{
		Clipboard: a.opts.Clipboard,
		Logger:    logger,
	})
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func writeJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
