package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luchuanbaker/MyPojoToJson/internal/config"
	"github.com/luchuanbaker/MyPojoToJson/internal/logger"
	"github.com/luchuanbaker/MyPojoToJson/internal/orchestrator"
	"github.com/luchuanbaker/MyPojoToJson/internal/resolver"
)

type resolveFlags struct {
	configFile string
	sources    []string
	exclude    []string
	outputFile string
	copy       bool
	noDocs     bool
	quiet      bool
	maxDepth   int
	maxSteps   int
}

func NewResolveCmd() *cobra.Command {
	var f resolveFlags

	cmd := &cobra.Command{
		Use:   "resolve <type>",
		Short: "Print a JSON skeleton for a Java type",
		Long: `Print a JSON skeleton for a Java type found in the source roots.

The type may be a simple or qualified class name, a generic type or an array:

  pojo2json resolve User
  pojo2json resolve 'Map<String, List<com.acme.Order>>'
  pojo2json resolve 'Order[]' --source src/main/java

Settings are read from ` + config.DefaultFileName + ` in the current directory when present.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, args[0], f)
		},
	}

	cmd.Flags().StringVarP(&f.configFile, "config", "c", config.DefaultFileName, "Config file (optional unless set explicitly)")
	cmd.Flags().StringSliceVarP(&f.sources, "source", "s", nil, "Source root or .java file (repeatable; overrides config sources)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Extra glob of source paths to skip (repeatable)")
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&f.copy, "copy", false, "Copy the result to the clipboard")
	cmd.Flags().BoolVar(&f.noDocs, "no-docs", false, "Omit field comments and print plain JSON")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "Hide the progress spinner")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "Maximum nesting depth (overrides config; default 50)")
	cmd.Flags().IntVar(&f.maxSteps, "max-steps", 0, "Maximum resolution steps (overrides config; default 20000)")

	return cmd
}

func runResolve(cmd *cobra.Command, typeExpr string, f resolveFlags) error {
	if f.maxDepth < 0 || f.maxSteps < 0 {
		return errors.New("--max-depth and --max-steps must not be negative")
	}

	cfg, err := loadConfig(cmd, f.configFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	log := logger.Named("cli")

	var spinner *pterm.SpinnerPrinter
	if !f.quiet && !logger.JSONOutput {
		spinner = startSpinner(cmd.ErrOrStderr(), "Resolving "+typeExpr, log)
	}
	progress := func(p resolver.Progress) {
		if spinner != nil {
			spinner.UpdateText(fmt.Sprintf("Resolving %s (%d steps)", p.Type, p.Steps))
		}
	}

	res, err := orchestrator.Run(ctx, cfg, orchestrator.Request{
		Type:     typeExpr,
		Sources:  f.sources,
		Exclude:  f.exclude,
		MaxDepth: f.maxDepth,
		MaxSteps: f.maxSteps,
		NoDocs:   f.noDocs,
	}, progress)
	stopSpinner(spinner, log)
	if err != nil {
		return err
	}
	log.Debugw("resolve finished", "type", res.Root.String(), "steps", res.Steps, "classes", res.Classes)

	if f.outputFile != "" {
		if dir := filepath.Dir(f.outputFile); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return errors.Wrapf(err, "creating directory %s", dir)
			}
		}
		if err := os.WriteFile(f.outputFile, res.Output, 0o600); err != nil {
			return errors.Wrap(err, "writing output")
		}
	} else if _, err := cmd.OutOrStdout().Write(res.Output); err != nil {
		return errors.Wrap(err, "writing output")
	}

	if f.copy {
		if err := clipboard.WriteAll(string(res.Output)); err != nil {
			return errors.WithHint(errors.Wrap(err, "copy to clipboard"), "install xclip, xsel or wl-clipboard, or use --output")
		}
		if !f.quiet {
			fmt.Fprintln(cmd.ErrOrStderr(), pterm.Success.Sprint("Copied to clipboard"))
		}
	}
	return nil
}

// startSpinner returns nil when the spinner cannot be started; resolution
// proceeds without it.
func startSpinner(w io.Writer, text string, log *zap.SugaredLogger) *pterm.SpinnerPrinter {
	spinner, err := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		WithWriter(w).
		Start(text)
	if err != nil {
		log.Debugw("progress spinner unavailable", "error", err)
		return nil
	}
	return spinner
}

func stopSpinner(spinner *pterm.SpinnerPrinter, log *zap.SugaredLogger) {
	if spinner == nil {
		return
	}
	if err := spinner.Stop(); err != nil {
		log.Debugw("failed to stop progress spinner", "error", err)
	}
}

// loadConfig treats the default file as optional and an explicit --config as required.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve config path")
	}
	if cmd.Flags().Changed("config") {
		return config.Load(abs)
	}
	return config.LoadOptional(abs)
}
