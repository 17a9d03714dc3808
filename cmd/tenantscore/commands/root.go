package commands

import (
	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/tenantscore/pkg/config"
	"github.com/YuminosukeSato/tenantscore/pkg/errors"
	"github.com/YuminosukeSato/tenantscore/pkg/log"
	"github.com/YuminosukeSato/tenantscore/sklearn/export"
)

// app holds the state one invocation shares between the root command and
// its subcommands. It is filled in by PersistentPreRunE.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg      *config.Config
	provider log.LoggerProvider
	logger   log.Logger
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "tenantscore",
		Short:        "Export and score tenant creditworthiness models",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "json or console (overrides config)")

	root.AddCommand(exportCmd(a), scoreCmd(a), inspectCmd(a), verifyCmd(a), sweepCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	c, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		c.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		c.Logging.Format = a.logFormat
	}
	if err := c.Validate(); err != nil {
		return err
	}
	level, err := log.ParseLevel(c.Logging.Level)
	if err != nil {
		return err
	}

	a.cfg = c
	a.provider = log.NewZerologProvider(cmd.ErrOrStderr(), c.Logging.Format, level)
	a.logger = a.provider.GetLoggerWithName("cli").With(log.OperationKey, cmd.Name())
	return nil
}

func (a *app) exporter() *export.Exporter {
	return export.NewExporter(export.WithLogger(a.provider.GetLoggerWithName("export")))
}

// run converts panics inside a command into errors.
func (a *app) run(op string, fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := errors.SafeExecute(op, func() error { return fn(cmd, args) })
		if err != nil {
			a.logger.Error("Command failed", err, log.ErrorTypeKey, errorType(err))
		}
		return err
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, errors.ErrMalformedModel):
		return "MalformedModel"
	case errors.Is(err, errors.ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, errors.ErrNonFiniteValue):
		return "NonFiniteValue"
	default:
		var p *errors.PanicError
		if errors.As(err, &p) {
			return "Panic"
		}
		return "Error"
	}
}
