package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vk/flywheelcfg/internal/app"
	"github.com/vk/flywheelcfg/internal/configfile"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// usageError marks bad invocations; they exit with code 2.
func usageError(err error) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

// failure marks a command that ran but did not succeed; it exits with code 1.
func failure(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: 1, Message: err.Error()}
}

// Execute runs the command line in args. Every non-nil error it returns is an
// *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	slog.Debug("CLI parser started.", "args", args)
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra rejects before a command runs (unknown commands, wrong
	// argument counts) is a usage error.
	return usageError(err)
}

// NewRootCommand builds the flywheelcfg command tree writing command output
// to outW and logs and usage errors to errW.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	var (
		logLevel    string
		logFormat   string
		application *app.App
	)

	root := &cobra.Command{
		Use:   "flywheelcfg",
		Short: "Author and check flywheel characterization wiring configs",
		Long: `flywheelcfg - validate, describe and convert the wiring record a flywheel
characterization tool reads: motor controller types, ports, inversions and
encoder settings.

Supported formats: python (robotconfig.py), hcl, json, yaml, toml.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.NewConfig(app.Config{
				LogLevel:  strings.ToLower(logLevel),
				LogFormat: strings.ToLower(logFormat),
			})
			if err != nil {
				return usageError(err)
			}
			application = app.NewApp(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg)
			application.Logger().Debug("CLI parameter validation complete.", "command", cmd.Name())
			return nil
		},
	}
	root.SetOut(outW)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")

	appFn := func() *app.App { return application }
	root.AddCommand(
		newValidateCommand(appFn),
		newShowCommand(appFn),
		newConvertCommand(appFn),
		newInitCommand(appFn),
		newWatchCommand(appFn),
	)
	return root
}

func parseFormatFlag(name, value string) (configfile.Format, error) {
	if value == "" {
		return "", nil
	}
	f, err := configfile.ParseFormat(value)
	if err != nil {
		return "", usageError(errors.New("--" + name + ": " + err.Error()))
	}
	return f, nil
}

// exactArgs wraps cobra.ExactArgs so a wrong count is reported as a usage
// error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

func minimumArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
