package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/vk/flywheelcfg/internal/app"
)

func newValidateCommand(appFn func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH...",
		Short: "Check config files or directories of config files",
		Args:  minimumArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failure(appFn().Validate(cmd.Context(), args...))
		},
	}
}

func newShowCommand(appFn func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PATH",
		Short: "Describe the motor and encoder wiring in a config",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failure(appFn().Show(cmd.Context(), args[0]))
		},
	}
}

func newConvertCommand(appFn func() *app.App) *cobra.Command {
	var (
		to      string
		outPath string
		force   bool
	)
	cmd := &cobra.Command{
		Use:   "convert PATH",
		Short: "Rewrite a config in another format",
		Example: `  flywheelcfg convert robotconfig.py --to hcl
  flywheelcfg convert flywheel.hcl -o robotconfig.py`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormatFlag("to", to)
			if err != nil {
				return err
			}
			if outPath != "" {
				return failure(appFn().ConvertFile(cmd.Context(), args[0], f, outPath, force))
			}
			if f == "" {
				return usageError(errors.New("--to is required when writing to stdout"))
			}
			return failure(appFn().Convert(cmd.Context(), args[0], f, cmd.OutOrStdout()))
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "Output format: python, hcl, json, yaml or toml.")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to this file instead of stdout; the format defaults to its extension.")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the output file if it exists.")
	return cmd
}

func newInitCommand(appFn func() *app.App) *cobra.Command {
	var (
		format string
		force  bool
	)
	cmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Write a config with the default two-motor flywheel wiring",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := parseFormatFlag("format", format)
			if err != nil {
				return err
			}
			return failure(appFn().Init(cmd.Context(), args[0], f, force))
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Output format; defaults to the file extension.")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the file if it exists.")
	return cmd
}

func newWatchCommand(appFn func() *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch PATH",
		Short: "Re-validate a config every time it is saved",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return failure(appFn().Watch(cmd.Context(), args[0]))
		},
	}
}
