package app

import (
	"context"
	"fmt"

	"github.com/vk/flywheelcfg/internal/configfile"
	"github.com/vk/flywheelcfg/internal/ctxlog"
	"github.com/vk/flywheelcfg/internal/flywheel"
)

// Validate loads every config file named by paths (directories are searched
// recursively) and prints one OK or FAIL line per file.
func (a *App) Validate(ctx context.Context, paths ...string) error {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Validate started.", "paths", paths)

	results, err := a.loader.LoadAll(ctx, paths...)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("%w: no config files found in %v", ErrInvalidConfig, paths)
	}

	failed := 0
	for _, res := range results {
		a.report(res)
		if res.Err != nil {
			failed++
		}
	}
	logger.Info("Validation finished.", "files", len(results), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) failed validation", ErrInvalidConfig, failed, len(results))
	}
	return nil
}

// report prints the outcome of loading one file.
func (a *App) report(res configfile.Result) {
	if res.Err != nil {
		fmt.Fprintf(a.outW, "FAIL %s: %v\n", res.Path, res.Err)
		return
	}
	fmt.Fprintf(a.outW, "OK   %s: %s\n", res.Path, summary(res.Config))
}

func summary(cfg *flywheel.Config) string {
	enc, _ := cfg.EncoderMotor()
	return fmt.Sprintf("%d motor(s), %s, encoder on %s %s %d",
		len(cfg.ControllerTypes), cfg.Units, enc.Controller, enc.Controller.Bus(), enc.Port)
}
