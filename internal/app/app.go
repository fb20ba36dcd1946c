package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/vk/flywheelcfg/internal/configfile"
	"github.com/vk/flywheelcfg/internal/ctxlog"
)

// ErrInvalidConfig is returned when at least one config file failed to load
// or validate.
var ErrInvalidConfig = errors.New("invalid flywheel config")

// ErrExists is returned by Init when the target file is already present.
var ErrExists = errors.New("file already exists")

// App encapsulates the application's dependencies and configuration.
// Command results go to outW; diagnostics go to the logger.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	loader *configfile.Loader
}

// NewApp is the constructor for the application. It returns a fully
// initialized App with its own isolated logger writing to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	return &App{
		outW:   outW,
		logger: logger,
		loader: configfile.NewLoader(),
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
