package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/flywheelcfg/internal/configfile"
	"github.com/vk/flywheelcfg/internal/ctxlog"
	"github.com/vk/flywheelcfg/internal/flywheel"
)

// Convert loads the config at path and writes it to w in format to.
func (a *App) Convert(ctx context.Context, path string, to configfile.Format, w io.Writer) error {
	ctx = a.withLogger(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Convert started.", "path", path, "to", to)

	cfg, err := a.loader.Load(ctx, path)
	if err != nil {
		return err
	}

	out, err := configfile.Encode(cfg, to)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write %s output: %w", to, err)
	}
	logger.Debug("Convert finished.", "bytes", len(out))
	return nil
}

// ConvertFile is Convert writing to the file at outPath. An empty format is
// detected from the output file's extension.
func (a *App) ConvertFile(ctx context.Context, path string, to configfile.Format, outPath string, force bool) error {
	if to == "" {
		f, err := configfile.DetectFormat(outPath)
		if err != nil {
			return err
		}
		to = f
	}

	var buf bytes.Buffer
	if err := a.Convert(ctx, path, to, &buf); err != nil {
		return err
	}
	if err := writeNewFile(outPath, buf.Bytes(), force); err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "Wrote %s (%s)\n", outPath, to)
	return nil
}

// Init writes the default flywheel wiring to path. An empty format is
// detected from the file extension.
func (a *App) Init(ctx context.Context, path string, f configfile.Format, force bool) error {
	ctx = a.withLogger(ctx)
	ctxlog.FromContext(ctx).Debug("Init started.", "path", path, "format", f, "force", force)

	if f == "" {
		detected, err := configfile.DetectFormat(path)
		if err != nil {
			return err
		}
		f = detected
	}

	cfg := flywheel.Default()
	out, err := configfile.Encode(&cfg, f)
	if err != nil {
		return err
	}
	if err := writeNewFile(path, out, force); err != nil {
		return err
	}
	fmt.Fprintf(a.outW, "Wrote %s (%s)\n", path, f)
	return nil
}

// writeNewFile refuses to replace an existing file unless force is set.
func writeNewFile(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, path)
		}
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
