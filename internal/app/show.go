package app

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/vk/flywheelcfg/internal/ctxlog"
)

// Show prints a human-readable description of the wiring in the config at
// path.
func (a *App) Show(ctx context.Context, path string) error {
	ctx = a.withLogger(ctx)
	ctxlog.FromContext(ctx).Debug("Show started.", "path", path)

	cfg, err := a.loader.Load(ctx, path)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.outW, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Config:\t%s\n", path)
	fmt.Fprintf(tw, "Units:\t%s\n", cfg.Units)
	fmt.Fprintf(tw, "Distance per edge:\t%g %s\n", cfg.DistancePerEdge(), cfg.Units)
	fmt.Fprintf(tw, "Encoder:\tports %d/%d, %d EPR, %s\n",
		cfg.EncoderPorts[0], cfg.EncoderPorts[1], cfg.EncoderEPR, inversion(cfg.EncoderInverted))
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(a.outW, "Motors:")
	tw = tabwriter.NewWriter(a.outW, 0, 0, 2, ' ', 0)
	for _, m := range cfg.Motors() {
		marker := ""
		if m.HasEncoder {
			marker = "[encoder]"
		}
		fmt.Fprintf(tw, "  #%d\t%s\t%s %d\t%s\t%s\n", m.Index, m.Controller, m.Controller.Bus(), m.Port, inversion(m.Inverted), marker)
	}
	return tw.Flush()
}

func inversion(inverted bool) string {
	if inverted {
		return "inverted"
	}
	return "not inverted"
}
