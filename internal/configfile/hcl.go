package configfile

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/flywheelcfg/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// parseHCLSyntax parses HCL native or JSON syntax and evaluates every
// top-level attribute into one cty object. Blocks are rejected; a flywheel
// record is flat.
func parseHCLSyntax(ctx context.Context, src []byte, filename string, f Format) (cty.Value, error) {
	logger := ctxlog.FromContext(ctx)
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	if f == JSON {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return cty.NilVal, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	logger.Debug("Parsed top-level attributes.", "file", filename, "format", f, "count", len(attrs))

	values := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		// No variables or functions are available; the record is pure data.
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("attribute '%s': %w", name, diags)
		}
		if !val.IsWhollyKnown() {
			return cty.NilVal, fmt.Errorf("attribute '%s': value must be a literal", name)
		}
		values[name] = val
	}
	return cty.ObjectVal(values), nil
}
