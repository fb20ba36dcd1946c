package configfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/pelletier/go-toml/v2"
	"github.com/vk/flywheelcfg/internal/flywheel"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Encode renders cfg in format f. The record is validated first so an
// invalid record is never written.
func Encode(cfg *flywheel.Config, f Format) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch f {
	case Python:
		return encodePython(cfg), nil
	case HCL:
		return encodeHCL(cfg), nil
	case JSON:
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode json: %w", err)
		}
		return append(out, '\n'), nil
	case YAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case TOML:
		out, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode toml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported config format %q", f)
	}
}

func encodeHCL(cfg *flywheel.Config) []byte {
	names := make([]cty.Value, len(cfg.ControllerTypes))
	for i, ct := range cfg.ControllerTypes {
		names[i] = cty.StringVal(string(ct))
	}
	inverted := make([]cty.Value, len(cfg.MotorsInverted))
	for i, b := range cfg.MotorsInverted {
		inverted[i] = cty.BoolVal(b)
	}

	file := hclwrite.NewEmptyFile()
	body := file.Body()
	body.SetAttributeValue(flywheel.FieldUnits, cty.StringVal(string(cfg.Units)))
	body.SetAttributeValue(flywheel.FieldControllerTypes, cty.TupleVal(names))
	body.SetAttributeValue(flywheel.FieldMotorPorts, intsVal(cfg.MotorPorts))
	body.SetAttributeValue(flywheel.FieldMotorsInverted, cty.TupleVal(inverted))
	body.SetAttributeValue(flywheel.FieldEncoderEPR, cty.NumberIntVal(int64(cfg.EncoderEPR)))
	body.SetAttributeValue(flywheel.FieldEncoderPorts, intsVal(cfg.EncoderPorts))
	body.SetAttributeValue(flywheel.FieldEncoderInverted, cty.BoolVal(cfg.EncoderInverted))
	return hclwrite.Format(file.Bytes())
}

func intsVal(ints []int) cty.Value {
	vals := make([]cty.Value, len(ints))
	for i, n := range ints {
		vals[i] = cty.NumberIntVal(int64(n))
	}
	return cty.TupleVal(vals)
}

// encodePython writes the robotconfig.py layout the characterization tool
// evaluates, with the option lists as comments.
func encodePython(cfg *flywheel.Config) []byte {
	var b strings.Builder
	b.WriteString("{\n")

	b.WriteString("    # Unit of analysis\n    # Options:\n")
	for _, u := range flywheel.AllUnits() {
		fmt.Fprintf(&b, "    # '%s'\n", u)
	}
	fmt.Fprintf(&b, "    %q: %s,\n", flywheel.FieldUnits, pyString(string(cfg.Units)))

	b.WriteString("    # Class names of motor controllers used.\n    # Options:\n")
	for _, ct := range flywheel.AllControllerTypes() {
		fmt.Fprintf(&b, "    # '%s'\n", ct)
	}
	b.WriteString("    # If you only have 1 motor all the below arrays should only have one element\n")
	names := make([]string, len(cfg.ControllerTypes))
	for i, ct := range cfg.ControllerTypes {
		names[i] = pyString(string(ct))
	}
	fmt.Fprintf(&b, "    %q: [%s],\n", flywheel.FieldControllerTypes, strings.Join(names, ", "))

	b.WriteString("    # Ports for the flywheel motor(s)\n    # The first port is the one with the encoder attached\n")
	fmt.Fprintf(&b, "    %q: %s,\n", flywheel.FieldMotorPorts, pyInts(cfg.MotorPorts))

	b.WriteString("    # Inversions for the flywheel motor(s)\n")
	bools := make([]string, len(cfg.MotorsInverted))
	for i, v := range cfg.MotorsInverted {
		bools[i] = pyBool(v)
	}
	fmt.Fprintf(&b, "    %q: [%s],\n", flywheel.FieldMotorsInverted, strings.Join(bools, ", "))

	b.WriteString("    # Encoder edges-per-revolution (*NOT* cycles per revolution!)\n")
	b.WriteString("    # This value should be the edges per revolution *of the flywheel*, and so\n")
	b.WriteString("    # should take into account gearing between the encoder and the wheels\n")
	fmt.Fprintf(&b, "    %q: %d,\n", flywheel.FieldEncoderEPR, cfg.EncoderEPR)

	b.WriteString("    # Ports for the flywheel encoder\n")
	fmt.Fprintf(&b, "    %q: %s,\n", flywheel.FieldEncoderPorts, pyInts(cfg.EncoderPorts))

	b.WriteString("    # Whether the encoder is inverted\n")
	fmt.Fprintf(&b, "    %q: %s,\n", flywheel.FieldEncoderInverted, pyBool(cfg.EncoderInverted))

	b.WriteString("}\n")
	return []byte(b.String())
}

func pyString(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func pyInts(ints []int) string {
	parts := make([]string, len(ints))
	for i, n := range ints {
		parts[i] = strconv.Itoa(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func pyBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
