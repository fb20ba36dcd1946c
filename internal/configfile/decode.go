package configfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vk/flywheelcfg/internal/flywheel"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// fieldTypes is the schema shared by every format: the primitive type each
// field holds, wrapped in a list for the sequence fields.
var fieldTypes = map[string]cty.Type{
	flywheel.FieldUnits:           cty.String,
	flywheel.FieldControllerTypes: cty.List(cty.String),
	flywheel.FieldMotorPorts:      cty.List(cty.Number),
	flywheel.FieldMotorsInverted:  cty.List(cty.Bool),
	flywheel.FieldEncoderEPR:      cty.Number,
	flywheel.FieldEncoderPorts:    cty.List(cty.Number),
	flywheel.FieldEncoderInverted: cty.Bool,
}

// decodeValue turns a parsed document into a validated record.
func decodeValue(root cty.Value) (*flywheel.Config, error) {
	if root.IsNull() {
		return nil, fmt.Errorf("document is empty, expected a mapping of options")
	}
	ty := root.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("document must be a mapping of options, got %s", ty.FriendlyName())
	}
	attrs := root.AsValueMap()

	var unknown []string
	for name := range attrs {
		if _, ok := fieldTypes[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown option(s) %s; valid options are: %s",
			quoteAll(unknown), strings.Join(flywheel.FieldNames(), ", "))
	}

	var missing []string
	for _, name := range flywheel.FieldNames() {
		if _, ok := attrs[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required option(s) %s", quoteAll(missing))
	}

	var (
		cfg       flywheel.Config
		units     string
		ctrlNames []string
	)
	targets := map[string]any{
		flywheel.FieldUnits:           &units,
		flywheel.FieldControllerTypes: &ctrlNames,
		flywheel.FieldMotorPorts:      &cfg.MotorPorts,
		flywheel.FieldMotorsInverted:  &cfg.MotorsInverted,
		flywheel.FieldEncoderEPR:      &cfg.EncoderEPR,
		flywheel.FieldEncoderPorts:    &cfg.EncoderPorts,
		flywheel.FieldEncoderInverted: &cfg.EncoderInverted,
	}
	for _, name := range flywheel.FieldNames() {
		if err := decodeField(name, attrs[name], targets[name]); err != nil {
			return nil, err
		}
	}

	u, err := flywheel.ParseUnits(units)
	if err != nil {
		return nil, fmt.Errorf("option '%s': %w", flywheel.FieldUnits, err)
	}
	cfg.Units = u

	cfg.ControllerTypes = make([]flywheel.ControllerType, len(ctrlNames))
	for i, name := range ctrlNames {
		ct, err := flywheel.ParseControllerType(name)
		if err != nil {
			return nil, fmt.Errorf("option '%s' element %d: %w", flywheel.FieldControllerTypes, i, err)
		}
		cfg.ControllerTypes[i] = ct
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// decodeField checks the shape of one option strictly, then normalises it
// with cty's converter (tuples become lists) and stores it in target.
func decodeField(name string, v cty.Value, target any) error {
	want := fieldTypes[name]
	if err := checkShape(v, want); err != nil {
		return fmt.Errorf("option '%s': %w", name, err)
	}
	conv, err := convert.Convert(v, want)
	if err != nil {
		return fmt.Errorf("option '%s': %w", name, err)
	}
	if err := gocty.FromCtyValue(conv, target); err != nil {
		return fmt.Errorf("option '%s': %w", name, err)
	}
	return nil
}

// checkShape rejects the implicit conversions cty would otherwise allow,
// such as the string "20" standing in for a port number.
func checkShape(v cty.Value, want cty.Type) error {
	if v.IsNull() {
		return fmt.Errorf("value must not be null")
	}
	ty := v.Type()
	if !want.IsListType() {
		if !ty.Equals(want) {
			return fmt.Errorf("expected %s, got %s", want.FriendlyName(), ty.FriendlyName())
		}
		return nil
	}

	if !ty.IsTupleType() && !ty.IsListType() {
		return fmt.Errorf("expected a list of %s, got %s", want.ElementType().FriendlyName(), ty.FriendlyName())
	}
	elem := want.ElementType()
	i := 0
	for it := v.ElementIterator(); it.Next(); i++ {
		_, ev := it.Element()
		if ev.IsNull() {
			return fmt.Errorf("element %d must not be null", i)
		}
		if !ev.Type().Equals(elem) {
			return fmt.Errorf("element %d: expected %s, got %s", i, elem.FriendlyName(), ev.Type().FriendlyName())
		}
	}
	return nil
}

func quoteAll(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "'" + n + "'"
	}
	return strings.Join(parts, ", ")
}
