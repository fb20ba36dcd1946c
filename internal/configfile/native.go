// This file contains the conversion of generic Go values, as produced by the
// YAML and TOML decoders, into cty values for the shared decoder.

package configfile

import (
	"fmt"
	"math"
	"math/big"

	"github.com/pelletier/go-toml/v2"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

func parseYAML(src []byte) (cty.Value, error) {
	var doc any
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return cty.NilVal, err
	}
	return nativeToCty(doc)
}

func parseTOML(src []byte) (cty.Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(src, &doc); err != nil {
		return cty.NilVal, err
	}
	return nativeToCty(doc)
}

// nativeToCty recursively converts a decoded document into cty. Mappings
// become objects and sequences become tuples, mirroring what the HCL and
// JSON parsers produce.
func nativeToCty(v any) (cty.Value, error) {
	switch t := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case string:
		return cty.StringVal(t), nil
	case bool:
		return cty.BoolVal(t), nil
	case int:
		return cty.NumberIntVal(int64(t)), nil
	case int64:
		return cty.NumberIntVal(t), nil
	case uint64:
		return cty.NumberUIntVal(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return cty.NilVal, fmt.Errorf("number %v is not finite", t)
		}
		return cty.NumberVal(big.NewFloat(t)), nil
	case []any:
		if len(t) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(t))
		for i, e := range t {
			ev, err := nativeToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in element %d: %w", i, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		attrs := make(map[string]cty.Value, len(t))
		for k, e := range t {
			ev, err := nativeToCty(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in attribute '%s': %w", k, err)
			}
			attrs[k] = ev
		}
		return cty.ObjectVal(attrs), nil
	case map[any]any:
		attrs := make(map[string]any, len(t))
		for k, e := range t {
			ks, ok := k.(string)
			if !ok {
				return cty.NilVal, fmt.Errorf("mapping keys must be strings, got %T", k)
			}
			attrs[ks] = e
		}
		return nativeToCty(attrs)
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}
