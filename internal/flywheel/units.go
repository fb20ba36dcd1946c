package flywheel

import (
	"fmt"
	"math"
	"strings"
)

// Units is the unit system the characterization data is analysed in.
type Units string

const (
	Degrees   Units = "Degrees"
	Radians   Units = "Radians"
	Rotations Units = "Rotations"
)

// AllUnits returns every accepted unit in documentation order.
func AllUnits() []Units {
	return []Units{Degrees, Radians, Rotations}
}

// ParseUnits matches the exact, case-sensitive unit name.
func ParseUnits(s string) (Units, error) {
	for _, u := range AllUnits() {
		if string(u) == s {
			return u, nil
		}
	}
	return "", fmt.Errorf("unknown units %q, expected one of: %s", s, joinNames(AllUnits()))
}

// Valid reports whether u is one of the enumerated units.
func (u Units) Valid() bool {
	_, err := ParseUnits(string(u))
	return err == nil
}

func (u Units) String() string { return string(u) }

// PerRotation returns how many of u make up one flywheel rotation.
func (u Units) PerRotation() float64 {
	switch u {
	case Degrees:
		return 360
	case Radians:
		return 2 * math.Pi
	case Rotations:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u Units) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, fmt.Errorf("unknown units %q", string(u))
	}
	return []byte(u), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *Units) UnmarshalText(b []byte) error {
	parsed, err := ParseUnits(string(b))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func joinNames[T ~string](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = "'" + string(n) + "'"
	}
	return strings.Join(parts, ", ")
}
