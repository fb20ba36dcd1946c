package flywheel

import (
	"fmt"
	"slices"
)

// Wire names of the record's fields. The characterization tool reads these
// keys verbatim, so they must never change.
const (
	FieldUnits           = "units"
	FieldControllerTypes = "controllerTypes"
	FieldMotorPorts      = "motorPorts"
	FieldMotorsInverted  = "motorsInverted"
	FieldEncoderEPR      = "encoderEPR"
	FieldEncoderPorts    = "encoderPorts"
	FieldEncoderInverted = "encoderInverted"
)

// FieldNames returns the wire names in authoring order.
func FieldNames() []string {
	return []string{
		FieldUnits,
		FieldControllerTypes,
		FieldMotorPorts,
		FieldMotorsInverted,
		FieldEncoderEPR,
		FieldEncoderPorts,
		FieldEncoderInverted,
	}
}

// Config is the flywheel characterization wiring record. The three motor
// slices are parallel arrays: index i of each describes the same motor.
type Config struct {
	// Units is the unit of analysis.
	Units Units `json:"units" yaml:"units" toml:"units"`

	// ControllerTypes holds the class name of each motor controller.
	// A single-motor flywheel has one element here and in the two slices below.
	ControllerTypes []ControllerType `json:"controllerTypes" yaml:"controllerTypes" toml:"controllerTypes"`

	// MotorPorts holds the port of each motor. The first port is the motor
	// with the encoder attached.
	MotorPorts []int `json:"motorPorts" yaml:"motorPorts" toml:"motorPorts"`

	// MotorsInverted holds the inversion flag of each motor.
	MotorsInverted []bool `json:"motorsInverted" yaml:"motorsInverted" toml:"motorsInverted"`

	// EncoderEPR is the encoder resolution in edges per revolution (not
	// cycles) of the flywheel itself, so gearing between encoder and
	// flywheel is already accounted for.
	EncoderEPR int `json:"encoderEPR" yaml:"encoderEPR" toml:"encoderEPR"`

	// EncoderPorts holds the A and B channel ports of the encoder.
	EncoderPorts []int `json:"encoderPorts" yaml:"encoderPorts" toml:"encoderPorts"`

	// EncoderInverted reports whether the encoder direction is inverted.
	EncoderInverted bool `json:"encoderInverted" yaml:"encoderInverted" toml:"encoderInverted"`
}

// Default returns the wiring of the two-motor shooter flywheel: a Talon SRX
// carrying the encoder on CAN 20 and an inverted Victor SPX follower on 21.
func Default() Config {
	return Config{
		Units:           Rotations,
		ControllerTypes: []ControllerType{WPITalonSRX, WPIVictorSPX},
		MotorPorts:      []int{20, 21},
		MotorsInverted:  []bool{false, true},
		EncoderEPR:      2048,
		EncoderPorts:    []int{8, 9},
		EncoderInverted: true,
	}
}

// Clone returns a deep copy of c.
func (c *Config) Clone() Config {
	out := *c
	out.ControllerTypes = slices.Clone(c.ControllerTypes)
	out.MotorPorts = slices.Clone(c.MotorPorts)
	out.MotorsInverted = slices.Clone(c.MotorsInverted)
	out.EncoderPorts = slices.Clone(c.EncoderPorts)
	return out
}

// Validate checks every invariant of the record and reports all violations
// in one *ValidationError.
func (c *Config) Validate() error {
	verr := &ValidationError{}

	if !c.Units.Valid() {
		verr.add(InvalidUnits, FieldUnits, "unknown units %q, expected one of: %s", string(c.Units), joinNames(AllUnits()))
	}

	for i, ct := range c.ControllerTypes {
		if !ct.Valid() {
			verr.add(InvalidController, indexed(FieldControllerTypes, i), "unknown controller type %q, expected one of: %s", string(ct), joinNames(AllControllerTypes()))
		}
	}

	n := len(c.ControllerTypes)
	if n == 0 {
		verr.add(NoMotors, FieldControllerTypes, "at least one motor controller is required")
	}
	if len(c.MotorPorts) != n {
		verr.add(LengthMismatch, FieldMotorPorts, "has %d elements but %s has %d", len(c.MotorPorts), FieldControllerTypes, n)
	}
	if len(c.MotorsInverted) != n {
		verr.add(LengthMismatch, FieldMotorsInverted, "has %d elements but %s has %d", len(c.MotorsInverted), FieldControllerTypes, n)
	}

	// Ports only clash within one addressing space: CAN 20 and PWM 20 are
	// different devices.
	seen := make(map[string]int)
	for i, port := range c.MotorPorts {
		if port < 0 {
			verr.add(InvalidPort, indexed(FieldMotorPorts, i), "port %d must not be negative", port)
			continue
		}
		if i >= n {
			continue
		}
		key := fmt.Sprintf("%s/%d", c.ControllerTypes[i].Bus(), port)
		if first, dup := seen[key]; dup {
			verr.add(DuplicatePort, indexed(FieldMotorPorts, i), "%s port %d is already used by motor %d", c.ControllerTypes[i].Bus(), port, first)
			continue
		}
		seen[key] = i
	}

	if c.EncoderEPR <= 0 {
		verr.add(InvalidEPR, FieldEncoderEPR, "edges per revolution must be positive, got %d", c.EncoderEPR)
	}

	if len(c.EncoderPorts) != 2 {
		verr.add(InvalidEncoderPorts, FieldEncoderPorts, "exactly 2 ports (channel A and B) are required, got %d", len(c.EncoderPorts))
	}
	for i, port := range c.EncoderPorts {
		if port < 0 {
			verr.add(InvalidPort, indexed(FieldEncoderPorts, i), "port %d must not be negative", port)
		}
	}
	if len(c.EncoderPorts) == 2 && c.EncoderPorts[0] == c.EncoderPorts[1] {
		verr.add(DuplicatePort, FieldEncoderPorts, "channel A and B cannot share port %d", c.EncoderPorts[0])
	}

	return verr.orNil()
}

func indexed(field string, i int) string {
	return fmt.Sprintf("%s[%d]", field, i)
}
