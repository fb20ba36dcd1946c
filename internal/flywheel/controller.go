package flywheel

import "fmt"

// ControllerType is the class name of a motor controller as the
// characterization tool instantiates it.
type ControllerType string

const (
	Spark        ControllerType = "Spark"
	Victor       ControllerType = "Victor"
	VictorSP     ControllerType = "VictorSP"
	PWMTalonSRX  ControllerType = "PWMTalonSRX"
	PWMVictorSPX ControllerType = "PWMVictorSPX"
	WPITalonSRX  ControllerType = "WPI_TalonSRX"
	WPIVictorSPX ControllerType = "WPI_VictorSPX"
)

// AllControllerTypes returns every accepted controller class in
// documentation order.
func AllControllerTypes() []ControllerType {
	return []ControllerType{Spark, Victor, VictorSP, PWMTalonSRX, PWMVictorSPX, WPITalonSRX, WPIVictorSPX}
}

// ParseControllerType matches the exact, case-sensitive class name.
func ParseControllerType(s string) (ControllerType, error) {
	for _, c := range AllControllerTypes() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown controller type %q, expected one of: %s", s, joinNames(AllControllerTypes()))
}

// Valid reports whether c is one of the enumerated controller classes.
func (c ControllerType) Valid() bool {
	_, err := ParseControllerType(string(c))
	return err == nil
}

func (c ControllerType) String() string { return string(c) }

// IsCAN reports whether the controller is addressed by CAN ID. All other
// controllers are driven from a PWM channel.
func (c ControllerType) IsCAN() bool {
	return c == WPITalonSRX || c == WPIVictorSPX
}

// Bus names the addressing space of the controller's port.
func (c ControllerType) Bus() string {
	if c.IsCAN() {
		return "CAN"
	}
	return "PWM"
}

// MarshalText implements encoding.TextMarshaler.
func (c ControllerType) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown controller type %q", string(c))
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ControllerType) UnmarshalText(b []byte) error {
	parsed, err := ParseControllerType(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
