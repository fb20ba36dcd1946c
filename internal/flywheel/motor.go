package flywheel

// Motor is a read-only view of one index of the motor arrays.
type Motor struct {
	Index      int
	Controller ControllerType
	Port       int
	Inverted   bool
	// HasEncoder is true for the motor the encoder is attached to.
	HasEncoder bool
}

// Motors returns one view per motor. On a record that has not been validated
// only the indexes present in all three motor arrays are returned.
func (c *Config) Motors() []Motor {
	n := min(len(c.ControllerTypes), len(c.MotorPorts), len(c.MotorsInverted))
	motors := make([]Motor, n)
	for i := range n {
		motors[i] = Motor{
			Index:      i,
			Controller: c.ControllerTypes[i],
			Port:       c.MotorPorts[i],
			Inverted:   c.MotorsInverted[i],
			HasEncoder: i == 0,
		}
	}
	return motors
}

// EncoderMotor returns the motor wired to the encoder, always motor 0. The
// boolean is false when the record describes no complete motor.
func (c *Config) EncoderMotor() (Motor, bool) {
	motors := c.Motors()
	if len(motors) == 0 {
		return Motor{}, false
	}
	return motors[0], true
}
