// Package flywheel defines the typed wiring record for a flywheel
// characterization run: the unit system, the motor controllers driving the
// flywheel and the encoder measuring it.
//
// A Config is created once (loaded from a file or taken from Default) and is
// read-only afterwards. The parallel motor arrays always have the same length
// once Validate has succeeded, and motor 0 is the one wired to the encoder.
package flywheel
