// Package app contains the operations behind the flywheelcfg commands:
// validating, describing, converting, creating and watching flywheel
// characterization configs. It is decoupled from the CLI so every operation
// can be driven directly from tests.
package app
