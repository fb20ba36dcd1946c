// Package cli is responsible for the flywheelcfg command surface: it parses
// command-line arguments with cobra, validates user input, builds the App and
// translates failures into process exit codes.
package cli
