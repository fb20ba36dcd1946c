// Package configfile reads and writes flywheel characterization records in
// every supported authoring format.
//
// Each format is first parsed into a cty.Value object and then handed to a
// single decoder, so field names, required keys, type rules and error
// messages are identical no matter which syntax the record was written in:
//
//	python  robotconfig.py dict literal, as read by the characterization tool
//	hcl     top-level attributes
//	json    a single object
//	yaml    a single mapping
//	toml    top-level keys
//
// A record returned by a Loader has always passed flywheel.Config.Validate.
package configfile
