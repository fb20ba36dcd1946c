package configfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies an authoring syntax.
type Format string

const (
	Python Format = "python"
	HCL    Format = "hcl"
	JSON   Format = "json"
	YAML   Format = "yaml"
	TOML   Format = "toml"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{Python, HCL, JSON, YAML, TOML}
}

var extensions = map[string]Format{
	".py":   Python,
	".hcl":  HCL,
	".json": JSON,
	".yaml": YAML,
	".yml":  YAML,
	".toml": TOML,
}

// Extensions returns the file extensions recognised when scanning
// directories.
func Extensions() []string {
	return []string{".py", ".hcl", ".json", ".yaml", ".yml", ".toml"}
}

// Extension is the canonical file extension written for f.
func (f Format) Extension() string {
	if f == Python {
		return ".py"
	}
	return "." + string(f)
}

func (f Format) String() string { return string(f) }

// ParseFormat accepts a format name or one of its extensions.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	if f, ok := extensions["."+strings.TrimPrefix(name, ".")]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q, expected one of: python, hcl, json, yaml, toml", s)
}

// DetectFormat picks the format from the file extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", fmt.Errorf("cannot detect config format of %s: unsupported extension %q", path, ext)
}
