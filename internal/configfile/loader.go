package configfile

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/flywheelcfg/internal/ctxlog"
	"github.com/vk/flywheelcfg/internal/flywheel"
	"github.com/vk/flywheelcfg/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// Loader reads flywheel records from files in any supported format.
type Loader struct{}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Result is the outcome of loading one file.
type Result struct {
	Path   string
	Format Format
	Config *flywheel.Config
	Err    error
}

// Load reads the file at path, detecting its format from the extension.
func (l *Loader) Load(ctx context.Context, path string) (*flywheel.Config, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return l.Decode(ctx, src, path, f)
}

// Decode parses src as format f. filename is only used in error messages.
func (l *Loader) Decode(ctx context.Context, src []byte, filename string, f Format) (*flywheel.Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding flywheel config.", "file", filename, "format", f, "bytes", len(src))

	var (
		root cty.Value
		err  error
	)
	switch f {
	case Python:
		root, err = parsePython(src, filename)
	case HCL, JSON:
		root, err = parseHCLSyntax(ctx, src, filename, f)
	case YAML:
		root, err = parseYAML(src)
	case TOML:
		root, err = parseTOML(src)
	default:
		return nil, fmt.Errorf("unsupported config format %q", f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s config %s: %w", f, filename, err)
	}

	cfg, err := decodeValue(root)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", filename, err)
	}
	logger.Debug("Flywheel config decoded and validated.", "file", filename, "motors", len(cfg.ControllerTypes), "units", cfg.Units)
	return cfg, nil
}

// LoadAll loads every file named by paths. Directories are searched
// recursively for files with a recognised extension; paths that do not exist
// are skipped and every file is loaded at most once. A failing file does not
// stop the others: its error is reported in its Result.
func (l *Loader) LoadAll(ctx context.Context, paths ...string) ([]Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Config loader started.", "path_count", len(paths))

	files, err := l.findAllConfigFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered config files.", "count", len(files))

	results := make([]Result, 0, len(files))
	for _, file := range files {
		res := Result{Path: file}
		res.Format, _ = DetectFormat(file)
		res.Config, res.Err = l.Load(ctx, file)
		if res.Err != nil {
			logger.Debug("Config file failed to load.", "file", file, "error", res.Err)
		}
		results = append(results, res)
	}
	return results, nil
}

// findAllConfigFiles expands paths into a flat, de-duplicated list of files.
// Explicitly named files are kept whatever their extension so an unsupported
// one is reported rather than silently ignored.
func (l *Loader) findAllConfigFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}
		found, err := fsutil.FindFilesByExtension(path, Extensions()...)
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", path, err)
		}
		for _, p := range found {
			add(p)
		}
	}
	return allFiles, nil
}
