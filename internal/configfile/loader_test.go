package configfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/flywheelcfg/internal/flywheel"
)

func TestLoad_RobotconfigPy(t *testing.T) {
	t.Parallel()

	// --- Act ---
	cfg, err := NewLoader().Load(testContext(t), filepath.Join("testdata", "robotconfig.py"))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, flywheel.Default(), *cfg)

	enc, ok := cfg.EncoderMotor()
	require.True(t, ok)
	assert.Equal(t, 20, enc.Port)
	assert.Equal(t, flywheel.WPITalonSRX, enc.Controller)
}

func TestDecode_EquivalentDocuments(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		format Format
		src    string
	}{
		{
			format: Python,
			src: `{
    'units': 'Degrees',  # comment after a value
    "controllerTypes": ("Spark",),
    "motorPorts": [0x3],
    "motorsInverted": [True,],
    "encoderEPR": 1_024,
    "encoderPorts": [0, 1],
    "encoderInverted": False,
}`,
		},
		{
			format: HCL,
			src: `
units           = "Degrees"
controllerTypes = ["Spark"]
motorPorts      = [3]
motorsInverted  = [true]
encoderEPR      = 1024
encoderPorts    = [0, 1]
encoderInverted = false
`,
		},
		{
			format: JSON,
			src: `{"units": "Degrees", "controllerTypes": ["Spark"], "motorPorts": [3], "motorsInverted": [true],
"encoderEPR": 1024, "encoderPorts": [0, 1], "encoderInverted": false}`,
		},
		{
			format: YAML,
			src: `
units: Degrees
controllerTypes: [Spark]
motorPorts:
  - 3
motorsInverted: [true]
encoderEPR: 1024
encoderPorts: [0, 1]
encoderInverted: false
`,
		},
		{
			format: TOML,
			src: `
units = "Degrees"
controllerTypes = ["Spark"]
motorPorts = [3]
motorsInverted = [true]
encoderEPR = 1024
encoderPorts = [0, 1]
encoderInverted = false
`,
		},
	}

	want := flywheel.Config{
		Units:           flywheel.Degrees,
		ControllerTypes: []flywheel.ControllerType{flywheel.Spark},
		MotorPorts:      []int{3},
		MotorsInverted:  []bool{true},
		EncoderEPR:      1024,
		EncoderPorts:    []int{0, 1},
		EncoderInverted: false,
	}

	for _, tc := range testCases {
		t.Run(string(tc.format), func(t *testing.T) {
			t.Parallel()

			cfg, err := NewLoader().Decode(testContext(t), []byte(tc.src), "test"+tc.format.Extension(), tc.format)
			require.NoError(t, err)
			assert.Equal(t, want, *cfg)
		})
	}
}

func TestDecode_Rejects(t *testing.T) {
	t.Parallel()

	const valid = `{"units": "Rotations", "controllerTypes": ["WPI_TalonSRX", "WPI_VictorSPX"], "motorPorts": [20, 21],
"motorsInverted": [false, true], "encoderEPR": 2048, "encoderPorts": [8, 9], "encoderInverted": true}`

	testCases := []struct {
		name     string
		format   Format
		src      string
		contains string
		code     flywheel.Code
	}{
		{
			name:     "unknown option",
			format:   Python,
			src:      `{"units": "Rotations", "leftMotorPorts": [1]}`,
			contains: "unknown option(s) 'leftMotorPorts'",
		},
		{
			name:     "missing options",
			format:   JSON,
			src:      `{"units": "Rotations"}`,
			contains: "missing required option(s) 'controllerTypes', 'motorPorts'",
		},
		{
			name:     "string port",
			format:   JSON,
			src:      replace(valid, `[20, 21]`, `["20", 21]`),
			contains: "option 'motorPorts': element 0: expected number, got string",
		},
		{
			name:     "fractional EPR",
			format:   JSON,
			src:      replace(valid, `2048`, `2048.5`),
			contains: "option 'encoderEPR'",
		},
		{
			name:     "null flag",
			format:   Python,
			src:      "{'units': 'Rotations', 'controllerTypes': ['Spark'], 'motorPorts': [1], 'motorsInverted': [False], 'encoderEPR': 1, 'encoderPorts': [1, 2], 'encoderInverted': None}",
			contains: "option 'encoderInverted': value must not be null",
		},
		{
			name:     "scalar where list expected",
			format:   YAML,
			src:      "units: Rotations\ncontrollerTypes: Spark\nmotorPorts: [1]\nmotorsInverted: [false]\nencoderEPR: 1\nencoderPorts: [1, 2]\nencoderInverted: false\n",
			contains: "option 'controllerTypes': expected a list of string, got string",
		},
		{
			name:     "unknown units",
			format:   JSON,
			src:      replace(valid, `"Rotations"`, `"Turns"`),
			contains: `unknown units "Turns"`,
		},
		{
			name:     "unknown controller",
			format:   JSON,
			src:      replace(valid, `"WPI_VictorSPX"`, `"CANSparkMax"`),
			contains: "option 'controllerTypes' element 1",
		},
		{
			name:     "parallel arrays differ",
			format:   JSON,
			src:      replace(valid, `[false, true]`, `[false]`),
			contains: "motorsInverted: has 1 elements but controllerTypes has 2",
			code:     flywheel.LengthMismatch,
		},
		{
			name:     "one encoder port",
			format:   TOML,
			src:      "units = 'Rotations'\ncontrollerTypes = ['Spark']\nmotorPorts = [1]\nmotorsInverted = [false]\nencoderEPR = 360\nencoderPorts = [1]\nencoderInverted = false\n",
			contains: "exactly 2 ports",
			code:     flywheel.InvalidEncoderPorts,
		},
		{
			name:     "document is a list",
			format:   YAML,
			src:      "- units\n",
			contains: "document must be a mapping of options",
		},
		{
			name:     "empty yaml",
			format:   YAML,
			src:      "",
			contains: "document is empty",
		},
		{
			name:     "hcl block",
			format:   HCL,
			src:      "encoder {\n  epr = 2048\n}\n",
			contains: "failed to parse hcl config",
		},
		{
			name:     "hcl variable reference",
			format:   HCL,
			src:      "units = var.units\n",
			contains: "attribute 'units'",
		},
		{
			name:     "json array root",
			format:   JSON,
			src:      `[1, 2]`,
			contains: "failed to parse json config",
		},
		{
			name:     "python name",
			format:   Python,
			src:      `{"units": Rotations}`,
			contains: `test:1:11: unsupported name "Rotations"`,
		},
		{
			name:     "python duplicate key",
			format:   Python,
			src:      "{\n  'units': 'Degrees',\n  'units': 'Radians',\n}",
			contains: `test:3:3: duplicate key "units"`,
		},
		{
			name:     "python unterminated dict",
			format:   Python,
			src:      `{"units": "Degrees",`,
			contains: "unterminated dict",
		},
		{
			name:     "python trailing garbage",
			format:   Python,
			src:      `{} {}`,
			contains: "after the top-level value",
		},
		{
			name:     "python unterminated string",
			format:   Python,
			src:      "{\"units\": \"Degrees\n}",
			contains: "test:1:19: unterminated string",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			cfg, err := NewLoader().Decode(testContext(t), []byte(tc.src), "test", tc.format)

			// --- Assert ---
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tc.contains)
			if tc.code != "" {
				assert.Equal(t, tc.code, flywheel.CodeOf(err))
			}
		})
	}
}

func TestDecode_PythonIntegerForms(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		ports    string
		want     []int
		contains string
	}{
		{name: "octal ports", ports: "[0o24, 0o25]", want: []int{20, 21}},
		{name: "hex and binary ports", ports: "[0x14, 0b10101]", want: []int{20, 21}},
		{name: "leading zero port", ports: "[020, 21]", contains: "leading zeros"},
		{name: "stray backslash", ports: "[20, \\ 21]", contains: "expected a value"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			src := `{"units": "Rotations", "controllerTypes": ["WPI_TalonSRX", "WPI_VictorSPX"], "motorPorts": ` + tc.ports + `,
"motorsInverted": [False, True], "encoderEPR": 2048, "encoderPorts": [8, 9], "encoderInverted": True}`

			// --- Act ---
			cfg, err := NewLoader().Decode(testContext(t), []byte(src), "robotconfig.py", Python)

			// --- Assert ---
			if tc.contains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.contains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.MotorPorts)
			enc, ok := cfg.EncoderMotor()
			require.True(t, ok)
			assert.Equal(t, tc.want[0], enc.Port)
		})
	}
}

func TestDecode_PythonSyntaxErrorIsTyped(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Decode(testContext(t), []byte("{\n  'units' 'Degrees'\n}"), "robotconfig.py", Python)
	require.Error(t, err)

	var syn *SyntaxError
	require.True(t, errors.As(err, &syn))
	assert.Equal(t, "robotconfig.py", syn.Filename)
	assert.Equal(t, 2, syn.Line)
	assert.Equal(t, 11, syn.Column)
}

func TestLoad_UnknownExtension(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "robot.ini", "units=Rotations")
	_, err := NewLoader().Load(testContext(t), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported extension ".ini"`)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(testContext(t), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadAll(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	good, err := Encode(ptr(flywheel.Default()), HCL)
	require.NoError(t, err)
	goodPath := writeFile(t, dir, "a/flywheel.hcl", string(good))
	badPath := writeFile(t, dir, "b/broken.json", `{"units": "Rotations"}`)
	writeFile(t, dir, "b/notes.txt", "ignored")
	explicit := writeFile(t, t.TempDir(), "other.yml", "units: Radians\n")

	// --- Act ---
	results, err := NewLoader().LoadAll(testContext(t),
		dir,
		goodPath, // already found through dir
		filepath.Join(dir, "does-not-exist"),
		explicit,
	)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, goodPath, results[0].Path)
	assert.Equal(t, HCL, results[0].Format)
	require.NoError(t, results[0].Err)
	assert.Equal(t, flywheel.Default(), *results[0].Config)

	assert.Equal(t, badPath, results[1].Path)
	assert.Error(t, results[1].Err)
	assert.Nil(t, results[1].Config)

	assert.Equal(t, explicit, results[2].Path)
	assert.Equal(t, YAML, results[2].Format)
	assert.Error(t, results[2].Err)
}

func replace(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}

func ptr[T any](v T) *T { return &v }
