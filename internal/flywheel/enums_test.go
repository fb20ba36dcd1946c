package flywheel

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	t.Parallel()

	for _, u := range AllUnits() {
		got, err := ParseUnits(string(u))
		require.NoError(t, err)
		assert.Equal(t, u, got)
	}

	_, err := ParseUnits("rotations")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown units "rotations"`)
	assert.Contains(t, err.Error(), "'Degrees', 'Radians', 'Rotations'")
}

func TestParseControllerType(t *testing.T) {
	t.Parallel()

	for _, c := range AllControllerTypes() {
		got, err := ParseControllerType(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseControllerType("WPI_TalonFX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'WPI_VictorSPX'")
}

func TestControllerType_Bus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CAN", WPITalonSRX.Bus())
	assert.Equal(t, "CAN", WPIVictorSPX.Bus())
	for _, c := range []ControllerType{Spark, Victor, VictorSP, PWMTalonSRX, PWMVictorSPX} {
		assert.False(t, c.IsCAN(), c.String())
		assert.Equal(t, "PWM", c.Bus())
	}
}

func TestEnums_TextMarshaling(t *testing.T) {
	t.Parallel()

	var out struct {
		Units Units            `json:"units"`
		Types []ControllerType `json:"types"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"units":"Degrees","types":["Spark","WPI_TalonSRX"]}`), &out))
	assert.Equal(t, Degrees, out.Units)
	assert.Equal(t, []ControllerType{Spark, WPITalonSRX}, out.Types)

	err := json.Unmarshal([]byte(`{"units":"Miles"}`), &out)
	require.Error(t, err)

	_, err = json.Marshal(Units("Miles"))
	require.Error(t, err)
}
