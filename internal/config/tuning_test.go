package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bmizerany/assert"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tuning.ini")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultTuningIsValid(t *testing.T) {
	assert.Equal(t, nil, DefaultTuning().Validate())
}

func TestLoadTuningEmptyPath(t *testing.T) {
	tn, err := LoadTuning("")
	assert.Equal(t, nil, err)
	assert.Equal(t, DefaultTuning(), tn)
}

func TestLoadTuningOverlay(t *testing.T) {
	path := writeFile(t, `
[vehicle]
gravity = 4.5
max_thrust = 6

[spawner]
initial = 3s
ramp_step = 250ms

[explosion]
search_timeout = 1500ms
frames = 0
`)
	tn, err := LoadTuning(path)
	assert.Equal(t, nil, err)
	assert.Equal(t, 4.5, tn.Vehicle.Gravity)
	assert.Equal(t, 6.0, tn.Vehicle.MaxThrust)
	assert.Equal(t, 7.0, tn.Vehicle.ThrustPower)
	assert.Equal(t, 3*time.Second, tn.Spawner.Initial)
	assert.Equal(t, 250*time.Millisecond, tn.Spawner.RampStep)
	assert.Equal(t, 1500*time.Millisecond, tn.Explosion.SearchTimeout)
	assert.Equal(t, 0, tn.Explosion.Frames)
}

func TestLoadTuningSingleSection(t *testing.T) {
	path := writeFile(t, "[vehicle]\ngravity = 4\n")
	tn, err := LoadTuning(path)
	assert.Equal(t, nil, err)
	assert.Equal(t, 4.0, tn.Vehicle.Gravity)
	assert.Equal(t, DefaultTuning().Spawner, tn.Spawner)
}

func TestLoadTuningKeysOutsideSection(t *testing.T) {
	path := writeFile(t, "gravity = 4\n")
	_, err := LoadTuning(path)
	assert.T(t, err != nil, "top-level keys must fail")
}

func TestLoadTuningUnknownKey(t *testing.T) {
	path := writeFile(t, "[vehicle]\nwarp_drive = 1\n")
	_, err := LoadTuning(path)
	assert.T(t, err != nil, "unknown key must fail")
}

func TestLoadTuningUnknownSection(t *testing.T) {
	path := writeFile(t, "[weapons]\nlaser = 1\n")
	_, err := LoadTuning(path)
	assert.T(t, err != nil, "unknown section must fail")
}

func TestLoadTuningRejectsInvalid(t *testing.T) {
	path := writeFile(t, "[spawner]\ninitial = 100ms\nfloor = 500ms\n")
	_, err := LoadTuning(path)
	assert.T(t, err != nil, "initial below floor must fail")
}

func TestClampOverrides(t *testing.T) {
	assert.Equal(t, MinThrustOverride, ClampThrust(1))
	assert.Equal(t, MaxThrustOverride, ClampThrust(99))
	assert.Equal(t, 12.0, ClampThrust(12))
	assert.Equal(t, MinGravityOverride, ClampGravity(-1))
	assert.Equal(t, 5.0, ClampGravity(5))
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("VOYAGER_TEST_FLAG", "true")
	assert.T(t, GetEnvBool("VOYAGER_TEST_FLAG", false), "expected true")
	t.Setenv("VOYAGER_TEST_FLAG", "garbage")
	assert.T(t, GetEnvBool("VOYAGER_TEST_FLAG", true), "expected fallback")
	assert.Equal(t, "x", GetEnv("VOYAGER_TEST_MISSING", "x"))
}
