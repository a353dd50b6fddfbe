package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnv(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 180*time.Second, cfg.MatchDuration)
	assert.Equal(t, 0.0025, cfg.MouseSensitivity)
	assert.False(t, cfg.LineOfSight)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	cfg, err := Load(missingEnv(t))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("INKARENA_MATCH_DURATION", "90")
	t.Setenv("INKARENA_SEED", "42")
	t.Setenv("INKARENA_MUTE", "true")
	t.Setenv("INKARENA_LINE_OF_SIGHT", "1")
	t.Setenv("INKARENA_LOG_LEVEL", "DEBUG")
	t.Setenv("INKARENA_MOUSE_SENSITIVITY", "0.004")

	cfg, err := Load(missingEnv(t))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.MatchDuration)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.True(t, cfg.Mute)
	assert.True(t, cfg.LineOfSight)
	assert.False(t, cfg.AllAI)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 0.004, cfg.MouseSensitivity)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("INKARENA_MATCH_DURATION=2m\nINKARENA_ALL_AI=true\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("INKARENA_MATCH_DURATION")
		os.Unsetenv("INKARENA_ALL_AI")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.MatchDuration)
	assert.True(t, cfg.AllAI)
}

func TestLoad_EnvironmentBeatsDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("INKARENA_SEED=1\n"), 0o600))
	t.Setenv("INKARENA_SEED", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"INKARENA_SEED":           "abc",
		"INKARENA_MUTE":           "maybe",
		"INKARENA_MATCH_DURATION": "-5",
		"INKARENA_WINDOW_SCALE":   "x",
		"INKARENA_LOG_LEVEL":      "loud",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load(missingEnv(t))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRegisterFlags_OverrideLoaded(t *testing.T) {
	cfg := Default()
	cfg.Seed = 3
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"-duration", "45s", "-all-ai", "-scale", "2"}))

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 45*time.Second, cfg.MatchDuration)
	assert.True(t, cfg.AllAI)
	assert.Equal(t, 2.0, cfg.WindowScale)
	assert.Equal(t, int64(3), cfg.Seed, "unset flags keep the loaded value")
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	cfg := Config{LogLevel: "nope", WindowScale: 9}
	err := cfg.Validate()
	require.Error(t, err)
	for _, frag := range []string{"match duration", "mouse sensitivity", "window scale", "log level"} {
		assert.Contains(t, err.Error(), frag)
	}
}

func TestResolveSeed(t *testing.T) {
	now := time.Unix(0, 12345)
	assert.Equal(t, int64(12345), Config{}.ResolveSeed(now))
	assert.Equal(t, int64(9), Config{Seed: 9}.ResolveSeed(now))
}
