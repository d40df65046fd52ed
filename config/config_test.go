package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fincalc/config"
	"github.com/meenmo/fincalc/num"
	"github.com/meenmo/fincalc/solver"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, num.DefaultScale, cfg.Precision)
	assert.Equal(t, int32(2), cfg.DisplayPlaces)

	want := solver.DefaultSettings()
	got := cfg.SolverSettings()
	assert.True(t, want.Guess.Equal(got.Guess), "guess %s", got.Guess)
	assert.True(t, want.Step.Equal(got.Step), "step %s", got.Step)
	assert.True(t, want.Tolerance.Equal(got.Tolerance), "tolerance %s", got.Tolerance)
	assert.True(t, want.Damping.Equal(got.Damping), "damping %s", got.Damping)
	assert.Equal(t, want.MaxIterations, got.MaxIterations)

	ctx, err := cfg.Context()
	require.NoError(t, err)
	assert.Equal(t, num.DefaultScale, ctx.Scale())
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "fincalc.toml", `
precision = 32
display_places = 4

[solver]
guess = 0.05
tolerance = "1e-9"
max_iterations = 50
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int32(32), cfg.Precision)
	assert.Equal(t, int32(4), cfg.DisplayPlaces)
	assert.True(t, cfg.Solver.Guess.Equal(num.MustParse("0.05")), "guess %s", cfg.Solver.Guess)
	assert.True(t, cfg.Solver.Tolerance.Equal(num.MustParse("0.000000001")), "tolerance %s", cfg.Solver.Tolerance)
	assert.Equal(t, 50, cfg.Solver.MaxIterations)
	// untouched keys keep their defaults
	assert.True(t, cfg.Solver.Step.Equal(num.MustParse("0.0001")), "step %s", cfg.Solver.Step)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "fincalc.yaml", `
precision: 20
solver:
  step: 0.001
  damping: 0
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int32(20), cfg.Precision)
	assert.Equal(t, int32(2), cfg.DisplayPlaces)
	assert.True(t, cfg.Solver.Step.Equal(num.MustParse("0.001")), "step %s", cfg.Solver.Step)
	assert.True(t, cfg.Solver.Damping.IsZero(), "damping %s", cfg.Solver.Damping)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "fincalc.toml", "precision = 32\n")
	t.Setenv(config.EnvPrecision, "40")
	t.Setenv(config.EnvTolerance, "1e-10")
	t.Setenv(config.EnvMaxIterations, "250")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int32(40), cfg.Precision)
	assert.Equal(t, 250, cfg.Solver.MaxIterations)
	assert.True(t, cfg.Solver.Tolerance.Equal(num.MustParse("0.0000000001")), "tolerance %s", cfg.Solver.Tolerance)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad env value", func(t *testing.T) {
		t.Setenv(config.EnvMaxIterations, "many")
		_, err := config.Load("")
		assert.ErrorIs(t, err, num.ErrInvalidInput)
	})
	t.Run("precision below minimum", func(t *testing.T) {
		t.Setenv(config.EnvPrecision, "8")
		_, err := config.Load("")
		assert.ErrorIs(t, err, num.ErrInvalidInput)
	})
	t.Run("unsupported extension", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "fincalc.json", "{}"))
		assert.ErrorIs(t, err, num.ErrInvalidInput)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("malformed decimal", func(t *testing.T) {
		_, err := config.Load(writeFile(t, "fincalc.yaml", "solver:\n  tolerance: tiny\n"))
		assert.ErrorIs(t, err, num.ErrInvalidInput)
	})
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*config.Config){
		"display places":  func(c *config.Config) { c.DisplayPlaces = 12 },
		"zero iterations": func(c *config.Config) { c.Solver.MaxIterations = 0 },
		"zero tolerance":  func(c *config.Config) { c.Solver.Tolerance = config.Decimal{} },
		"huge precision":  func(c *config.Config) { c.Precision = 1000 },
	}
	for name, edit := range cases {
		cfg := config.Default()
		edit(&cfg)
		assert.ErrorIs(t, cfg.Validate(), num.ErrInvalidInput, name)
	}
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), ".env")))

	require.NoError(t, os.Unsetenv(config.EnvDisplayPlaces))
	t.Cleanup(func() { os.Unsetenv(config.EnvDisplayPlaces) })

	path := writeFile(t, ".env", config.EnvDisplayPlaces+"=5\n")
	require.NoError(t, config.LoadDotEnv(path))

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, int32(5), cfg.DisplayPlaces)
}
