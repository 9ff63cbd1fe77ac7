package cuco

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadHostConfigOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cuco.yaml")
	contents := "capacity: 2048\nprobing: quadratic\nerase_enabled: true\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadHostConfig(path)
	require.NoError(t, err)
	require.Equal(t, 2048, cfg.Capacity)
	require.Equal(t, "quadratic", cfg.Probing)
	require.True(t, cfg.EraseEnabled)
	// Fields the file didn't set keep DefaultHostConfig's values.
	require.Equal(t, DefaultHostConfig().WindowWidth, cfg.WindowWidth)
}

func TestHostConfigUnknownProbingSchemeIsConfigError(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Probing = "bogus"
	_, err := cfg.ProbingScheme()
	require.Error(t, err)
	var cucoErr *Error
	require.ErrorAs(t, err, &cucoErr)
	require.Equal(t, KindConfiguration, cucoErr.Kind)
}

func TestHostConfigOptionsBuildsUsableContainer(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Capacity = 256
	cfg.EraseEnabled = true
	opts, err := cfg.Options()
	require.NoError(t, err)

	c, err := New[uint64, uint64](nil, cfg.Capacity, cfg.EmptyKey, opts...)
	require.NoError(t, err)
	_, err = c.Erase(nil, []uint64{1})
	require.NoError(t, err)
}

func TestHostConfigNewContainerUsesLoadFactorWhenSet(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Capacity = 10 // deliberately too small to prove LoadFactor, not Capacity, wins
	cfg.LoadFactor = 0.5

	c, err := cfg.NewContainer(nil, 1000)
	require.NoError(t, err)
	require.GreaterOrEqual(t, c.Capacity(), 1000)
}

func TestHostConfigNewContainerFallsBackToCapacityWhenLoadFactorUnset(t *testing.T) {
	cfg := DefaultHostConfig()
	cfg.Capacity = 256
	cfg.LoadFactor = 0

	c, err := cfg.NewContainer(nil, 1000)
	require.NoError(t, err)
	require.Equal(t, 256, c.Capacity())
}
