package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mna/ilex/internal/config"
)

func TestDefaultLimits(t *testing.T) {
	l := config.Default()
	require.Equal(t, 256, l.MaxLocals)
	require.Equal(t, 65535, l.MaxJump)
}

func TestLoadLimitsOverride(t *testing.T) {
	t.Setenv("ILEX_MAX_LOCALS", "64")
	os.Unsetenv("ILEX_MAX_CONSTANTS")
	l, err := config.LoadLimits()
	require.NoError(t, err)
	require.Equal(t, 64, l.MaxLocals)
	require.Equal(t, 256, l.MaxConstants)
}
