package shim

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleDir(t *testing.T) {
	dir, err := ModuleDir()
	require.NoError(t, err)
	require.NotEmpty(t, dir)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
