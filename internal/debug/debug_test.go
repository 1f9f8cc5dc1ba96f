package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_NoOpWithoutOutput(t *testing.T) {
	SetOutput(nil)
	assert.False(t, Enabled())
	Log("dropped %d", 1)
}

func TestLog_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	Log("commit %d frames=%d", 3, 2)

	assert.True(t, Enabled())
	assert.Contains(t, buf.String(), "commit 3 frames=2")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestInit_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")
	require.NoError(t, Init(path))
	Log("hello")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestInitFromEnv_Unset(t *testing.T) {
	t.Setenv(EnvVar, "")
	require.NoError(t, InitFromEnv())
}
