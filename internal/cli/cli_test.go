package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "hxbs 1.2.3 (commit abc123, built 2026-01-01)\n", out.String())
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"serve", "demo", "version"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}

func TestServeCmd_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hxbs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collapse:\n  dimension: depth\n"), 0o644))

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"serve", "--config", path})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collapse.dimension")
}

func TestDemoCmd_ZeroDuration(t *testing.T) {
	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"demo", "--duration", "0"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collapse.duration must be positive")
}

func TestServeCmd_FlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hxbs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("collapse:\n  dimension: width\n"), 0o644))

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	// An invalid flag value proves the flag wins over the valid file value.
	root.SetArgs([]string{"serve", "--config", path, "--dimension", "diagonal"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diagonal")
}

func TestOpenLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")
	f, err := openLog(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = openLog(filepath.Join(t.TempDir(), "missing", "demo.log"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	newLogger(&buf, true).Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}
