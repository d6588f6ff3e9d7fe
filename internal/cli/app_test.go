package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/flexpane/internal/domain/entity"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg-config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg-data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "xdg-state"))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestNewAppOpensDatabaseAndLogFile(t *testing.T) {
	path := writeConfig(t, `
[logging]
level = "debug"
log_dir = "`+filepath.ToSlash(filepath.Join(t.TempDir(), "logs"))+`"

[size_hints]
enabled = true
session = "test"
`)

	app, err := NewApp(Options{ConfigFile: path, FileLog: true, OpenDatabase: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, "test", app.Config.SizeHints.Session)
	assert.True(t, app.DB.IsInitialized())
	require.NotNil(t, app.Hints)

	ctx := app.Ctx()
	require.NoError(t, app.Hints.Set(ctx, &entity.SizeHint{
		SessionID:     "test",
		ContainerName: "editor",
		Grow:          1.5,
		UpdatedAt:     time.Now(),
	}))
	hints, err := app.Hints.List(ctx, "test")
	require.NoError(t, err)
	require.Len(t, hints, 1)
	assert.InDelta(t, 1.5, hints[0].Grow, 1e-9)

	logFile := filepath.Join(app.Config.Logging.LogDir, LogFileName)
	info, err := os.Stat(logFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestNewAppWithoutSizeHintsLeavesDatabaseClosed(t *testing.T) {
	path := writeConfig(t, `
[size_hints]
enabled = false
`)

	app, err := NewApp(Options{ConfigFile: path, OpenDatabase: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Nil(t, app.Hints)
	assert.False(t, app.DB.IsInitialized())
	assert.NotEmpty(t, app.DB.Path())
}

func TestNewAppRejectsBrokenExplicitConfig(t *testing.T) {
	path := writeConfig(t, "[logging\nlevel = ")

	_, err := NewApp(Options{ConfigFile: path})
	require.Error(t, err)
}

func TestNewAppRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, `
[resize]
movement_mode = "sideways"
`)

	_, err := NewApp(Options{ConfigFile: path})
	require.Error(t, err)
}
