package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/internal/logging"
)

func run(t *testing.T, args ...string) (*Env, *Flags, *bytes.Buffer) {
	t.Helper()
	logging.ResetForTest()
	t.Cleanup(logging.ResetForTest)
	t.Setenv("HOME", t.TempDir())

	v := config.NewViper()
	flags := &Flags{}
	var env *Env
	out := &bytes.Buffer{}

	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			env, err = flags.SetupWith(v, zapcore.AddSync(out))
			return err
		},
	}
	AddFlags(cmd, v, flags)
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())
	return env, flags, out
}

func TestDefaults(t *testing.T) {
	env, flags, _ := run(t)

	assert.Equal(t, 1.0, env.Config.Viewport.Zoom)
	assert.Equal(t, 1024, env.Config.Window.Width)
	assert.True(t, flags.Watch)
	assert.NotNil(t, env.Logger)
	assert.Contains(t, flags.StatePath(), filepath.Join(".config", "goplane", "state.yaml"))
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goplane.yaml")
	require.NoError(t, os.WriteFile(path, []byte("viewport:\n  zoom: 2\n  mode: grab\nwindow:\n  width: 640\n"), 0o644))

	env, _, _ := run(t, "--config", path, "--zoom", "4", "--height", "480")

	assert.Equal(t, 4.0, env.Config.Viewport.Zoom, "flags win over the file")
	assert.Equal(t, "grab", env.Config.Viewport.Mode)
	assert.Equal(t, 640, env.Config.Window.Width)
	assert.Equal(t, 480, env.Config.Window.Height)
	assert.Equal(t, path, env.Viper.ConfigFileUsed())
}

func TestLogLevelFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goplane.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid:\n  visible: false\n"), 0o644))

	env, _, out := run(t, "-c", path, "--log-level", "debug")

	assert.Equal(t, "debug", env.Config.Log.Level)
	assert.Contains(t, out.String(), "config loaded")
}

func TestUnsupportedConfigFails(t *testing.T) {
	logging.ResetForTest()
	t.Cleanup(logging.ResetForTest)

	flags := &Flags{ConfigFile: filepath.Join(t.TempDir(), "goplane.ini")}
	_, err := flags.SetupWith(config.NewViper(), zapcore.AddSync(&bytes.Buffer{}))
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}

func TestStatePath(t *testing.T) {
	assert.Equal(t, "", (&Flags{NoState: true, StateFile: "x.yaml"}).StatePath())
	assert.Equal(t, "x.yaml", (&Flags{StateFile: "x.yaml"}).StatePath())
}
