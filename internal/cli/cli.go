// Package cli holds the flags and startup shared by the goplane binaries.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipparndt/goplane/internal/config"
	"github.com/philipparndt/goplane/internal/logging"
)

// Env is what commands need after startup
type Env struct {
	Viper  *viper.Viper
	Config *config.Config
	Logger *zap.Logger
}

// Flags are the persistent flags every binary accepts
type Flags struct {
	ConfigFile string
	StateFile  string
	NoState    bool
	Watch      bool
}

// flag name to config key
var overrides = []struct {
	flag, key string
}{
	{"log-level", "log.level"},
	{"log-file", "log.file"},
	{"log-format", "log.format"},
	{"zoom", "viewport.zoom"},
	{"mode", "viewport.mode"},
	{"width", "window.width"},
	{"height", "window.height"},
}

// AddFlags registers the shared persistent flags on cmd and binds the
// overrides to v
func AddFlags(cmd *cobra.Command, v *viper.Viper, f *Flags) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.ConfigFile, "config", "c", "", "config file (default is ~/.config/goplane/goplane.yaml)")
	pf.StringVar(&f.StateFile, "state", "", "viewport state file (default is ~/.config/goplane/state.yaml)")
	pf.BoolVar(&f.NoState, "no-state", false, "do not restore or save the viewport state")
	pf.BoolVarP(&f.Watch, "watch", "w", true, "reload the config and scene files when they change")

	pf.String("log-level", "", "log level (debug, info, warn, error)")
	pf.String("log-file", "", "also write json logs to this file")
	pf.String("log-format", "", "console log format (console, json)")
	pf.Float64("zoom", 0, "initial zoom factor")
	pf.String("mode", "", "initial mode (select, grab, measure, draw)")
	pf.Int("width", 0, "window width")
	pf.Int("height", 0, "window height")

	for _, o := range overrides {
		if err := v.BindPFlag(o.key, pf.Lookup(o.flag)); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", o.flag, err))
		}
	}
}

// Setup loads the configuration and initializes logging to stdout
func (f *Flags) Setup(v *viper.Viper) (*Env, error) {
	return f.SetupWith(v, zapcore.Lock(os.Stdout))
}

// SetupWith loads the configuration and initializes logging to w
func (f *Flags) SetupWith(v *viper.Viper, w zapcore.WriteSyncer) (*Env, error) {
	cfg, err := config.Load(v, f.ConfigFile)
	if err != nil {
		return nil, err
	}
	log := logging.InitializeWith(cfg.Log, w)
	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("config loaded", zap.String("file", used))
	}
	return &Env{Viper: v, Config: cfg, Logger: log}, nil
}

// StatePath returns the state file to use, or "" when state is disabled
func (f *Flags) StatePath() string {
	if f.NoState {
		return ""
	}
	if f.StateFile != "" {
		return f.StateFile
	}
	return config.StatePath()
}

// Execute runs cmd and exits with status 1 on error
func Execute(cmd *cobra.Command) {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
