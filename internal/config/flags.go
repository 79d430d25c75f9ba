package config

import (
	"github.com/spf13/pflag"
)

// Flags are command-line overrides; they win over the config file.
type Flags struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Channel    string
	ZMin       float32
	ZMax       float32
	Hide       []string
	Scale      float32
}

// BindPersistent registers the flags shared by every command.
func (f *Flags) BindPersistent(fs *pflag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this rotated file")
}

// BindView registers the view flags on a command's flag set.
func (f *Flags) BindView(fs *pflag.FlagSet) {
	fs.StringVarP(&f.Channel, "channel", "c", "", "Color channel: feature_type, height, width, temperature, fan_speed")
	fs.Float32Var(&f.ZMin, "z-min", 0, "Hide segments starting below this Z")
	fs.Float32Var(&f.ZMax, "z-max", 0, "Hide segments starting at or above this Z")
	fs.StringSliceVar(&f.Hide, "hide", nil, "Feature categories to hide, e.g. \"Support material\"")
	fs.Float32Var(&f.Scale, "scale", 0, "Scale applied to vertex positions")
}

// Apply writes the flags that were set on fs onto cfg. View flags only
// count when fs is a flag set they were bound to.
func (f *Flags) Apply(cfg *Config, fs *pflag.FlagSet) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if fs.Changed("channel") {
		cfg.View.Channel = f.Channel
	}
	if fs.Changed("z-min") {
		z := f.ZMin
		cfg.View.ZMin = &z
	}
	if fs.Changed("z-max") {
		z := f.ZMax
		cfg.View.ZMax = &z
	}
	if fs.Changed("hide") {
		cfg.View.Hidden = append(cfg.View.Hidden, f.Hide...)
	}
	if fs.Changed("scale") {
		cfg.Transform.Scale = f.Scale
	}
}

// Resolve loads the config file named by the flags and applies the
// overrides parsed into fs.
func (f *Flags) Resolve(fs *pflag.FlagSet) (*Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg, fs)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
