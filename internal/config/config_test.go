package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/gcodeview/pkg/gcode"
	"github.com/philipparndt/gcodeview/pkg/geometry"
	"github.com/philipparndt/gcodeview/pkg/preview"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "feature_type", cfg.View.Channel)
	assert.Nil(t, cfg.View.ZMin)
	assert.Nil(t, cfg.View.ZMax)
	assert.Equal(t, float32(1), cfg.Transform.Scale)
	assert.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)
	require.NoError(t, cfg.Validate())

	view, err := cfg.PreviewView()
	require.NoError(t, err)
	assert.Equal(t, preview.DefaultViewConfig(), view)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	yamlContent := `
view:
  channel: fan_speed
  z_min: 0.2
  z_max: 5
  hidden_categories:
    - Support material
    - Skirt/Brim
transform:
  offset: [10, 20, 0]
  scale: 0.001
watch:
  debounce: 250ms
logging:
  level: debug
  log_file: gcodeview.log
`
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "gcodeview.log", cfg.Logging.LogFile)
	assert.Equal(t, geometry.NewVector3(10, 20, 0), cfg.Offset())
	assert.Equal(t, float32(0.001), cfg.Transform.Scale)

	view, err := cfg.PreviewView()
	require.NoError(t, err)
	assert.Equal(t, preview.ChannelFanSpeed, view.Channel)
	assert.Equal(t, float32(0.2), view.ZMin)
	assert.Equal(t, float32(5), view.ZMax)
	assert.False(t, view.Visible.Has(gcode.SupportMaterial))
	assert.False(t, view.Visible.Has(gcode.SkirtBrim))
	assert.True(t, view.Visible.Has(gcode.Perimeter))
}

func TestLoadFromFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  channel: [not, a, string\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/path/gcodeview.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown channel", func(c *Config) { c.View.Channel = "speed" }},
		{"unknown category", func(c *Config) { c.View.Hidden = []string{"Ironing"} }},
		{"zero scale", func(c *Config) { c.Transform.Scale = 0 }},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestUnknownHiddenCategoryWrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.View.Hidden = []string{"Ironing"}
	_, err := cfg.PreviewView()
	assert.ErrorIs(t, err, gcode.ErrUnknownCategory)
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	assert.NotEmpty(t, dir)
	assert.True(t, filepath.IsAbs(dir), "ConfigDir should return absolute path, got %s", dir)
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	assert.Empty(t, findConfigFile())

	require.NoError(t, os.WriteFile(FileName, []byte("view:\n  channel: width\n"), 0644))
	assert.NotEmpty(t, findConfigFile())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "width", cfg.View.Channel)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)
	cfg := Default()
	z := float32(3)
	cfg.View.ZMax = &z
	cfg.View.Channel = "temperature"

	require.NoError(t, cfg.SaveTo(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("view:\n  channel: width\n  z_max: 2\n"), 0644))

	var flags Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.BindPersistent(fs)
	flags.BindView(fs)
	require.NoError(t, fs.Parse([]string{
		"--config", path,
		"--channel", "height",
		"--z-min", "0.4",
		"--hide", "Gap fill",
		"--debug",
	}))

	cfg, err := flags.Resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)

	view, err := cfg.PreviewView()
	require.NoError(t, err)
	assert.Equal(t, preview.ChannelHeight, view.Channel)
	assert.Equal(t, float32(0.4), view.ZMin)
	assert.Equal(t, float32(2), view.ZMax, "unset flag keeps the file value")
	assert.False(t, view.Visible.Has(gcode.GapFill))
	assert.Equal(t, float32(1), cfg.Transform.Scale)
}
