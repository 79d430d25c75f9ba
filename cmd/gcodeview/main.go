package main

import (
	"context"
	"fmt"
	"os"

	"github.com/philipparndt/gcodeview/internal/config"
	"github.com/philipparndt/gcodeview/internal/logger"
	"github.com/philipparndt/gcodeview/pkg/gcode"
	"github.com/philipparndt/gcodeview/pkg/preview"
	"github.com/philipparndt/gcodeview/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	flags config.Flags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gcodeview",
	Short: "Decode G-code toolpaths into colored, filterable preview geometry",
	Long: `gcodeview decodes the G-code written by a slicer into per-move columns
(position, extrusion, width, height, fan speed, temperature, feature type)
and derives the triangles and vertex colors a 3D preview would draw for a
given color channel, Z range and set of visible feature categories.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := flags.Resolve(cmd.Flags())
		if err != nil {
			return err
		}
		cfg = c

		if _, err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	flags.BindPersistent(rootCmd.PersistentFlags())
}

// decodeFile decodes a toolpath with the command logger attached.
func decodeFile(path string) (*gcode.Trace, error) {
	decoder := gcode.Decoder{Log: logger.L()}
	return decoder.Decode(path)
}

// loadPreview decodes path into a fresh cache placed by the transform
// settings, and returns it with the configured view.
func loadPreview(path string) (*preview.Cache, preview.ViewConfig, error) {
	view, err := cfg.PreviewView()
	if err != nil {
		return nil, view, err
	}

	trace, err := decodeFile(path)
	if err != nil {
		return nil, view, err
	}

	cache := preview.NewCache(logger.L())
	cache.Load(trace, cfg.Offset(), cfg.Transform.Scale)
	return cache, view, nil
}

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		logger.L().Debug("command failed", zap.Error(err))
	}
	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
