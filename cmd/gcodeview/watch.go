package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/philipparndt/gcodeview/internal/logger"
	"github.com/philipparndt/gcodeview/pkg/gcode"
	"github.com/philipparndt/gcodeview/pkg/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Rebuild the preview whenever the G-code file changes",
	Long: `Decode a G-code file, build the preview, and rebuild it each time the
slicer rewrites the file. A file that fails to decode leaves the previous
preview in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	flags.BindView(watchCmd.Flags())
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	log := logger.L()

	cache, view, err := loadPreview(path)
	if err != nil {
		return err
	}
	report := func() {
		payload := cache.Apply(view)
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d segments, %d triangles\n",
			path, payload.VisibleSegments, cache.Trace().SegmentCount(), len(payload.Indices))
	}
	report()

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, log)
	if err != nil {
		return err
	}
	defer fw.Close()

	// Decoding runs on the watcher's timer goroutine; the cache is only
	// touched from this one.
	traces := make(chan *gcode.Trace, 1)
	err = fw.Watch([]string{path}, func(changed string) {
		trace, err := decodeFile(changed)
		if err != nil {
			log.Error("reload failed, keeping previous preview", zap.String("file", changed), zap.Error(err))
			return
		}
		select {
		case <-traces:
		default:
		}
		traces <- trace
	})
	if err != nil {
		return err
	}
	fw.Start()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("watching for changes", zap.String("file", path))
	for {
		select {
		case <-ctx.Done():
			return nil
		case trace := <-traces:
			cache.Load(trace, cfg.Offset(), cfg.Transform.Scale)
			report()
		}
	}
}
