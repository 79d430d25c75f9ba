package main

import (
	"fmt"

	"github.com/philipparndt/gcodeview/pkg/gcode"
	"github.com/philipparndt/gcodeview/pkg/legend"
	"github.com/philipparndt/gcodeview/pkg/preview"
	"github.com/spf13/cobra"
)

var viewCmd = &cobra.Command{
	Use:   "view [file]",
	Short: "Build the preview geometry for a view",
	Long: `Decode a G-code file, build the preview for the selected color channel,
Z range and visible feature categories, and report the resulting buffers
and legend.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
	flags.BindView(viewCmd.Flags())
}

func runView(cmd *cobra.Command, args []string) error {
	cache, view, err := loadPreview(args[0])
	if err != nil {
		return err
	}

	payload := cache.Apply(view)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Preview")
	fmt.Fprintln(out, "=======")
	fmt.Fprintf(out, "Channel: %s\n", view.Channel)
	fmt.Fprintf(out, "Z range: [%g, %g)\n", view.ZMin, view.ZMax)
	fmt.Fprintf(out, "Visible features: %d of %d\n", len(view.Visible.Categories()), gcode.CategoryCount)
	fmt.Fprintf(out, "Segments: %d of %d visible\n", payload.VisibleSegments, cache.Trace().SegmentCount())
	fmt.Fprintf(out, "Vertices: %d\n", len(payload.Positions))
	fmt.Fprintf(out, "Triangles: %d\n\n", len(payload.Indices))

	printLegend(cmd, payload.Legend)
	return nil
}

func printLegend(cmd *cobra.Command, entries []preview.LegendEntry) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Legend:")
	for _, e := range entries {
		c := legend.RGBA(e.Color)
		fmt.Fprintf(out, "  #%02x%02x%02x  %s\n", c.R, c.G, c.B, e.Label)
	}
}
