package main

import (
	"fmt"
	"strings"

	"github.com/philipparndt/gcodeview/pkg/analysis"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a G-code file",
	Long:  "Show point and segment counts, printed dimensions, layers, extrusion totals and per-feature statistics.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	trace, err := decodeFile(filename)
	if err != nil {
		return err
	}

	result := analysis.AnalyzeTrace(trace)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "G-code File Information")
	fmt.Fprintln(out, "=======================")
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Toolpath:")
	fmt.Fprintf(out, "  Points: %d\n", result.Points)
	fmt.Fprintf(out, "  Segments: %d (%d printed)\n", result.Segments, result.PrintedSegments)
	fmt.Fprintf(out, "  Layers: %d\n", result.Layers)
	fmt.Fprintf(out, "  Extrusion: %.3f mm\n", result.TotalExtrusion)
	fmt.Fprintf(out, "  Printed path: %.3f mm\n", result.PrintedLength)
	fmt.Fprintf(out, "  Travel path: %.3f mm\n\n", result.TravelLength)

	if result.PrintedSegments > 0 {
		fmt.Fprintln(out, "Printed Bounding Box:")
		fmt.Fprintf(out, "  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
		fmt.Fprintf(out, "  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
		fmt.Fprintf(out, "  Size: %s\n", analysis.FormatVector(result.Dimensions))
		fmt.Fprintf(out, "  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

		fmt.Fprintf(out, "Layer heights: %s\n\n", formatHeights(analysis.LayerHeights(trace)))

		fmt.Fprintln(out, "Ranges:")
		fmt.Fprintf(out, "  Width: %s\n", analysis.FormatRange(result.Width))
		fmt.Fprintf(out, "  Height: %s\n", analysis.FormatRange(result.Height))
		fmt.Fprintf(out, "  Fan speed: %s\n", analysis.FormatRange(result.FanSpeed))
		fmt.Fprintf(out, "  Temperature: %s\n\n", analysis.FormatRange(result.Temperature))
	}

	fmt.Fprintln(out, "Features:")
	for _, stats := range analysis.LargestCategories(result) {
		fmt.Fprintf(out, "  %-28s %8d segments %12.3f mm\n", stats.Category, stats.Segments, stats.PathLength)
	}
	return nil
}

// formatHeights lists layer Z values, eliding the middle of long prints.
func formatHeights(heights []float32) string {
	const shown = 3
	parts := make([]string, 0, 2*shown+1)
	for i, z := range heights {
		if len(heights) > 2*shown && i == shown {
			parts = append(parts, fmt.Sprintf("... (%d layers)", len(heights)))
		}
		if len(heights) > 2*shown && i >= shown && i < len(heights)-shown {
			continue
		}
		parts = append(parts, fmt.Sprintf("%.3f", z))
	}
	return strings.Join(parts, ", ")
}
