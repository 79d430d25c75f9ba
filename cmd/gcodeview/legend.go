package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gcodeview/pkg/legend"
	"github.com/spf13/cobra"
)

var legendPNG string

var legendCmd = &cobra.Command{
	Use:   "legend [file]",
	Short: "Print or export the color legend of a channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runLegend,
}

func init() {
	rootCmd.AddCommand(legendCmd)
	flags.BindView(legendCmd.Flags())
	legendCmd.Flags().StringVar(&legendPNG, "png", "", "Write the legend as a PNG image to this path")
}

func runLegend(cmd *cobra.Command, args []string) error {
	cache, view, err := loadPreview(args[0])
	if err != nil {
		return err
	}

	entries := cache.Apply(view).Legend
	if legendPNG == "" {
		printLegend(cmd, entries)
		return nil
	}

	f, err := os.Create(legendPNG)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", legendPNG, err)
	}
	if err := legend.WritePNG(f, entries); err != nil {
		f.Close()
		return fmt.Errorf("failed to write legend: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Legend for %s written to %s\n", view.Channel, legendPNG)
	return nil
}
