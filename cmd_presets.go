package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"posterpad/internal/surface"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the available page sizes",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	presetsCmd.Flags().String("file", "", "YAML or TOML file with extra presets to merge")
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	presets := surface.DefaultPresets()
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		var err error
		if presets, err = surface.LoadPresets(file); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Page presets (pixels at 96 dpi)")
	fmt.Fprintln(w, "===============================")
	for _, p := range presets {
		marker := " "
		if p.Name == surface.DefaultPreset {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-16s %6g x %-6g\n", marker, p.Name, p.Width, p.Height)
	}
	return nil
}
