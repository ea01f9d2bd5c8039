package main

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the page editor",
	Long:  "Open the interactive editor on an empty page. Settings from ~/.posterpadrc are overridden by flags.",
	Args:  cobra.NoArgs,
	RunE:  runEdit,
}

func init() {
	f := editCmd.Flags()
	f.String("preset", "", "page size preset (see 'posterpad presets')")
	f.Int("zoom", 0, "initial zoom in percent")
	f.String("policy", "", "interaction policy: default or legacy")
	f.String("presets-file", "", "YAML or TOML file with extra page presets")
	f.String("log-file", "", "write debug logs to this file")
	rootCmd.AddCommand(editCmd)
}

// applyFlags copies flags the user set over the config file values.
func applyFlags(cmd *cobra.Command, config *Config) {
	f := cmd.Flags()
	if f.Changed("preset") {
		config.Preset, _ = f.GetString("preset")
	}
	if f.Changed("zoom") {
		config.Zoom, _ = f.GetInt("zoom")
	}
	if f.Changed("policy") {
		config.Policy, _ = f.GetString("policy")
	}
	if f.Changed("presets-file") {
		config.PresetsFile, _ = f.GetString("presets-file")
	}
}

func runEdit(cmd *cobra.Command, args []string) error {
	config := loadConfig()
	applyFlags(cmd, config)

	logPath, _ := cmd.Flags().GetString("log-file")
	logger, closer, err := newLogger(logPath, slog.LevelDebug)
	if err != nil {
		return err
	}
	defer closer.Close()

	for _, w := range config.Warnings {
		logger.Warn("config", "problem", w)
	}

	m, err := newModel(config, logger)
	if err != nil {
		return err
	}
	logger.Info("editor started", "preset", config.Preset, "zoom", m.surface.ZoomFactor(), "policy", config.Policy)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("editor closed")
	return nil
}
