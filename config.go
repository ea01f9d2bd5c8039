package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"posterpad/internal/interaction"
	"posterpad/internal/surface"
)

type Config struct {
	SaveDirectory   string
	Preset          string
	Zoom            int
	Policy          string
	ZoomFloor       int
	EmptyClick      string
	ReclampOnPreset bool
	PresetsFile     string
	Confirmations   bool

	// Warnings holds lines that could not be applied.
	Warnings []string
}

func defaultConfig() *Config {
	return &Config{
		Preset:        surface.DefaultPreset,
		Zoom:          100,
		Policy:        "default",
		Confirmations: true,
	}
}

// loadConfig reads ~/.posterpadrc. A missing or unreadable file gives the
// defaults.
func loadConfig() *Config {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return defaultConfig()
	}

	file, err := os.Open(filepath.Join(homeDir, ".posterpadrc"))
	if err != nil {
		return defaultConfig()
	}
	defer file.Close()

	return parseConfig(file, homeDir)
}

func parseConfig(r io.Reader, homeDir string) *Config {
	config := defaultConfig()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			config.warn("ignoring line %q", line)
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "savedirectory", "save_directory", "savedir":
			config.SaveDirectory = expandPath(value, homeDir)
		case "preset", "pagesize":
			config.Preset = value
		case "zoom":
			if n, err := strconv.Atoi(strings.TrimSuffix(value, "%")); err == nil {
				config.Zoom = n
			} else {
				config.warn("bad zoom %q", value)
			}
		case "policy":
			config.Policy = strings.ToLower(value)
		case "zoomfloor", "zoom_floor":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				config.ZoomFloor = n
			} else {
				config.warn("bad zoomfloor %q", value)
			}
		case "emptyclick", "empty_click":
			config.EmptyClick = strings.ToLower(value)
		case "reclamponpreset", "reclamp_on_preset":
			config.ReclampOnPreset = strings.ToLower(value) == "true"
		case "presetsfile", "presets_file", "presets":
			config.PresetsFile = expandPath(value, homeDir)
		case "confirmations", "confirm":
			config.Confirmations = strings.ToLower(value) == "true"
		default:
			config.warn("unknown key %q", key)
		}
	}

	return config
}

func (c *Config) warn(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func expandPath(value, homeDir string) string {
	if strings.HasPrefix(value, "~") && homeDir != "" {
		value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
	}
	if !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	return value
}

// InteractionPolicy resolves the named policy and applies the zoom floor and
// empty-click overrides on top of it.
func (c *Config) InteractionPolicy() (interaction.Policy, error) {
	policy, err := interaction.PolicyByName(c.Policy)
	if err != nil {
		return interaction.Policy{}, err
	}
	if c.ZoomFloor > 0 {
		policy.ZoomMin = min(c.ZoomFloor, policy.ZoomMax)
	}
	if c.EmptyClick != "" {
		ec, err := interaction.ParseEmptyClick(c.EmptyClick)
		if err != nil {
			return interaction.Policy{}, err
		}
		policy.EmptyClick = ec
	}
	return policy, nil
}

// Presets returns the built-in table merged with PresetsFile, if set.
func (c *Config) Presets() (surface.Presets, error) {
	if c.PresetsFile == "" {
		return surface.DefaultPresets(), nil
	}
	return surface.LoadPresets(c.PresetsFile)
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" || filepath.IsAbs(filename) {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}
