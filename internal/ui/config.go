package ui

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/OpenTraceLab/bubbleproof/internal/session"
	"github.com/OpenTraceLab/bubbleproof/pkg/interaction"
)

// Config stores persistent UI preferences.
type Config struct {
	Sync       bool    `json:"sync"`
	Tool       string  `json:"tool"`
	HandleSize float64 `json:"handle_size,omitempty"` // Overlay handle side in pixels (0 = default)
	LastPage   string  `json:"last_page,omitempty"`
}

// DefaultConfig returns the preferences used on first launch.
func DefaultConfig() *Config {
	return &Config{
		Sync: true,
		Tool: interaction.ToolSelect.String(),
	}
}

// Options converts the preferences into session options.
func (c *Config) Options() session.Options {
	opts := session.DefaultOptions()
	opts.Sync = c.Sync
	if tool, err := interaction.ParseTool(c.Tool); err == nil {
		opts.Tool = tool
	}
	if c.HandleSize > 0 {
		opts.Overlay.HandleSize = c.HandleSize
	}
	return opts
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	var configDir string
	if os.Getenv("APPDATA") != "" {
		// Windows: use %APPDATA%\Bubbleproof
		configDir = filepath.Join(os.Getenv("APPDATA"), "Bubbleproof")
	} else {
		// Linux/macOS: use ~/.config/bubbleproof
		configDir = filepath.Join(homeDir, ".config", "bubbleproof")
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the UI preferences
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return loadConfigFile(configPath)
}

// SaveConfig saves the UI preferences
func SaveConfig(config *Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return saveConfigFile(configPath, config)
}

func loadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}
	return config, nil
}

func saveConfigFile(path string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
