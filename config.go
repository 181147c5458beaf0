package joskilo

import (
	"errors"
	"io/fs"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the editor settings that are not part of the document.
type Config struct {
	// How long a status message stays on the message bar.
	StatusTimeout time.Duration `toml:"status_timeout"`

	// Shown on the message bar at startup.
	HelpMessage string `toml:"help_message"`

	// Maximum cells of the file name drawn on the status bar.
	FilenameWidth int `toml:"filename_width"`

	StatusBackground  string `toml:"status_background"`
	StatusForeground  string `toml:"status_foreground"`
	MessageForeground string `toml:"message_foreground"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		StatusTimeout:     5 * time.Second,
		HelpMessage:       "HELP: Ctrl-S = save | Ctrl-Q = quit",
		FilenameWidth:     20,
		StatusBackground:  "#efefef",
		StatusForeground:  "#0000ff",
		MessageForeground: "#ff0000",
	}
}

// LoadConfig reads a TOML file over DefaultConfig. A missing file is not
// an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return DefaultConfig(), err
	}
	if cfg.StatusTimeout < 0 {
		cfg.StatusTimeout = 0
	}
	if cfg.FilenameWidth <= 0 {
		cfg.FilenameWidth = DefaultConfig().FilenameWidth
	}
	return cfg, nil
}
