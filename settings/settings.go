// Package settings implements the on-disk editor preferences file:
// default tile size, default brush size/color, merge-window and
// autosave-interval overrides, and the recent-file list. Grounded on
// the teacher's github.com/pelletier/go-toml/v2 dependency for the
// file format and github.com/mitchellh/go-homedir for locating the
// per-user config directory portably.
package settings

import (
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"
)

// ConfigDirName is the directory created under the user's home for
// tileloom's configuration files.
const ConfigDirName = ".config/tileloom"

// FileName is the settings file's name inside ConfigDirName.
const FileName = "settings.toml"

// Settings is the full set of user-overridable editor preferences.
type Settings struct {
	DefaultTileSize   int           `toml:"defaultTileSize"`
	DefaultBrushSize  float32       `toml:"defaultBrushSize"`
	DefaultBrushColor string        `toml:"defaultBrushColor"`
	MergeWindow       time.Duration `toml:"mergeWindow"`
	AutosaveInterval  time.Duration `toml:"autosaveInterval"`
	RecentFiles       []string      `toml:"recentFiles"`
	MaxRecentFiles    int           `toml:"maxRecentFiles"`
}

// Default returns the built-in preference values, used when no
// settings file exists yet.
func Default() Settings {
	return Settings{
		DefaultTileSize:   500,
		DefaultBrushSize:  10,
		DefaultBrushColor: "#000000",
		MergeWindow:       500 * time.Millisecond,
		AutosaveInterval:  2 * time.Second,
		MaxRecentFiles:    10,
	}
}

// Path returns the absolute path to the settings file, resolving the
// user's home directory via go-homedir (which, unlike os.UserHomeDir,
// accounts for cross-shell and sudo edge cases the teacher's own
// dependency choice already covers).
func Path() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ConfigDirName, FileName), nil
}

// Load reads settings from disk, returning Default() if no file exists
// yet.
func Load() (Settings, error) {
	p, err := Path()
	if err != nil {
		return Settings{}, err
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, err
	}
	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	if s.MaxRecentFiles == 0 {
		s.MaxRecentFiles = Default().MaxRecentFiles
	}
	return s, nil
}

// Save writes s to disk, creating the config directory if needed.
func (s Settings) Save() error {
	p, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

// PushRecentFile adds path to the front of the recent-file list,
// de-duplicating and trimming to MaxRecentFiles.
func (s *Settings) PushRecentFile(path string) {
	out := make([]string, 0, len(s.RecentFiles)+1)
	out = append(out, path)
	for _, p := range s.RecentFiles {
		if p != path {
			out = append(out, p)
		}
	}
	max := s.MaxRecentFiles
	if max == 0 {
		max = Default().MaxRecentFiles
	}
	if len(out) > max {
		out = out[:max]
	}
	s.RecentFiles = out
}
