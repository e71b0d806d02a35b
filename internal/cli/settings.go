package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Settings are the user's gapcheck defaults, read from ~/.gapcheck.yaml.
type Settings struct {
	HistoryPath  string `yaml:"historyPath"`
	Format       string `yaml:"format"`
	NoColor      bool   `yaml:"noColor"`
	HistoryLimit int    `yaml:"historyLimit"`
	Concurrency  int    `yaml:"concurrency"`
}

func defaultSettings() Settings {
	return Settings{
		Format:       formatText,
		HistoryLimit: 20,
		Concurrency:  4,
	}
}

// DefaultSettingsPath is ~/.gapcheck.yaml, or empty when there is no home directory.
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gapcheck.yaml")
}

// LoadSettings reads path over the defaults. A missing file is an error only
// when required is set.
func LoadSettings(path string, required bool) (Settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return s, nil
		}
		return s, eris.Wrapf(err, "read settings %s", path)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, eris.Wrapf(err, "parse settings %s", path)
	}

	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	if s.Format == "" {
		s.Format = formatText
	}
	if s.HistoryLimit <= 0 {
		s.HistoryLimit = 20
	}
	if s.Concurrency <= 0 {
		s.Concurrency = 4
	}
	if strings.HasPrefix(s.HistoryPath, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			s.HistoryPath = filepath.Join(home, s.HistoryPath[2:])
		}
	}
	return s, nil
}
