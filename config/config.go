package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"arrayv-music/codegen"
	"arrayv-music/translate"
)

// Config is the main configuration structure
type Config struct {
	MaxSlots            int    `json:"maxSlots" yaml:"maxSlots"`
	MaxLines            int    `json:"maxLines" yaml:"maxLines"`
	HighPrecisionTiming bool   `json:"highPrecisionTiming" yaml:"highPrecisionTiming"` // patched ArrayV
	LegacyNamespace     bool   `json:"legacyNamespace" yaml:"legacyNamespace"`         // ArrayV 4.0
	ClassName           string `json:"className" yaml:"className"`
	Palette             string `json:"palette,omitempty" yaml:"palette,omitempty"` // GPL file for inspect
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxSlots:  translate.MaxSlots,
		MaxLines:  codegen.MaxLines,
		ClassName: "MusicSort",
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load reads the config at path over the defaults. An empty path returns the
// defaults; nothing is looked up implicitly.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}

	return cfg, nil
}

// Save writes the config to path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the generated source cannot work with
func (c *Config) Validate() error {
	if c.MaxSlots < 1 || c.MaxSlots > translate.HardMaxSlots {
		return fmt.Errorf("maxSlots must be between 1 and %d, got %d", translate.HardMaxSlots, c.MaxSlots)
	}
	if c.MaxLines < 2 {
		return fmt.Errorf("maxLines must be at least 2, got %d", c.MaxLines)
	}
	if c.ClassName == "" {
		return fmt.Errorf("className must not be empty")
	}
	return nil
}

// Codegen returns the serializer options
func (c *Config) Codegen() codegen.Options {
	return codegen.Options{
		HighPrecisionTiming: c.HighPrecisionTiming,
		LegacyNamespace:     c.LegacyNamespace,
		MaxLines:            c.MaxLines,
		ClassName:           c.ClassName,
	}
}
