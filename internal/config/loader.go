package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sirescan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .sirescan YAML configuration file.
// Every field is optional; set fields override the built-in defaults and
// are in turn overridden by explicit CLI flags.
type File struct {
	// BaseURL overrides the register root URL.
	BaseURL string `yaml:"baseURL,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Headers are extra HTTP headers added to every request,
	// e.g. a Cookie for a session that has passed an interstitial.
	Headers map[string]string `yaml:"headers,omitempty"`

	// FirstPageYear and LastPageYear override the crawled page-year range.
	FirstPageYear int `yaml:"firstPageYear,omitempty"`
	LastPageYear  int `yaml:"lastPageYear,omitempty"`

	// SectionMarker overrides the extraction gate substring.
	SectionMarker string `yaml:"sectionMarker,omitempty"`

	// FeeYearSource overrides the fee-year convention:
	// "literal" or "prior-page-year".
	FeeYearSource string `yaml:"feeYearSource,omitempty"`

	// PageDelaySeconds overrides both page delay bounds,
	// expressed as [min, max] in seconds.
	PageDelaySeconds []float64 `yaml:"pageDelaySeconds,omitempty"`
}

// LoadFile loads overrides from a YAML file.
// If the file does not exist it returns ErrConfigNotFound; callers decide
// whether that is fatal based on whether the path was explicit.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies the set fields of the file onto cfg. Unset (zero) fields
// leave cfg untouched. Validation happens afterward via Config.Validate.
func (f *File) Apply(cfg *Config) {
	if f.BaseURL != "" {
		cfg.BaseURL = f.BaseURL
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if len(f.Headers) > 0 {
		if cfg.Headers == nil {
			cfg.Headers = make(map[string]string, len(f.Headers))
		}
		for k, v := range f.Headers {
			cfg.Headers[k] = v
		}
	}
	if f.FirstPageYear != 0 {
		cfg.FirstPageYear = f.FirstPageYear
	}
	if f.LastPageYear != 0 {
		cfg.LastPageYear = f.LastPageYear
	}
	if f.SectionMarker != "" {
		cfg.SectionMarker = f.SectionMarker
	}
	if f.FeeYearSource != "" {
		cfg.FeeYearSource = FeeYearSource(f.FeeYearSource)
	}
	if len(f.PageDelaySeconds) == 2 {
		cfg.PageDelayMin = secondsToDuration(f.PageDelaySeconds[0])
		cfg.PageDelayMax = secondsToDuration(f.PageDelaySeconds[1])
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// FindConfigFile searches for the configuration file in order:
//  1. the explicit path, if given
//  2. .sirescan in the current directory
//  3. .sirescan in the user's home directory
//
// Returns the path if found, or empty string otherwise.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
