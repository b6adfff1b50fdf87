// Package config loads analyzer settings from a repo-local config file.
// YAML, JSON, and TOML are accepted, chosen by file extension; unknown keys
// are rejected in all three so typos fail loudly.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/e-santo/modtrace/internal/report"
	"github.com/e-santo/modtrace/internal/safeio"
)

const (
	readConfigFileErrFmt = "read config file %s: %w"
	parseConfigErrFmt    = "parse config file %s: %w"
)

var discoveryNames = []string{".modtrace.yml", ".modtrace.yaml", "modtrace.json", "modtrace.toml"}

type Values struct {
	Workers  int
	Format   report.Format
	SkipDirs []string
}

type Overrides struct {
	Workers  *int
	Format   *string
	SkipDirs []string
}

func Defaults() Values {
	return Values{
		Workers: 0, // 0 means one worker per CPU
		Format:  report.FormatTable,
	}
}

func (o Overrides) Apply(values Values) Values {
	if o.Workers != nil {
		values.Workers = *o.Workers
	}
	if o.Format != nil {
		values.Format = report.Format(strings.ToLower(strings.TrimSpace(*o.Format)))
	}
	if len(o.SkipDirs) > 0 {
		values.SkipDirs = append([]string{}, o.SkipDirs...)
	}
	return values
}

func (v *Values) Validate() error {
	if v.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", v.Workers)
	}
	if _, err := report.ParseFormat(string(v.Format)); err != nil {
		return err
	}
	for _, dir := range v.SkipDirs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("skip_dirs entries must not be empty")
		}
		if strings.ContainsAny(dir, `/\`) {
			return fmt.Errorf("skip_dirs entries must be directory names, got %q", dir)
		}
	}
	return nil
}

// Load discovers and parses the config for repoPath. explicitPath, when
// set, points at a specific file (which may live outside the repo) and it
// is an error for it to be missing. Without a config file, empty overrides
// are returned.
func Load(repoPath, explicitPath string) (Overrides, string, error) {
	repoAbs, err := filepath.Abs(repoPath)
	if err != nil {
		return Overrides{}, "", fmt.Errorf("resolve repo path: %w", err)
	}

	configPath, found, err := resolveConfigPath(repoAbs, strings.TrimSpace(explicitPath))
	if err != nil {
		return Overrides{}, "", err
	}
	if !found {
		return Overrides{}, "", nil
	}

	data, err := readConfigFile(repoAbs, configPath, strings.TrimSpace(explicitPath) != "")
	if err != nil {
		return Overrides{}, "", fmt.Errorf(readConfigFileErrFmt, configPath, err)
	}

	raw, err := parseConfig(configPath, data)
	if err != nil {
		return Overrides{}, "", fmt.Errorf(parseConfigErrFmt, configPath, err)
	}

	return raw.toOverrides(), configPath, nil
}

func resolveConfigPath(repoPath, explicitPath string) (string, bool, error) {
	if explicitPath != "" {
		candidate := explicitPath
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(repoPath, candidate)
		}
		candidate = filepath.Clean(candidate)
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file not found: %s", candidate)
			}
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
		return candidate, true, nil
	}

	for _, name := range discoveryNames {
		candidate := filepath.Join(repoPath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
	}

	return "", false, nil
}

func readConfigFile(repoPath, path string, explicitProvided bool) ([]byte, error) {
	if !explicitProvided || isPathUnderRoot(repoPath, path) {
		return safeio.ReadFileUnder(repoPath, path)
	}
	return safeio.ReadFile(path)
}

func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

type rawConfig struct {
	Workers  *int     `yaml:"workers" json:"workers" toml:"workers"`
	Format   *string  `yaml:"format" json:"format" toml:"format"`
	SkipDirs []string `yaml:"skip_dirs" json:"skip_dirs" toml:"skip_dirs"`
}

func parseConfig(path string, data []byte) (rawConfig, error) {
	var cfg rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid JSON config: %w", err)
		}
		if decoder.More() {
			return rawConfig{}, fmt.Errorf("invalid JSON config: multiple JSON values")
		}
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid TOML config: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid YAML config: %w", err)
		}
	}
	return cfg, nil
}

func (c rawConfig) toOverrides() Overrides {
	return Overrides{
		Workers:  c.Workers,
		Format:   c.Format,
		SkipDirs: c.SkipDirs,
	}
}
