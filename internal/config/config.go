// Package config loads the per-project hookshield configuration and manages
// managed hook entries inside Claude settings documents.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hookshield/hookshield/internal/constants"
)

// Scan modes for both hook packages.
const (
	ModeWarn  = "warn"
	ModeBlock = "block"
)

// RegexList holds ordered regex source strings from user configuration.
// Sources are compiled once per invocation; invalid entries are dropped.
type RegexList struct {
	Regex []string `json:"regex,omitempty"`
}

// FileFilters holds staged-file scan filters (secrets section only).
type FileFilters struct {
	// Exclude is a list of doublestar globs matched against staged paths.
	Exclude []string `json:"exclude,omitempty"`
}

// HookConfig is one package's section of the project config document.
type HookConfig struct {
	Mode          string      `json:"mode,omitempty"`
	EnabledEvents []string    `json:"enabledEvents,omitempty"`
	ScanGitCommit bool        `json:"scanGitCommit,omitempty"`
	Ignore        RegexList   `json:"ignore,omitempty"`
	Allow         RegexList   `json:"allow,omitempty"`
	Files         FileFilters `json:"files,omitempty"`
}

// EventEnabled reports whether the section lists the event.
func (hc *HookConfig) EventEnabled(event string) bool {
	for _, e := range hc.EnabledEvents {
		if e == event {
			return true
		}
	}
	return false
}

// Config is the shared project configuration document. Each hook package owns
// an independent top-level section; unknown keys are preserved on write.
type Config struct {
	Security    HookConfig        `json:"security,omitempty"`
	Secrets     HookConfig        `json:"secrets,omitempty"`
	LogRotation LogRotationConfig `json:"logRotation,omitempty"`
	Other       map[string]any    `json:"-"`
}

// DefaultConfig returns the structurally complete defaults used when the
// config file or a section is absent. Warn-first: neither package blocks
// until the user opts in.
func DefaultConfig() *Config {
	return &Config{
		Security: HookConfig{
			Mode:          ModeWarn,
			EnabledEvents: []string{constants.EventPreToolUse, constants.EventPermissionRequest},
		},
		Secrets: HookConfig{
			Mode:          ModeWarn,
			EnabledEvents: []string{constants.EventPreToolUse, constants.EventUserPromptSubmit},
		},
		LogRotation: DefaultLogRotationConfig(),
		Other:       map[string]any{},
	}
}

// Section returns the section owned by the given hook key.
func (c *Config) Section(hookKey string) (*HookConfig, error) {
	switch hookKey {
	case constants.HookKeyRisk:
		return &c.Security, nil
	case constants.HookKeySecrets:
		return &c.Secrets, nil
	}
	return nil, fmt.Errorf("unknown hook key '%s'", hookKey)
}

// GetProjectConfigPath returns the config file path for the project or
// global scope.
func GetProjectConfigPath(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return constants.GetConfigPath(homeDir), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %v", err)
	}
	return constants.GetConfigPath(cwd), nil
}

// LoadConfig reads the project configuration, applying defaults for an
// absent file or absent sections. Configuration is read fresh on every
// invocation - there is no cross-run cache.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath) // #nosec G304 - controlled config paths
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	// Preserve unknown fields
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %v", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %v", err)
	}
	delete(raw, "security")
	delete(raw, "secrets")
	delete(raw, "logRotation")
	cfg.Other = raw

	// Sections present but missing a mode fall back to warn.
	if cfg.Security.Mode == "" {
		cfg.Security.Mode = ModeWarn
	}
	if cfg.Secrets.Mode == "" {
		cfg.Secrets.Mode = ModeWarn
	}

	return cfg, nil
}

// SaveConfig writes the configuration, merging back unknown keys.
func SaveConfig(configPath string, cfg *Config) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory: %v", err)
	}

	out := map[string]any{}
	for k, v := range cfg.Other {
		out[k] = v
	}
	out["security"] = cfg.Security
	out["secrets"] = cfg.Secrets
	out["logRotation"] = cfg.LogRotation

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %v", err)
	}

	return writeFileAtomic(configPath, data, 0o600)
}

// writeFileAtomic writes data to a sibling temp file and renames it into
// place so a crash never leaves a half-written document behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %v", dir, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %v", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %v", tmpName, err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %v", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to rename %s to %s: %v", tmpName, path, err)
	}
	return nil
}

// GetPatternsPath returns the custom patterns file path for the scope.
func GetPatternsPath(global bool) (string, error) {
	if global {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return filepath.Join(homeDir, constants.ClaudeDir, constants.HooksSubDir, constants.PatternsFileName), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %v", err)
	}
	return filepath.Join(cwd, constants.ClaudeDir, constants.HooksSubDir, constants.PatternsFileName), nil
}
