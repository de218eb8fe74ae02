package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hookshield/hookshield/internal/constants"
)

// HookCommand is a single handler inside a settings hook group. ManagedBy is
// the canonical ownership marker on entries this package writes; the legacy
// contract of embedding the ownership token in the command string is still
// honored when reading documents written by older versions.
type HookCommand struct {
	Type      string `json:"type"`
	Command   string `json:"command"`
	Async     bool   `json:"async,omitempty"`
	Timeout   *int   `json:"timeout,omitempty"`
	ManagedBy string `json:"managedBy,omitempty"`
}

// HookMatcher is one hook group: a tool matcher plus its ordered handlers.
type HookMatcher struct {
	Matcher string        `json:"matcher,omitempty"`
	Hooks   []HookCommand `json:"hooks"`
}

// SettingsDocument is a Claude settings file. Only the hooks map is patched;
// every other top-level key is preserved byte-for-byte on write.
type SettingsDocument struct {
	Hooks map[string][]HookMatcher `json:"hooks,omitempty"`
	Other map[string]any           `json:"-"`
}

// SettingsScope selects which of the three settings files to operate on.
type SettingsScope string

const (
	ScopeGlobal  SettingsScope = "global"  // ~/.claude/settings.json
	ScopeProject SettingsScope = "project" // ./.claude/settings.json
	ScopeLocal   SettingsScope = "local"   // ./.claude/settings.local.json (untracked)
)

// GetSettingsPath returns the settings file path for the given scope.
func GetSettingsPath(scope SettingsScope) (string, error) {
	switch scope {
	case ScopeGlobal:
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %v", err)
		}
		return filepath.Join(homeDir, constants.ClaudeDir, constants.SettingsFileName), nil
	case ScopeProject, ScopeLocal:
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %v", err)
		}
		name := constants.SettingsFileName
		if scope == ScopeLocal {
			name = constants.LocalSettingsFile
		}
		return filepath.Join(cwd, constants.ClaudeDir, name), nil
	}
	return "", fmt.Errorf("unknown settings scope '%s'", scope)
}

// LoadSettings reads a settings document, preserving unknown top-level keys.
// A missing file yields an empty document, never an error.
func LoadSettings(settingsPath string) (*SettingsDocument, error) {
	doc := &SettingsDocument{
		Other: make(map[string]any),
	}

	if _, err := os.Stat(settingsPath); os.IsNotExist(err) {
		return doc, nil
	}

	data, err := os.ReadFile(settingsPath) // #nosec G304 - controlled settings paths
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %v", settingsPath, err)
	}

	// First unmarshal into a generic map to preserve unknown fields
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse settings JSON in %s: %v", settingsPath, err)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings in %s: %v", settingsPath, err)
	}
	delete(raw, "hooks")
	doc.Other = raw

	return doc, nil
}

// SaveSettings writes the document with a write-temp-then-rename so a crash
// never leaves a half-written settings file. There is no locking: concurrent
// invocations against the same file are a known race and the last writer
// wins (single local developer tool).
func SaveSettings(settingsPath string, doc *SettingsDocument) error {
	dir := filepath.Dir(settingsPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create directory %s: %v", dir, err)
	}

	output := make(map[string]any)
	for k, v := range doc.Other {
		output[k] = v
	}
	if len(doc.Hooks) > 0 {
		output["hooks"] = doc.Hooks
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %v", err)
	}

	return writeFileAtomic(settingsPath, data, 0o600)
}

// isManaged reports whether a handler belongs to the owner identified by
// token, either via the structured ManagedBy field or the legacy
// token-in-command substring contract.
func isManaged(h HookCommand, token string) bool {
	return (h.ManagedBy != "" && h.ManagedBy == token) || strings.Contains(h.Command, token)
}

// RemoveManaged drops every handler owned by token from the document,
// pruning hook groups and event keys that become empty. All non-matching
// entries keep their original relative order and structure, so re-running on
// a document with no managed entries is a no-op and another owner's entries
// are never disturbed.
func RemoveManaged(doc *SettingsDocument, token string) int {
	removed := 0
	for event, groups := range doc.Hooks {
		var keptGroups []HookMatcher
		for _, group := range groups {
			var keptHooks []HookCommand
			for _, h := range group.Hooks {
				if isManaged(h, token) {
					removed++
					continue
				}
				keptHooks = append(keptHooks, h)
			}
			if len(keptHooks) > 0 {
				group.Hooks = keptHooks
				keptGroups = append(keptGroups, group)
			}
		}
		if len(keptGroups) > 0 {
			doc.Hooks[event] = keptGroups
		} else {
			delete(doc.Hooks, event)
		}
	}
	if len(doc.Hooks) == 0 {
		doc.Hooks = nil
	}
	return removed
}

// AddManaged appends one new hook group for the event. Appending rather than
// replacing: matchers and handlers for the same event from other sources can
// coexist.
func AddManaged(doc *SettingsDocument, event, matcher, command, token string, async bool, timeout *int) {
	if doc.Hooks == nil {
		doc.Hooks = make(map[string][]HookMatcher)
	}
	doc.Hooks[event] = append(doc.Hooks[event], HookMatcher{
		Matcher: matcher,
		Hooks: []HookCommand{{
			Type:      "command",
			Command:   command,
			Async:     async,
			Timeout:   timeout,
			ManagedBy: token,
		}},
	})
}

// ApplyForEvents installs the owner's handlers for exactly the given events:
// stale entries are removed first, then one entry is added per event. The
// remove-then-add sequencing is what makes repeated setup invocations
// idempotent rather than additive.
func ApplyForEvents(doc *SettingsDocument, token string, events []string, matcher string, async bool, timeout *int, buildCommand func(event string) (string, error)) error {
	RemoveManaged(doc, token)
	for _, event := range events {
		command, err := buildCommand(event)
		if err != nil {
			return err
		}
		AddManaged(doc, event, matcher, command, token, async, timeout)
	}
	return nil
}

// CountManaged counts handlers owned by token across all events.
func CountManaged(doc *SettingsDocument, token string) int {
	count := 0
	for _, groups := range doc.Hooks {
		for _, group := range groups {
			for _, h := range group.Hooks {
				if isManaged(h, token) {
					count++
				}
			}
		}
	}
	return count
}

// PrintManaged shows which managed handlers would be removed, grouped by
// event in sorted order for stable output.
func PrintManaged(doc *SettingsDocument, token string) {
	events := make([]string, 0, len(doc.Hooks))
	for event := range doc.Hooks {
		events = append(events, event)
	}
	sort.Strings(events)

	for _, event := range events {
		found := false
		for _, group := range doc.Hooks[event] {
			for _, h := range group.Hooks {
				if !isManaged(h, token) {
					continue
				}
				if !found {
					fmt.Printf("%s:\n", event)
					found = true
				}
				fmt.Printf("  Matcher: %s\n", group.Matcher)
				fmt.Printf("    - %s\n", h.Command)
			}
		}
		if found {
			fmt.Println()
		}
	}
}
