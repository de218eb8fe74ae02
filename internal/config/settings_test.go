package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hookshield/hookshield/internal/constants"
)

const (
	tokenRisk    = "hookshield run risk"
	tokenSecrets = "hookshield run secrets"
)

func buildCmd(event string) (string, error) {
	return BuildHookCommand("/usr/local/bin/hookshield", constants.HookKeyRisk, event, "")
}

func TestLoadSettingsMissingFile(t *testing.T) {
	doc, err := LoadSettings(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if doc.Hooks != nil || len(doc.Other) != 0 {
		t.Errorf("expected empty document, got %+v", doc)
	}
}

func TestSettingsRoundTripPreservesUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	original := `{
  "permissions": {"allow": ["Bash(ls:*)"]},
  "model": "opus",
  "hooks": {
    "PreToolUse": [
      {"matcher": "Bash", "hooks": [{"type": "command", "command": "other-tool check"}]}
    ]
  }
}`
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveSettings(path, doc); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}

	if _, ok := got["permissions"]; !ok {
		t.Error("permissions key lost on round trip")
	}
	if got["model"] != "opus" {
		t.Errorf("model = %v, want opus", got["model"])
	}
	if _, ok := got["hooks"]; !ok {
		t.Error("hooks key lost on round trip")
	}
}

func TestRemoveManagedIdempotent(t *testing.T) {
	doc := &SettingsDocument{Other: map[string]any{}}
	if err := ApplyForEvents(doc, tokenRisk, []string{constants.EventPreToolUse}, "*", false, nil, buildCmd); err != nil {
		t.Fatal(err)
	}

	if removed := RemoveManaged(doc, tokenRisk); removed != 1 {
		t.Errorf("first removal removed %d, want 1", removed)
	}
	if removed := RemoveManaged(doc, tokenRisk); removed != 0 {
		t.Errorf("second removal removed %d, want 0", removed)
	}
	if doc.Hooks != nil {
		t.Errorf("empty hooks map should be nil, got %v", doc.Hooks)
	}
}

func TestRemoveManagedNonInterference(t *testing.T) {
	foreign := HookMatcher{
		Matcher: "Bash",
		Hooks:   []HookCommand{{Type: "command", Command: "other-tool check --strict"}},
	}
	doc := &SettingsDocument{
		Hooks: map[string][]HookMatcher{
			constants.EventPreToolUse: {foreign},
		},
		Other: map[string]any{},
	}

	if err := ApplyForEvents(doc, tokenRisk, []string{constants.EventPreToolUse}, "*", false, nil, buildCmd); err != nil {
		t.Fatal(err)
	}
	if removed := RemoveManaged(doc, tokenRisk); removed != 1 {
		t.Errorf("removed %d entries, want 1", removed)
	}

	got := doc.Hooks[constants.EventPreToolUse]
	if len(got) != 1 || !reflect.DeepEqual(got[0], foreign) {
		t.Errorf("foreign entry disturbed: %+v", got)
	}
}

func TestRemoveManagedOtherOwnersUntouched(t *testing.T) {
	doc := &SettingsDocument{Other: map[string]any{}}
	secretsCmd := func(event string) (string, error) {
		return BuildHookCommand("/usr/local/bin/hookshield", constants.HookKeySecrets, event, "")
	}
	if err := ApplyForEvents(doc, tokenRisk, []string{constants.EventPreToolUse}, "*", false, nil, buildCmd); err != nil {
		t.Fatal(err)
	}
	if err := ApplyForEvents(doc, tokenSecrets, []string{constants.EventPreToolUse}, "*", false, nil, secretsCmd); err != nil {
		t.Fatal(err)
	}

	RemoveManaged(doc, tokenRisk)

	if got := CountManaged(doc, tokenSecrets); got != 1 {
		t.Errorf("secrets entries after removing risk = %d, want 1", got)
	}
}

func TestApplyForEventsIdempotent(t *testing.T) {
	doc := &SettingsDocument{Other: map[string]any{}}
	events := []string{constants.EventPreToolUse, constants.EventPermissionRequest}

	for i := 0; i < 3; i++ {
		if err := ApplyForEvents(doc, tokenRisk, events, "*", false, nil, buildCmd); err != nil {
			t.Fatal(err)
		}
	}

	if got := CountManaged(doc, tokenRisk); got != 2 {
		t.Errorf("managed entries after 3 installs = %d, want 2", got)
	}
	for _, event := range events {
		if len(doc.Hooks[event]) != 1 {
			t.Errorf("event %s has %d groups, want 1", event, len(doc.Hooks[event]))
		}
	}
}

func TestApplyForEventsRewiresEvents(t *testing.T) {
	doc := &SettingsDocument{Other: map[string]any{}}
	if err := ApplyForEvents(doc, tokenRisk, []string{constants.EventPreToolUse}, "*", false, nil, buildCmd); err != nil {
		t.Fatal(err)
	}
	if err := ApplyForEvents(doc, tokenRisk, []string{constants.EventPermissionRequest}, "*", false, nil, buildCmd); err != nil {
		t.Fatal(err)
	}

	if _, ok := doc.Hooks[constants.EventPreToolUse]; ok {
		t.Error("stale PreToolUse entry survived a reconfigure")
	}
	if len(doc.Hooks[constants.EventPermissionRequest]) != 1 {
		t.Error("PermissionRequest entry missing after reconfigure")
	}
}

func TestAddManagedFields(t *testing.T) {
	timeout := 30
	doc := &SettingsDocument{Other: map[string]any{}}
	AddManaged(doc, constants.EventPreToolUse, "Bash", "hookshield run risk --event PreToolUse", tokenRisk, true, &timeout)

	groups := doc.Hooks[constants.EventPreToolUse]
	if len(groups) != 1 || len(groups[0].Hooks) != 1 {
		t.Fatalf("unexpected structure: %+v", groups)
	}
	h := groups[0].Hooks[0]
	if h.Type != "command" || !h.Async || h.Timeout == nil || *h.Timeout != 30 {
		t.Errorf("handler fields wrong: %+v", h)
	}
	if h.ManagedBy != tokenRisk {
		t.Errorf("ManagedBy = %q, want %q", h.ManagedBy, tokenRisk)
	}
	if groups[0].Matcher != "Bash" {
		t.Errorf("matcher = %q, want Bash", groups[0].Matcher)
	}
}

func TestIsManagedLegacySubstring(t *testing.T) {
	// Entries written by older versions carry no ManagedBy field; the token
	// inside the command string still identifies them.
	legacy := HookCommand{Type: "command", Command: "/old/path/hookshield run risk --event PreToolUse"}
	if !isManaged(legacy, tokenRisk) {
		t.Error("legacy token-in-command entry not recognized as managed")
	}
	if isManaged(legacy, tokenSecrets) {
		t.Error("legacy entry matched the wrong owner")
	}

	structured := HookCommand{Type: "command", Command: "wrapper.sh", ManagedBy: tokenRisk}
	if !isManaged(structured, tokenRisk) {
		t.Error("structured ManagedBy entry not recognized as managed")
	}
}

func TestUninstallRestoresDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	original := `{
  "permissions": {"deny": ["Bash(rm:*)"]},
  "hooks": {
    "Stop": [{"hooks": [{"type": "command", "command": "notify-send done"}]}]
  }
}`
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadSettings(path)
	if err != nil {
		t.Fatal(err)
	}
	before, err := json.Marshal(doc.Hooks)
	if err != nil {
		t.Fatal(err)
	}

	if err := ApplyForEvents(doc, tokenRisk, []string{constants.EventPreToolUse}, "*", false, nil, buildCmd); err != nil {
		t.Fatal(err)
	}
	RemoveManaged(doc, tokenRisk)

	after, err := json.Marshal(doc.Hooks)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Errorf("install+uninstall changed document:\nbefore %s\nafter  %s", before, after)
	}
}

func TestCountManagedEmpty(t *testing.T) {
	doc := &SettingsDocument{Other: map[string]any{}}
	if got := CountManaged(doc, tokenRisk); got != 0 {
		t.Errorf("CountManaged on empty doc = %d, want 0", got)
	}
}
