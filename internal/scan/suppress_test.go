package scan

import (
	"testing"

	"github.com/hookshield/hookshield/internal/rules"
)

func TestSuppress(t *testing.T) {
	findings := []Finding{{ID: "alpha", Severity: rules.SeverityHigh}}
	allow := CompileList([]string{`known-safe`})
	ignore := CompileList([]string{`vendor/fixture`})

	tests := []struct {
		name     string
		findings []Finding
		text     string
		want     Suppression
		wantLen  int
	}{
		{"no match passes through", findings, "plain text", SuppressNone, 1},
		{"allow suppresses", findings, "this is known-safe content", SuppressAllow, 0},
		{"ignore suppresses", findings, "vendor/fixture data", SuppressIgnore, 0},
		{"allow wins over ignore", findings, "known-safe vendor/fixture", SuppressAllow, 0},
		{"empty findings never suppressed", nil, "known-safe vendor/fixture", SuppressNone, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, suppression := Suppress(tt.findings, tt.text, allow, ignore)
			if suppression != tt.want {
				t.Errorf("suppression = %q, want %q", suppression, tt.want)
			}
			if len(got) != tt.wantLen {
				t.Errorf("len(findings) = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestCompileListDropsInvalid(t *testing.T) {
	out := CompileList([]string{`valid.*`, `[unclosed`, `another`})
	if len(out) != 2 {
		t.Fatalf("expected 2 compiled patterns, got %d", len(out))
	}
	if !out[0].MatchString("validX") || !out[1].MatchString("another") {
		t.Errorf("compiled patterns do not match expected inputs")
	}
}

func TestCompileListEmpty(t *testing.T) {
	if out := CompileList(nil); out != nil {
		t.Errorf("expected nil for empty sources, got %v", out)
	}
}

func TestSuppressNilLists(t *testing.T) {
	findings := []Finding{{ID: "alpha"}}
	got, suppression := Suppress(findings, "anything", nil, nil)
	if suppression != SuppressNone || len(got) != 1 {
		t.Errorf("nil lists should pass findings through, got %v %q", got, suppression)
	}
}
