// Package scan implements the payload flattener, the pattern-based finding
// detector, the allow/ignore suppression filter, and the staged-file scanner.
package scan

import "github.com/hookshield/hookshield/internal/rules"

// Finding is one detected match of a pattern rule against scanned text.
// Findings are ephemeral and produced per scan invocation.
type Finding struct {
	ID       string
	Severity rules.Severity
	Title    string
	Detail   string
	// FilePath is set only on the staged-file scan path, where it also
	// participates in the dedup key.
	FilePath string
}

// Suppression tags why a non-empty finding list was discarded.
type Suppression string

const (
	// SuppressNone means the findings were returned untouched.
	SuppressNone Suppression = ""
	// SuppressAllow means an allow pattern matched: fully silent suppression.
	SuppressAllow Suppression = "allow"
	// SuppressIgnore means an ignore pattern matched: suppressed, but the
	// caller should print a low-priority note.
	SuppressIgnore Suppression = "ignore"
)

// HasHighSeverity reports whether any finding carries HIGH severity.
func HasHighSeverity(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == rules.SeverityHigh {
			return true
		}
	}
	return false
}
