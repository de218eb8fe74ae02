// Package policy decides process exit behavior from scan results. The rules
// here are deliberately small and pure so they can be tested exhaustively.
package policy

import (
	"fmt"
	"strings"

	"github.com/hookshield/hookshield/internal/config"
	"github.com/hookshield/hookshield/internal/constants"
	"github.com/hookshield/hookshield/internal/scan"
)

// Exit codes surfaced by the CLI. Any other non-zero code indicates a
// usage or environment error, never a detection-driven block.
const (
	ExitOK    = 0
	ExitBlock = 2
)

// Variant selects which blocking rule applies.
type Variant string

const (
	// VariantSecrets blocks only on HIGH-severity findings: token-shaped
	// MED patterns have too many false positives to hard-stop a workflow.
	VariantSecrets Variant = "secrets"
	// VariantRisk blocks on any finding, but only for the pre-action event.
	VariantRisk Variant = "risk"
)

// Input carries everything the decision needs.
type Input struct {
	Variant     Variant
	Mode        string
	EventName   string
	Findings    []scan.Finding
	Suppression scan.Suppression
}

// Outcome is the decided process behavior.
type Outcome struct {
	ExitCode int
	Blocked  bool
	// Message is the human-readable report for the diagnostic stream.
	// Empty when there is nothing to say.
	Message string
}

// Decide combines mode, event name, and severity into an exit decision.
//
// Suppressed findings never contribute to the block decision, even in block
// mode. In the risk variant a PermissionRequest event never hard-blocks: by
// the time it fires a human has already been asked for approval, so blocking
// there is redundant and disruptive.
func Decide(in Input) Outcome {
	if in.Suppression == scan.SuppressIgnore {
		return Outcome{ExitCode: ExitOK, Message: "findings suppressed by ignore pattern"}
	}
	if in.Suppression == scan.SuppressAllow || len(in.Findings) == 0 {
		return Outcome{ExitCode: ExitOK}
	}

	msg := formatFindings(in.Findings)
	if in.Mode != config.ModeBlock {
		return Outcome{ExitCode: ExitOK, Message: msg}
	}

	switch in.Variant {
	case VariantSecrets:
		if scan.HasHighSeverity(in.Findings) {
			return Outcome{ExitCode: ExitBlock, Blocked: true, Message: msg}
		}
		return Outcome{ExitCode: ExitOK, Message: msg}
	case VariantRisk:
		if in.EventName == constants.EventPreToolUse {
			return Outcome{ExitCode: ExitBlock, Blocked: true, Message: msg}
		}
		return Outcome{ExitCode: ExitOK, Message: msg}
	}
	return Outcome{ExitCode: ExitOK, Message: msg}
}

// formatFindings renders the findings report for stderr.
func formatFindings(findings []scan.Finding) string {
	var sb strings.Builder
	if len(findings) == 1 {
		sb.WriteString("1 finding:\n")
	} else {
		fmt.Fprintf(&sb, "%d findings:\n", len(findings))
	}
	for _, f := range findings {
		fmt.Fprintf(&sb, "  [%s] %s: %s", f.Severity, f.ID, f.Title)
		if f.Detail != "" {
			sb.WriteString("\n        ")
			sb.WriteString(f.Detail)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
