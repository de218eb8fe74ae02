package hook

import (
	"fmt"
	"strings"

	"github.com/hookshield/hookshield/internal/constants"
	"github.com/hookshield/hookshield/internal/policy"
	"github.com/hookshield/hookshield/internal/rules"
	"github.com/hookshield/hookshield/internal/scan"
)

// RiskHook warns on or blocks risky shell idioms in tool-invocation payloads.
type RiskHook struct {
	*BaseHook
}

// NewRiskHook creates a new risk hook instance.
func NewRiskHook(ctx *HookContext) Hook {
	base := NewBaseHook(constants.HookKeyRisk, "Risk Hook",
		"Warns on or blocks risky shell commands found in tool payloads", ctx)
	return &RiskHook{BaseHook: base}
}

// Run executes the risk hook against one stdin payload.
func (h *RiskHook) Run() (policy.Outcome, error) {
	if !h.IsEnabled() {
		return policy.Outcome{ExitCode: policy.ExitOK}, nil
	}

	raw := h.readPayload()
	if strings.TrimSpace(string(raw)) == "" {
		// No payload within the timeout: nothing to scan.
		return policy.Outcome{ExitCode: policy.ExitOK}, nil
	}

	payload := scan.ParsePayload(raw)
	event := h.resolveEvent(payload)

	cfg := h.Context().loadConfig()
	section := cfg.Security
	mode := section.Mode
	if h.Context().ModeOverride != "" {
		mode = h.Context().ModeOverride
	}

	if event != "" && len(section.EnabledEvents) > 0 && !section.EventEnabled(event) {
		h.LogHookEvent("risk_event_skipped", map[string]any{"event": event}, nil)
		return policy.Outcome{ExitCode: policy.ExitOK}, nil
	}

	text := scan.Flatten(payload)
	findings := scan.Detect(text, rules.RiskRules())
	findings, suppression := scan.Suppress(findings, text,
		scan.CompileList(section.Allow.Regex),
		scan.CompileList(section.Ignore.Regex))

	outcome := policy.Decide(policy.Input{
		Variant:     policy.VariantRisk,
		Mode:        mode,
		EventName:   event,
		Findings:    findings,
		Suppression: suppression,
	})

	h.logOutcome("risk_check", event, findings, suppression, outcome)
	h.report(outcome, suppression)
	return outcome, nil
}

// resolveEvent prefers the payload's own event name over the one baked into
// the installed command.
func (h *BaseHook) resolveEvent(payload map[string]any) string {
	if name, ok := payload["hook_event_name"].(string); ok && name != "" {
		return name
	}
	return h.context.EventName
}

// report writes the decision to the diagnostic stream. Ignore-suppression is
// visible-but-quiet; allow-suppression stays fully silent.
func (h *BaseHook) report(outcome policy.Outcome, suppression scan.Suppression) {
	w := h.context.Stderr
	if w == nil {
		return
	}
	switch {
	case suppression == scan.SuppressIgnore:
		fmt.Fprintf(w, "%s %s: %s\n", constants.BinaryName, h.key, outcome.Message)
	case outcome.Blocked:
		fmt.Fprintf(w, "%s %s: blocked - %s\n", constants.BinaryName, h.key, outcome.Message)
	case outcome.Message != "":
		fmt.Fprintf(w, "%s %s: warning - %s\n", constants.BinaryName, h.key, outcome.Message)
	}
}

// logOutcome records one scan decision in the hook log.
func (h *BaseHook) logOutcome(kind, event string, findings []scan.Finding, suppression scan.Suppression, outcome policy.Outcome) {
	if !h.context.LoggingEnabled {
		return
	}
	ids := make([]string, 0, len(findings))
	for _, f := range findings {
		ids = append(ids, f.ID)
	}
	h.LogHookEvent(kind, map[string]any{"event": event}, map[string]any{
		"finding_ids": ids,
		"suppressed":  string(suppression),
		"blocked":     outcome.Blocked,
		"exit_code":   outcome.ExitCode,
	})
}

var _ Hook = (*RiskHook)(nil)
