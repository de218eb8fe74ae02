package hook

import (
	"regexp"
	"strings"

	"github.com/hookshield/hookshield/internal/config"
	"github.com/hookshield/hookshield/internal/constants"
	"github.com/hookshield/hookshield/internal/policy"
	"github.com/hookshield/hookshield/internal/rules"
	"github.com/hookshield/hookshield/internal/scan"
)

// SecretsHook scans tool payloads for token-shaped secrets and private-key
// material, and optionally the git staging area on commit commands.
type SecretsHook struct {
	*BaseHook
}

// NewSecretsHook creates a new secrets hook instance.
func NewSecretsHook(ctx *HookContext) Hook {
	base := NewBaseHook(constants.HookKeySecrets, "Secrets Hook",
		"Warns on or blocks secrets found in tool payloads and staged files", ctx)
	return &SecretsHook{BaseHook: base}
}

var gitCommitPattern = regexp.MustCompile(`\bgit\s+(?:-\S+\s+)*commit\b`)

// Run executes the secrets hook against one stdin payload.
func (h *SecretsHook) Run() (policy.Outcome, error) {
	if !h.IsEnabled() {
		return policy.Outcome{ExitCode: policy.ExitOK}, nil
	}

	raw := h.readPayload()
	if strings.TrimSpace(string(raw)) == "" {
		return policy.Outcome{ExitCode: policy.ExitOK}, nil
	}

	payload := scan.ParsePayload(raw)
	event := h.resolveEvent(payload)

	cfg := h.Context().loadConfig()
	section := cfg.Secrets
	mode := section.Mode
	if h.Context().ModeOverride != "" {
		mode = h.Context().ModeOverride
	}

	if event != "" && len(section.EnabledEvents) > 0 && !section.EventEnabled(event) {
		h.LogHookEvent("secrets_event_skipped", map[string]any{"event": event}, nil)
		return policy.Outcome{ExitCode: policy.ExitOK}, nil
	}

	text := scan.Flatten(payload)
	findings := scan.Detect(text, rules.PayloadRules())

	// Opt-in: when the payload carries a git commit, also scan the staging
	// area with the larger file registry. Failures here degrade silently -
	// under-detecting beats crashing mid-workflow.
	if section.ScanGitCommit && gitCommitPattern.MatchString(text) {
		findings = append(findings, h.scanStaged(&section)...)
	}

	findings, suppression := scan.Suppress(findings, text,
		scan.CompileList(section.Allow.Regex),
		scan.CompileList(section.Ignore.Regex))

	outcome := policy.Decide(policy.Input{
		Variant:     policy.VariantSecrets,
		Mode:        mode,
		EventName:   event,
		Findings:    findings,
		Suppression: suppression,
	})

	h.logOutcome("secrets_check", event, findings, suppression, outcome)
	h.report(outcome, suppression)
	return outcome, nil
}

// scanStaged runs the file registry (plus any user-defined custom rules)
// over the files currently staged for commit.
func (h *SecretsHook) scanStaged(section *config.HookConfig) []scan.Finding {
	root := h.Context().WorkDir
	if root == "" {
		root = "."
	}
	paths, err := scan.StagedFiles(root)
	if err != nil || len(paths) == 0 {
		return nil
	}

	registry := h.fileRegistry()
	findings, _ := scan.ScanFiles(root, paths, registry, section.Files.Exclude,
		scan.CompileList(section.Allow.Regex),
		scan.CompileList(section.Ignore.Regex))
	return findings
}

// fileRegistry returns the staged-file registry extended with custom rules.
func (h *SecretsHook) fileRegistry() []rules.Rule {
	registry := rules.FileRules()
	patternsPath := h.Context().PatternsPath
	if patternsPath == "" {
		if p, err := config.GetPatternsPath(false); err == nil {
			patternsPath = p
		}
	}
	if patternsPath != "" {
		registry = append(registry, rules.LoadCustomRules(patternsPath, registry)...)
	}
	return registry
}

var _ Hook = (*SecretsHook)(nil)
