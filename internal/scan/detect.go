package scan

import "github.com/hookshield/hookshield/internal/rules"

// Detect runs every rule in the registry against text and returns the
// deduplicated findings. Each rule either fires or not - no scoring, no
// partial matches. Dedup is by rule id, first match wins, and the output
// order is the registry order.
func Detect(text string, registry []rules.Rule) []Finding {
	var findings []Finding
	seen := make(map[string]bool, len(registry))
	for _, rule := range registry {
		if seen[rule.ID] {
			continue
		}
		if rule.Pattern.MatchString(text) {
			findings = append(findings, Finding{
				ID:       rule.ID,
				Severity: rule.Severity,
				Title:    rule.Title,
				Detail:   rule.Detail,
			})
			seen[rule.ID] = true
		}
	}
	return findings
}

// DetectInFile is the staged-file variant: same algorithm, but findings carry
// the file path and the caller's dedup key becomes (id, filePath) so the same
// pattern in two different files yields two findings.
func DetectInFile(text, filePath string, registry []rules.Rule) []Finding {
	findings := Detect(text, registry)
	for i := range findings {
		findings[i].FilePath = filePath
		findings[i].Detail = findings[i].Detail + " (in " + filePath + ")"
	}
	return findings
}
