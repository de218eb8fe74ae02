package rules

import (
	"os"
	"regexp"

	yaml "gopkg.in/yaml.v3"
)

// CustomRuleFile is the YAML shape of .claude/hooks/patterns.yml. Users may
// extend the staged-file registry with their own patterns without rebuilding.
type CustomRuleFile struct {
	Rules []CustomRule `yaml:"rules"`
}

// CustomRule is one user-defined pattern entry.
type CustomRule struct {
	ID       string `yaml:"id"`
	Pattern  string `yaml:"pattern"`
	Severity string `yaml:"severity,omitempty"`
	Title    string `yaml:"title,omitempty"`
	Detail   string `yaml:"detail,omitempty"`
}

// LoadCustomRules reads user-defined rules from path and compiles them.
// A missing file yields no rules. Entries with an empty id, an invalid
// regex, an unknown severity, or an id already present in base are dropped
// silently - a bad user pattern must never break a scan.
func LoadCustomRules(path string, base []Rule) []Rule {
	data, err := os.ReadFile(path) // #nosec G304 - controlled config paths
	if err != nil {
		return nil
	}

	var file CustomRuleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil
	}

	seen := make(map[string]bool, len(base))
	for _, r := range base {
		seen[r.ID] = true
	}

	var out []Rule
	for _, cr := range file.Rules {
		if cr.ID == "" || seen[cr.ID] {
			continue
		}
		re, err := regexp.Compile(cr.Pattern)
		if err != nil {
			continue
		}
		sev := SeverityMed
		switch cr.Severity {
		case "", string(SeverityMed):
		case string(SeverityHigh):
			sev = SeverityHigh
		default:
			continue
		}
		title := cr.Title
		if title == "" {
			title = cr.ID
		}
		out = append(out, Rule{
			ID:       cr.ID,
			Severity: sev,
			Title:    title,
			Detail:   cr.Detail,
			Pattern:  re,
		})
		seen[cr.ID] = true
	}
	return out
}
