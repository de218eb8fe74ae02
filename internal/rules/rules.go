// Package rules defines the static pattern registries used by the payload and
// staged-file scanners. Rules favor precise literal prefixes and format
// markers over entropy heuristics to keep the false-positive rate low.
package rules

import "regexp"

// Severity classifies a rule's findings. HIGH is reserved for unambiguous
// high-impact material; MED covers token-shaped secrets and risky shell
// idioms that warrant a warning but not an automatic block.
type Severity string

const (
	SeverityHigh Severity = "HIGH"
	SeverityMed  Severity = "MED"
)

// Rule is one pattern in a registry. Rules are immutable after process start.
type Rule struct {
	ID       string
	Severity Severity
	Title    string
	Detail   string
	Pattern  *regexp.Regexp
}

var payloadRules = []Rule{
	{
		ID:       "private-key",
		Severity: SeverityHigh,
		Title:    "Private key material",
		Detail:   "A PEM private key header was found. Private keys must never be pasted into tool calls.",
		Pattern:  regexp.MustCompile(`-----BEGIN (?:[A-Z0-9 ]+ )?PRIVATE KEY-----`),
	},
	{
		ID:       "openai",
		Severity: SeverityMed,
		Title:    "OpenAI-style API key",
		Detail:   "Token matching the sk- key format used by OpenAI and compatible providers.",
		Pattern:  regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}`),
	},
	{
		ID:       "github-token",
		Severity: SeverityMed,
		Title:    "GitHub token",
		Detail:   "Token matching the ghp_/gho_/ghu_/ghs_/ghr_ personal or app token format.",
		Pattern:  regexp.MustCompile(`\bgh[pousr]_[A-Za-z0-9]{36,}`),
	},
	{
		ID:       "aws-akid",
		Severity: SeverityMed,
		Title:    "AWS access key ID",
		Detail:   "Identifier matching the AKIA/ASIA access key format.",
		Pattern:  regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`),
	},
	{
		ID:       "slack-token",
		Severity: SeverityMed,
		Title:    "Slack token",
		Detail:   "Token matching the xoxb-/xoxp-/xoxa- Slack token format.",
		Pattern:  regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}`),
	},
	{
		ID:       "gcp-api-key",
		Severity: SeverityMed,
		Title:    "Google API key",
		Detail:   "Key matching the AIza Google Cloud API key format.",
		Pattern:  regexp.MustCompile(`\bAIza[0-9A-Za-z_-]{35}`),
	},
}

// fileOnlyRules extends the payload registry for the opt-in staged-file scan,
// which can afford slower, broader matching than the per-tool-call path.
var fileOnlyRules = []Rule{
	{
		ID:       "stripe-key",
		Severity: SeverityMed,
		Title:    "Stripe live key",
		Detail:   "Key matching the sk_live_/rk_live_ Stripe secret key format.",
		Pattern:  regexp.MustCompile(`\b[sr]k_live_[A-Za-z0-9]{16,}`),
	},
	{
		ID:       "twilio-sid",
		Severity: SeverityMed,
		Title:    "Twilio API key SID",
		Detail:   "Identifier matching the Twilio SK api-key format.",
		Pattern:  regexp.MustCompile(`\bSK[0-9a-fA-F]{32}\b`),
	},
	{
		ID:       "sendgrid-key",
		Severity: SeverityMed,
		Title:    "SendGrid API key",
		Detail:   "Key matching the SG.xxx.yyy SendGrid format.",
		Pattern:  regexp.MustCompile(`\bSG\.[A-Za-z0-9_-]{22}\.[A-Za-z0-9_-]{43}`),
	},
	{
		ID:       "npm-token",
		Severity: SeverityMed,
		Title:    "npm access token",
		Detail:   "Token matching the npm_ granular access token format.",
		Pattern:  regexp.MustCompile(`\bnpm_[A-Za-z0-9]{36}\b`),
	},
	{
		ID:       "pypi-token",
		Severity: SeverityMed,
		Title:    "PyPI upload token",
		Detail:   "Token matching the pypi- API token format.",
		Pattern:  regexp.MustCompile(`\bpypi-AgEIcHlwaS5vcmc[A-Za-z0-9_-]{20,}`),
	},
	{
		ID:       "db-connection-string",
		Severity: SeverityMed,
		Title:    "Database URL with credentials",
		Detail:   "Connection string embedding a username and password.",
		Pattern:  regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqp)://[^\s:@/]+:[^\s@/]+@`),
	},
	{
		ID:       "generic-secret",
		Severity: SeverityMed,
		Title:    "Secret-shaped assignment",
		Detail:   "A key=value assignment whose key names a secret and whose value is a quoted literal.",
		Pattern:  regexp.MustCompile(`(?i)\b(?:api[_-]?key|secret[_-]?key|secret|auth[_-]?token|token|passwd|password)\b\s*[:=]\s*['"][^'"\s]{8,}['"]`),
	},
}

var riskRules = []Rule{
	{
		ID:       "rm-rf",
		Severity: SeverityMed,
		Title:    "Recursive force delete",
		Detail:   "rm with combined recursive and force flags can destroy data irreversibly.",
		Pattern:  regexp.MustCompile(`(?i)\brm\s+(?:-[a-z]+\s+)*-(?:[a-z]*r[a-z]*f|[a-z]*f[a-z]*r)[a-z]*\b`),
	},
	{
		ID:       "sudo-rm",
		Severity: SeverityMed,
		Title:    "Elevated delete",
		Detail:   "rm run under sudo bypasses ordinary permission safety nets.",
		Pattern:  regexp.MustCompile(`\bsudo\s+rm\b`),
	},
	{
		ID:       "curl-pipe-sh",
		Severity: SeverityMed,
		Title:    "Remote script piped to shell",
		Detail:   "Downloading a script and piping it straight into a shell executes unreviewed code.",
		Pattern:  regexp.MustCompile(`(?i)\b(?:curl|wget)\b[^|\n]*\|\s*(?:sudo\s+)?(?:ba|z|da|fi)?sh\b`),
	},
	{
		ID:       "chmod-777",
		Severity: SeverityMed,
		Title:    "World-writable permissions",
		Detail:   "chmod 777 removes all permission boundaries on the target.",
		Pattern:  regexp.MustCompile(`\bchmod\s+(?:-[A-Za-z]+\s+)*0?777\b`),
	},
	{
		ID:       "dd-disk",
		Severity: SeverityMed,
		Title:    "Raw disk write",
		Detail:   "dd writing to a block device overwrites the disk contents.",
		Pattern:  regexp.MustCompile(`\bdd\s+[^|\n]*\bof=/dev/(?:sd[a-z]|disk\d|nvme\d)`),
	},
	{
		ID:       "mkfs",
		Severity: SeverityMed,
		Title:    "Filesystem creation",
		Detail:   "mkfs reformats the target device, destroying existing data.",
		Pattern:  regexp.MustCompile(`\bmkfs(?:\.[a-z0-9]+)?\b`),
	},
	{
		ID:       "fork-bomb",
		Severity: SeverityMed,
		Title:    "Fork bomb",
		Detail:   "The classic :(){ :|:& };: idiom exhausts process slots.",
		Pattern:  regexp.MustCompile(`:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;`),
	},
	{
		ID:       "git-force-push",
		Severity: SeverityMed,
		Title:    "Force push",
		Detail:   "git push --force rewrites remote history.",
		Pattern:  regexp.MustCompile(`\bgit\s+push\b[^|\n]*\s(?:--force(?:\s|$)|-f\b)`),
	},
}

// PayloadRules returns the small registry used for low-latency stdin scans on
// every tool call.
func PayloadRules() []Rule {
	return payloadRules
}

// FileRules returns the superset registry used for the opt-in staged-file
// scan. Registry order is payload rules first, file-only rules after; the
// detector's first-match-wins dedup depends on this order being stable.
func FileRules() []Rule {
	out := make([]Rule, 0, len(payloadRules)+len(fileOnlyRules))
	out = append(out, payloadRules...)
	out = append(out, fileOnlyRules...)
	return out
}

// RiskRules returns the registry of risky shell idioms used by the risk hook.
func RiskRules() []Rule {
	return riskRules
}
