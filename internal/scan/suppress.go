package scan

import "regexp"

// Suppress applies the user-configured allow/ignore lists to findings already
// detected over text. An empty findings list is never "suppressed" - it is
// simply clean. Allow wins over ignore when both match.
func Suppress(findings []Finding, text string, allow, ignore []*regexp.Regexp) ([]Finding, Suppression) {
	if len(findings) == 0 {
		return findings, SuppressNone
	}
	for _, re := range allow {
		if re.MatchString(text) {
			return nil, SuppressAllow
		}
	}
	for _, re := range ignore {
		if re.MatchString(text) {
			return nil, SuppressIgnore
		}
	}
	return findings, SuppressNone
}

// CompileList compiles each pattern source independently, collecting the
// successes and silently discarding failures. A bad user pattern must never
// crash a scan; it simply never matches.
func CompileList(sources []string) []*regexp.Regexp {
	var out []*regexp.Regexp
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}
