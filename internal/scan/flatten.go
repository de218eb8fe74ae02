package scan

import (
	"encoding/json"
	"sort"
	"strings"
)

// priorityFields are the top-level payload keys most likely to carry shell
// commands or tool arguments. They are serialized ahead of the generic
// traversal so that rules anchored on them still match; the duplication is
// harmless because matching is regex-based, not count-based.
var priorityFields = []string{
	"command", "cmd", "shell", "tool", "tool_name", "toolName",
	"input", "arguments", "args", "reason",
}

// ParsePayload turns raw stdin bytes into a payload object. Invalid JSON is
// never an error: non-empty unparseable input degrades to {"raw": <text>} so
// the raw text can still be scanned, and empty input yields an empty object.
func ParsePayload(data []byte) map[string]any {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return map[string]any{}
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(trimmed), &payload); err != nil || payload == nil {
		return map[string]any{"raw": trimmed}
	}
	return payload
}

// Flatten converts an arbitrary nested payload into a single scannable text
// blob. Priority fields at the top level come first; then a depth-first walk
// collects every string value at any depth. Non-string leaves contribute
// nothing to the generic walk but are JSON-stringified when they appear among
// the priority fields.
func Flatten(payload map[string]any) string {
	var pieces []string

	for _, field := range priorityFields {
		v, ok := payload[field]
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr {
			pieces = append(pieces, s)
			continue
		}
		if b, err := json.Marshal(v); err == nil {
			pieces = append(pieces, string(b))
		}
	}

	pieces = collectStrings(payload, pieces)
	return strings.Join(pieces, "\n")
}

// collectStrings walks the tagged union of JSON value shapes in traversal
// order. Map keys are visited in sorted order for determinism.
func collectStrings(v any, acc []string) []string {
	switch val := v.(type) {
	case string:
		acc = append(acc, val)
	case map[string]any:
		for _, k := range sortedKeys(val) {
			acc = collectStrings(val[k], acc)
		}
	case []any:
		for _, item := range val {
			acc = collectStrings(item, acc)
		}
	}
	// Numbers, booleans, and null contribute nothing.
	return acc
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
