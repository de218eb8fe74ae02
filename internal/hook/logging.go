package hook

import (
	"encoding/json"
	"time"

	"github.com/hookshield/hookshield/internal/config"
)

// LogEntry represents a detailed log entry for hook inspection.
type LogEntry struct {
	Timestamp string         `json:"timestamp"`
	HookKey   string         `json:"hook_key"`
	Event     string         `json:"event"`
	RawData   map[string]any `json:"raw_data,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// LogHookEvent appends a structured event entry to the context's log writer.
// It is a no-op when logging is disabled.
func (h *BaseHook) LogHookEvent(event string, rawData, details map[string]any) {
	ctx := h.context
	if ctx == nil || !ctx.LoggingEnabled || ctx.LogWriter == nil {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().Format(time.RFC3339),
		HookKey:   h.key,
		Event:     event,
		RawData:   rawData,
		Details:   details,
	}

	var data []byte
	var err error
	if ctx.LoggingFormat == config.LoggingFormatPretty {
		data, err = json.MarshalIndent(entry, "", "  ")
	} else {
		data, err = json.Marshal(entry)
	}
	if err != nil {
		return
	}
	_, _ = ctx.LogWriter.Write(append(data, '\n'))
}
