// Package hook provides the hook runtime: the Hook interface, the shared
// execution context, and the risk and secrets hook implementations.
package hook

import (
	"io"
	"os"
	"time"

	"github.com/hookshield/hookshield/internal/config"
	"github.com/hookshield/hookshield/internal/policy"
)

// DefaultStdinTimeout bounds the stdin read. Hooks may be invoked in
// contexts with no input at all (interactive TTY, or an event type that
// supplies no stdin); waiting forever would hang the agent workflow.
const DefaultStdinTimeout = 2 * time.Second

// Hook defines the interface that both hook implementations satisfy.
type Hook interface {
	// Key returns the unique identifier for this hook
	Key() string
	// Name returns the human-readable name for this hook
	Name() string
	// Description returns a description of what this hook does
	Description() string
	// Run executes the hook against one stdin payload and returns the
	// decided outcome. Detection-layer failures degrade silently; the
	// returned error is reserved for environment problems.
	Run() (policy.Outcome, error)
	// IsEnabled checks if this hook is enabled in the current context
	IsEnabled() bool
}

// HookContext provides dependencies that hooks may need. Everything is
// injectable so the runtime stays testable without a real stdin or project.
type HookContext struct {
	Stdin        io.Reader
	Stderr       io.Writer
	StdinTimeout time.Duration
	// EventName is the event baked into the installed command; a
	// hook_event_name field in the payload takes precedence.
	EventName string
	// ConfigPath overrides the project config location ("" = default).
	ConfigPath string
	// PatternsPath overrides the custom patterns file ("" = default).
	PatternsPath string
	// WorkDir is the repository root for staged-file scans ("" = cwd).
	WorkDir string
	// ModeOverride forces warn/block regardless of configuration ("" = off).
	ModeOverride string

	SettingsChecker func(string) bool
	LoggingEnabled  bool
	LoggingFormat   string
	// LogWriter receives JSONL event entries when logging is enabled.
	LogWriter io.Writer
}

// DefaultHookContext returns a context wired to the real process environment.
func DefaultHookContext() *HookContext {
	return &HookContext{
		Stdin:           os.Stdin,
		Stderr:          os.Stderr,
		StdinTimeout:    DefaultStdinTimeout,
		SettingsChecker: func(string) bool { return true },
		LoggingFormat:   config.LoggingFormatJSONL,
	}
}

// loadConfig reads the project configuration fresh for this invocation.
// Config load failures degrade to defaults: a broken config file must not
// crash a hook mid-workflow.
func (ctx *HookContext) loadConfig() *config.Config {
	path := ctx.ConfigPath
	if path == "" {
		var err error
		path, err = config.GetProjectConfigPath(false)
		if err != nil {
			return config.DefaultConfig()
		}
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// BaseHook provides common functionality for both hooks.
type BaseHook struct {
	key         string
	name        string
	description string
	context     *HookContext
}

// NewBaseHook creates a new BaseHook with the given metadata.
func NewBaseHook(key, name, description string, ctx *HookContext) *BaseHook {
	if ctx == nil {
		ctx = DefaultHookContext()
	}
	return &BaseHook{
		key:         key,
		name:        name,
		description: description,
		context:     ctx,
	}
}

// Key returns the hook key
func (h *BaseHook) Key() string {
	return h.key
}

// Name returns the hook name
func (h *BaseHook) Name() string {
	return h.name
}

// Description returns the hook description
func (h *BaseHook) Description() string {
	return h.description
}

// IsEnabled checks if the hook is enabled by consulting settings
func (h *BaseHook) IsEnabled() bool {
	return h.context.SettingsChecker(h.key)
}

// Context returns the hook context
func (h *BaseHook) Context() *HookContext {
	return h.context
}

// readPayload reads stdin with a bounded wait. No data within the timeout is
// treated as "no payload", not an error. The reading goroutine may outlive
// the call on timeout; the process is short-lived so that is acceptable.
func (h *BaseHook) readPayload() []byte {
	ctx := h.context
	if ctx.Stdin == nil {
		return nil
	}
	timeout := ctx.StdinTimeout
	if timeout <= 0 {
		timeout = DefaultStdinTimeout
	}

	ch := make(chan []byte, 1)
	go func() {
		data, _ := io.ReadAll(ctx.Stdin)
		ch <- data
	}()

	select {
	case data := <-ch:
		return data
	case <-time.After(timeout):
		return nil
	}
}
