package constants

// Application constants - single source of truth for naming throughout the codebase
const (
	// Core application identity
	AppName    = "Hookshield"
	BinaryName = "hookshield"

	// Module and repository
	ModulePath    = "github.com/hookshield/hookshield"
	RepositoryURL = "https://github.com/hookshield/hookshield"

	// Configuration files
	ConfigFileName    = "hookshield.json"
	PatternsFileName  = "patterns.yml"
	SettingsFileName  = "settings.json"
	LocalSettingsFile = "settings.local.json"

	// Directory paths
	ClaudeDir   = ".claude"
	HooksSubDir = "hooks"

	// Command pattern shared by all managed settings entries
	CommandPattern = BinaryName + " run"
)

// Hook keys for the two shipped hook packages
const (
	HookKeyRisk    = "risk"
	HookKeySecrets = "secrets"
)

// Claude Code lifecycle event names
const (
	EventPreToolUse        = "PreToolUse"
	EventPostToolUse       = "PostToolUse"
	EventPermissionRequest = "PermissionRequest"
	EventUserPromptSubmit  = "UserPromptSubmit"
	EventNotification      = "Notification"
	EventStop              = "Stop"
	EventSubagentStop      = "SubagentStop"
	EventPreCompact        = "PreCompact"
	EventSessionStart      = "SessionStart"
	EventSessionEnd        = "SessionEnd"
)

// ValidEventTypes returns the lifecycle events a hook may be installed for.
func ValidEventTypes() []string {
	return []string{
		EventPreToolUse,
		EventPostToolUse,
		EventPermissionRequest,
		EventUserPromptSubmit,
		EventNotification,
		EventStop,
		EventSubagentStop,
		EventPreCompact,
		EventSessionStart,
		EventSessionEnd,
	}
}

// IsValidEventType reports whether name is a known lifecycle event.
func IsValidEventType(name string) bool {
	for _, e := range ValidEventTypes() {
		if e == name {
			return true
		}
	}
	return false
}

// OwnershipToken returns the marker substring embedded in every managed
// command this package writes for the given hook key. RemoveManaged relies
// on this being a stable, deterministic function of the hook key alone.
func OwnershipToken(hookKey string) string {
	return CommandPattern + " " + hookKey
}

// GetConfigPath returns the project config file path under baseDir.
func GetConfigPath(baseDir string) string {
	return baseDir + "/" + ClaudeDir + "/" + HooksSubDir + "/" + ConfigFileName
}
