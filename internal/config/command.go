package config

import (
	"fmt"

	"github.com/hookshield/hookshield/internal/constants"
)

// BuildHookCommand builds the shell command embedded in a managed settings
// entry. The result is a pure, deterministic function of its inputs: the
// ownership token ("hookshield run <key>") always appears as a substring, so
// RemoveManaged can reliably find exactly the handlers this package created
// regardless of the mode or executable path baked into the command.
//
// An unknown hook key or event name is a contract violation by the caller,
// not a runtime condition, and fails immediately.
func BuildHookCommand(execPath, hookKey, event, mode string) (string, error) {
	if hookKey != constants.HookKeyRisk && hookKey != constants.HookKeySecrets {
		return "", fmt.Errorf("unknown hook key '%s'", hookKey)
	}
	if !constants.IsValidEventType(event) {
		return "", fmt.Errorf("unknown event '%s'", event)
	}
	if mode != "" && mode != ModeWarn && mode != ModeBlock {
		return "", fmt.Errorf("unknown mode '%s'", mode)
	}

	command := fmt.Sprintf("%s run %s --event %s", execPath, hookKey, event)
	if mode != "" {
		command += " --mode " + mode
	}
	return command, nil
}
