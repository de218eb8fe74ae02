package cmd

import (
	"context"
	"fmt"

	"github.com/hookshield/hookshield/internal/config"
	"github.com/hookshield/hookshield/internal/constants"
	"github.com/hookshield/hookshield/internal/hook"
	"github.com/urfave/cli/v3"
)

// eventDescriptions gives a one-line summary per lifecycle event.
var eventDescriptions = map[string]string{
	constants.EventPreToolUse:        "Before a tool executes (the only event the risk hook hard-blocks)",
	constants.EventPostToolUse:       "After a tool has executed",
	constants.EventPermissionRequest: "When the user is asked to approve a tool (never hard-blocks)",
	constants.EventUserPromptSubmit:  "When the user submits a prompt",
	constants.EventNotification:      "When the agent emits a notification",
	constants.EventStop:              "When the main agent loop stops",
	constants.EventSubagentStop:      "When a subagent stops",
	constants.EventPreCompact:        "Before conversation history is compacted",
	constants.EventSessionStart:      "When a session starts",
	constants.EventSessionEnd:        "When a session ends",
}

// NewListCmd creates the list command showing available hooks and, with
// --installed, the managed entries present in a settings file.
func NewListCmd() *cli.Command {
	flags := append(scopeFlags("Show"),
		&cli.BoolFlag{
			Name:  "installed",
			Value: false,
			Usage: "Show managed entries installed in the selected settings file",
		},
	)
	return &cli.Command{
		Name:  "list",
		Usage: "List available hooks",
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Bool("installed") {
				return listInstalled(cmd)
			}

			registry := hook.DefaultRegistry(nil)
			fmt.Println("Available hooks:")
			for _, key := range registry.Keys() {
				h, err := registry.Create(key)
				if err != nil {
					continue
				}
				fmt.Printf("  %-8s %s\n", key, h.Description())
			}
			return nil
		},
	}
}

func listInstalled(cmd *cli.Command) error {
	scope, err := scopeFromFlags(cmd)
	if err != nil {
		return err
	}
	settingsPath, err := config.GetSettingsPath(scope)
	if err != nil {
		return err
	}
	doc, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	total := 0
	for _, key := range []string{constants.HookKeyRisk, constants.HookKeySecrets} {
		total += config.CountManaged(doc, constants.OwnershipToken(key))
	}
	if total == 0 {
		fmt.Printf("No %s hooks installed in %s settings (%s).\n", constants.BinaryName, scope, settingsPath)
		return nil
	}

	fmt.Printf("Managed entries in %s settings (%s):\n\n", scope, settingsPath)
	for _, key := range []string{constants.HookKeyRisk, constants.HookKeySecrets} {
		config.PrintManaged(doc, constants.OwnershipToken(key))
	}
	return nil
}

// NewListEventsCmd creates the list-events command.
func NewListEventsCmd() *cli.Command {
	return &cli.Command{
		Name:  "list-events",
		Usage: "List supported lifecycle events",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Println("Supported events:")
			for _, event := range constants.ValidEventTypes() {
				fmt.Printf("  %-18s %s\n", event, eventDescriptions[event])
			}
			return nil
		},
	}
}
