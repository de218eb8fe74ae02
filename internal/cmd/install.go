package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hookshield/hookshield/internal/config"
	"github.com/hookshield/hookshield/internal/constants"
	"github.com/urfave/cli/v3"
)

// scopeFromFlags resolves the --global/--local flags to a settings scope.
func scopeFromFlags(cmd *cli.Command) (config.SettingsScope, error) {
	global := cmd.Bool("global")
	local := cmd.Bool("local")
	if global && local {
		return "", fmt.Errorf("--global and --local are mutually exclusive")
	}
	switch {
	case global:
		return config.ScopeGlobal, nil
	case local:
		return config.ScopeLocal, nil
	}
	return config.ScopeProject, nil
}

func scopeFlags(verb string) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "global",
			Aliases: []string{"g"},
			Value:   false,
			Usage:   verb + " global settings (~/.claude/settings.json)",
		},
		&cli.BoolFlag{
			Name:  "local",
			Value: false,
			Usage: verb + " project-local settings (.claude/settings.local.json)",
		},
	}
}

// NewInstallCmd creates the install command. Installation is idempotent:
// stale managed entries are removed before the new ones are added, so
// repeated installs never accumulate duplicates.
func NewInstallCmd(hookKeys func() []string) *cli.Command {
	flags := append(scopeFlags("Install to"),
		&cli.StringSliceFlag{
			Name:    "event",
			Aliases: []string{"e"},
			Usage:   "Lifecycle event(s) to install for (default: the hook's configured enabledEvents)",
		},
		&cli.StringFlag{
			Name:    "matcher",
			Aliases: []string{"m"},
			Value:   "*",
			Usage:   "Tool matcher pattern (* for all tools)",
		},
		&cli.IntFlag{
			Name:    "timeout",
			Aliases: []string{"t"},
			Value:   0,
			Usage:   "Command timeout in seconds (0 for no timeout)",
		},
		&cli.BoolFlag{
			Name:  "async",
			Value: false,
			Usage: "Mark the installed handler as asynchronous",
		},
		&cli.StringFlag{
			Name:  "mode",
			Usage: "Bake a mode override (warn or block) into the installed command",
		},
	)

	return &cli.Command{
		Name:      "install",
		Usage:     "Install a hook into Claude Code settings",
		ArgsUsage: "[hook-key]",
		Description: `Install a hook into a Claude Code settings.json file.
The managed entries embed an ownership token so uninstall and re-install
only ever touch entries this tool created.`,
		Flags: flags,
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [hook-key]")
			}
			key := args[0]
			if key != constants.HookKeyRisk && key != constants.HookKeySecrets {
				return fmt.Errorf("hook '%s' not found.\nAvailable hooks: %s", key, strings.Join(hookKeys(), ", "))
			}

			scope, err := scopeFromFlags(cmd)
			if err != nil {
				return err
			}

			events := cmd.StringSlice("event")
			if len(events) == 0 {
				events = configuredEvents(key)
			}
			for _, event := range events {
				if !constants.IsValidEventType(event) {
					return fmt.Errorf("invalid event '%s'.\nValid events: %s", event, strings.Join(constants.ValidEventTypes(), ", "))
				}
			}

			execPath, err := os.Executable()
			if err != nil {
				return fmt.Errorf("failed to get executable path: %v", err)
			}

			settingsPath, err := config.GetSettingsPath(scope)
			if err != nil {
				return fmt.Errorf("failed to locate %s settings path: %w", scope, err)
			}
			doc, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			var timeout *int
			if t := cmd.Int("timeout"); t > 0 {
				timeout = &t
			}
			mode := cmd.String("mode")
			token := constants.OwnershipToken(key)

			err = config.ApplyForEvents(doc, token, events, cmd.String("matcher"), cmd.Bool("async"), timeout,
				func(event string) (string, error) {
					return config.BuildHookCommand(execPath, key, event, mode)
				})
			if err != nil {
				return err
			}

			if err := config.SaveSettings(settingsPath, doc); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}

			fmt.Printf("✅ Installed %s hook in %s settings\n", key, scope)
			fmt.Printf("   Events: %s\n", strings.Join(events, ", "))
			fmt.Printf("   Matcher: %s\n", cmd.String("matcher"))
			fmt.Printf("   Settings: %s\n", settingsPath)
			fmt.Println("\nThe hook will be active in new Claude Code sessions.")
			return nil
		},
	}
}

// configuredEvents returns the enabled events for a hook from the project
// config, falling back to defaults when no config exists.
func configuredEvents(key string) []string {
	cfg := config.DefaultConfig()
	if path, err := config.GetProjectConfigPath(false); err == nil {
		if loaded, err := config.LoadConfig(path); err == nil {
			cfg = loaded
		}
	}
	section, err := cfg.Section(key)
	if err != nil {
		return nil
	}
	return section.EnabledEvents
}

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd(hookKeys func() []string) *cli.Command {
	return &cli.Command{
		Name:      "uninstall",
		Usage:     "Remove a hook from Claude Code settings",
		ArgsUsage: "[hook-key|all]",
		Description: `Remove a hook's managed entries from a Claude Code settings.json file.
Use 'all' to remove every hookshield-managed entry. Entries owned by other
tools are never touched.`,
		Flags: scopeFlags("Remove from"),
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [hook-key|all]")
			}
			key := args[0]

			var tokens []string
			switch key {
			case "all":
				for _, k := range hookKeys() {
					tokens = append(tokens, constants.OwnershipToken(k))
				}
			case constants.HookKeyRisk, constants.HookKeySecrets:
				tokens = []string{constants.OwnershipToken(key)}
			default:
				return fmt.Errorf("hook '%s' not found.\nAvailable hooks: %s, all", key, strings.Join(hookKeys(), ", "))
			}

			scope, err := scopeFromFlags(cmd)
			if err != nil {
				return err
			}
			settingsPath, err := config.GetSettingsPath(scope)
			if err != nil {
				return fmt.Errorf("failed to locate %s settings path: %w", scope, err)
			}
			doc, err := config.LoadSettings(settingsPath)
			if err != nil {
				return fmt.Errorf("failed to load settings: %w", err)
			}

			removed := 0
			for _, token := range tokens {
				removed += config.RemoveManaged(doc, token)
			}
			if removed == 0 {
				fmt.Printf("No %s hooks found in %s settings.\n", constants.BinaryName, scope)
				return nil
			}

			if err := config.SaveSettings(settingsPath, doc); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}

			fmt.Printf("✅ Removed %d managed hook entr%s from %s settings\n", removed, plural(removed, "y", "ies"), scope)
			fmt.Printf("   Settings: %s\n", settingsPath)
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
