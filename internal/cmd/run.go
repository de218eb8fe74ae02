// Package cmd builds the urfave/cli command tree for the hookshield binary.
package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hookshield/hookshield/internal/config"
	"github.com/hookshield/hookshield/internal/hook"
	"github.com/urfave/cli/v3"
)

// NewRunCmd creates the run command, the entry point invoked by the managed
// settings entries on every lifecycle event.
func NewRunCmd() *cli.Command {
	return &cli.Command{
		Name:        "run",
		Usage:       "Run a hook against a JSON payload on stdin",
		ArgsUsage:   "[hook-key]",
		Description: `Run a hook (risk or secrets). Reads one JSON payload from stdin with a bounded wait, scans it, and exits 2 when the decision policy blocks.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "event",
				Aliases: []string{"e"},
				Usage:   "Lifecycle event this invocation runs under (payload hook_event_name wins)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Override the configured mode: warn or block",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the project config file (default .claude/hooks/hookshield.json)",
			},
			&cli.BoolFlag{
				Name:    "log",
				Aliases: []string{"l"},
				Value:   false,
				Usage:   "Enable detailed logging to .claude/hooks/<hook-key>.log",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "jsonl",
				Usage: "Log output format: jsonl or pretty (default jsonl)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 1 {
				return fmt.Errorf("exactly one argument required: [hook-key]")
			}
			key := args[0]

			ctx := hook.DefaultHookContext()
			ctx.EventName = cmd.String("event")
			ctx.ConfigPath = cmd.String("config")

			if mode := cmd.String("mode"); mode != "" {
				if mode != config.ModeWarn && mode != config.ModeBlock {
					return fmt.Errorf("invalid --mode '%s'. Valid: warn, block", mode)
				}
				ctx.ModeOverride = mode
			}

			logFormat := cmd.String("log-format")
			if logFormat == "" {
				logFormat = config.LoggingFormatJSONL
			}
			if cmd.Bool("log") {
				if !config.IsValidLoggingFormat(logFormat) {
					return fmt.Errorf("invalid --log-format '%s'. Valid: jsonl, pretty", logFormat)
				}
				rotation := config.GetLogRotationConfigFromFile(false)
				logPath := config.GetLogPath(key)
				if logger := config.SetupLogRotation(logPath, rotation); logger != nil {
					ctx.LoggingEnabled = true
					ctx.LoggingFormat = logFormat
					ctx.LogWriter = logger
					if err := config.CleanupOldLogs(filepath.Dir(logPath), rotation.MaxAge); err != nil {
						fmt.Fprintf(ctx.Stderr, "Warning: failed to cleanup old logs: %v\n", err)
					}
				}
			}

			registry := hook.DefaultRegistry(ctx)
			h, err := registry.Create(key)
			if err != nil {
				return fmt.Errorf("hook '%s' not found.\nAvailable hooks: %s", key, strings.Join(registry.Keys(), ", "))
			}

			outcome, err := h.Run()
			if err != nil {
				return fmt.Errorf("hook '%s' failed: %v", key, err)
			}
			if outcome.ExitCode != 0 {
				// The report already went to stderr; only the code matters here.
				return cli.Exit("", outcome.ExitCode)
			}
			return nil
		},
	}
}
