package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/hookshield/hookshield/internal/config"
	"github.com/urfave/cli/v3"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect or initialize the project configuration",
		Commands: []*cli.Command{
			newConfigShowCmd(),
			newConfigInitCmd(),
		},
	}
}

func newConfigShowCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the effective configuration (defaults merged with the config file)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Show the global config (~/.claude/hooks/hookshield.json)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := config.GetProjectConfigPath(cmd.Bool("global"))
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(path)
			if err != nil {
				return err
			}

			out := map[string]any{
				"security":    cfg.Security,
				"secrets":     cfg.Secrets,
				"logRotation": cfg.LogRotation,
			}
			for k, v := range cfg.Other {
				out[k] = v
			}
			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("Config: %s\n%s\n", path, data)
			return nil
		},
	}
}

func newConfigInitCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default config file if none exists",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "global",
				Aliases: []string{"g"},
				Value:   false,
				Usage:   "Initialize the global config (~/.claude/hooks/hookshield.json)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path, err := config.GetProjectConfigPath(cmd.Bool("global"))
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil {
				fmt.Printf("Config already exists: %s\n", path)
				return nil
			}
			if err := config.SaveConfig(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("Wrote default config: %s\n", path)
			return nil
		},
	}
}
