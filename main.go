package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/hookshield/hookshield/internal/cmd"
	"github.com/hookshield/hookshield/internal/constants"
	"github.com/urfave/cli/v3"
)

// Set via -ldflags at release time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func hookKeys() []string {
	return []string{constants.HookKeyRisk, constants.HookKeySecrets}
}

func main() {
	app := &cli.Command{
		Name:  constants.BinaryName,
		Usage: "Claude Code lifecycle hooks that warn on or block risky commands and leaked secrets",
		Commands: []*cli.Command{
			cmd.NewRunCmd(),
			cmd.NewInstallCmd(hookKeys),
			cmd.NewUninstallCmd(hookKeys),
			cmd.NewListCmd(),
			cmd.NewListEventsCmd(),
			cmd.NewScanStagedCmd(),
			cmd.NewConfigCmd(),
			cmd.NewVersionCmd(cmd.VersionInfo{
				Version: version,
				Commit:  commit,
				Date:    date,
				GoVer:   runtime.Version(),
			}),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
