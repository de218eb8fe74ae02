package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/hookshield/hookshield/internal/config"
	"github.com/hookshield/hookshield/internal/constants"
	"github.com/hookshield/hookshield/internal/policy"
	"github.com/hookshield/hookshield/internal/rules"
	"github.com/hookshield/hookshield/internal/scan"
	"github.com/urfave/cli/v3"
)

// NewScanStagedCmd creates the scan-staged command: an explicit scan of the
// git staging area with the file registry, suitable for pre-commit use.
func NewScanStagedCmd() *cli.Command {
	return &cli.Command{
		Name:  "scan-staged",
		Usage: "Scan git-staged files for secrets",
		Description: `Scan the files currently staged for commit (added, copied, or modified)
with the staged-file pattern registry. In block mode a HIGH-severity
finding exits 2; everything else warns and exits 0.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Value: ".",
				Usage: "Repository root to scan",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the project config file (default .claude/hooks/hookshield.json)",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Override the configured mode: warn or block",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			configPath := cmd.String("config")
			if configPath == "" {
				var err error
				configPath, err = config.GetProjectConfigPath(false)
				if err != nil {
					return err
				}
			}
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				cfg = config.DefaultConfig()
			}
			section := cfg.Secrets

			mode := section.Mode
			if m := cmd.String("mode"); m != "" {
				if m != config.ModeWarn && m != config.ModeBlock {
					return fmt.Errorf("invalid --mode '%s'. Valid: warn, block", m)
				}
				mode = m
			}

			root := cmd.String("root")
			paths, err := scan.StagedFiles(root)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				fmt.Println("No staged files to scan.")
				return nil
			}

			registry := rules.FileRules()
			if patternsPath, err := config.GetPatternsPath(false); err == nil {
				registry = append(registry, rules.LoadCustomRules(patternsPath, registry)...)
			}

			findings, ignored := scan.ScanFiles(root, paths, registry, section.Files.Exclude,
				scan.CompileList(section.Allow.Regex),
				scan.CompileList(section.Ignore.Regex))
			for _, path := range ignored {
				fmt.Fprintf(os.Stderr, "%s: findings in %s suppressed by ignore pattern\n", constants.BinaryName, path)
			}

			outcome := policy.Decide(policy.Input{
				Variant:  policy.VariantSecrets,
				Mode:     mode,
				Findings: findings,
			})
			if outcome.Message != "" {
				fmt.Fprintf(os.Stderr, "%s scan-staged: %s\n", constants.BinaryName, outcome.Message)
			} else {
				fmt.Printf("Scanned %d staged file%s: clean.\n", len(paths), plural(len(paths), "", "s"))
			}
			if outcome.ExitCode != 0 {
				return cli.Exit("", outcome.ExitCode)
			}
			return nil
		},
	}
}
