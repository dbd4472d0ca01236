package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearmatch/clearmatch/pkg/pipeline"
)

// maxPairLines caps how many assignments are echoed to the terminal.
const maxPairLines = 16

// solveCommand creates the solve command for clearing a market.
func (c *CLI) solveCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "solve [mechanism] [market-file]",
		Short: "Clear a market with the selected mechanism",
		Long: `Clear a market with the selected mechanism.

Mechanisms:
  ttc2  two-sided top trading cycles (agents and objects both rank)
  ttc1  one-sided top trading cycles (housing market with priority and
        optional initial ownership)
  da    agent-proposing deferred acceptance (stable matching)

The market file is JSON or TOML. Results are cached locally for faster
subsequent runs; --refresh forces a recompute.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Mechanism = args[0]
			opts.Path = args[1]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runSolve(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.SwapRoles, "swap-roles", false, "run with agent and object roles exchanged (ttc2, da)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached result exists")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")

	return cmd
}

// runSolve executes the pipeline and writes the requested artifacts.
func (c *CLI) runSolve(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, fmt.Sprintf("Clearing market with %s...", opts.Mechanism))
	spinner.Start()

	res, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(res.Artifacts, opts.Formats, opts.Path, output)
	if err != nil {
		return err
	}

	printSuccess("Market cleared with %s", StyleHighlight.Render(opts.Mechanism))
	for _, p := range paths {
		printFile(p)
	}

	rd := res.Document
	for i, pair := range rd.Pairs {
		if i == maxPairLines {
			printDetail("… and %d more", len(rd.Pairs)-maxPairLines)
			break
		}
		printPair(int(pair.Agent), int(pair.Object))
	}
	printStats(rd.Stats.Pairings, rd.Stats.Rounds, rd.Stats.Cycles, rd.Stats.Proposals, res.CacheInfo.SolveHit)

	if jsonPath := pathForFormat(paths, opts.Formats, pipeline.FormatJSON); jsonPath != "" {
		printNewline()
		printNextStep("Render", appName+" render "+jsonPath+" -f svg")
	}
	return nil
}
