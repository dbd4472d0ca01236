package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearmatch/clearmatch/pkg/marketio"
	"github.com/clearmatch/clearmatch/pkg/pipeline"
)

// renderCommand creates the render command for drawing a solved matching.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "render [result.json]",
		Short: "Render a solved matching as a bipartite graph",
		Long: `Render a solved matching as a bipartite graph.

The render command takes a result.json file (produced by 'solve') and
draws the committed assignments as a DOT, SVG, or PNG bipartite graph.
Rendered artifacts are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := []string{pipeline.FormatSVG}
			if formatsStr != "" {
				formats = parseFormats(formatsStr)
			}
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when a cached artifact exists")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, dot, json (comma-separated)")

	return cmd
}

// runRender loads the result and renders the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, output string, noCache, refresh bool) error {
	rd, err := marketio.ReadResultFile(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Formats: formats, Refresh: refresh, Logger: c.Logger}

	spinner := newSpinner(ctx, "Rendering matching...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, rd, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(artifacts, formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(rd.Stats.Pairings, 0, 0, 0, cacheHit)
	return nil
}
