package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearmatch/clearmatch/pkg/marketio"
)

// validateCommand creates the validate command for checking a market file.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [market-file]",
		Short: "Check a market file without solving it",
		Long: `Check a market file without solving it.

Parses the file, validates preferences, capacities, priority, and the
ownership relation, and reports the market dimensions. Exits non-zero if
the market cannot be cleared by any mechanism.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

func (c *CLI) runValidate(path string) error {
	p := newProgress(c.Logger)
	doc, err := marketio.ReadFile(path)
	if err != nil {
		printError("Market file rejected")
		return err
	}
	mkt, _, own, err := doc.ToMarket()
	if err != nil {
		printError("Market definition rejected")
		return err
	}
	p.done(fmt.Sprintf("Validated %s", path))

	printSuccess("Market is valid")
	printKeyValue("agents", fmt.Sprintf("%d", mkt.Agents.Size()))
	printKeyValue("objects", fmt.Sprintf("%d", mkt.Objects.Size()))
	if own != nil {
		printKeyValue("ownership", "present")
	}

	printNewline()
	printNextStep("Solve", fmt.Sprintf("%s solve ttc2 %s", appName, path))
	return nil
}
