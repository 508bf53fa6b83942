package main

import (
	"locator-inspector/internal/bootstrap"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspector",
		Short: "Generate CSS selectors and XPath expressions for page elements",
		Long: `Locator Inspector produces a CSS selector and an XPath expression for an
element of a web page, validated for uniqueness against the page itself.

Run without a subcommand to start the interactive console, or use
"locate" for a one-shot lookup.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			bootstrap.NewApp().Run()

			return nil
		},
	}

	cmd.AddCommand(newLocateCmd())

	return cmd
}
