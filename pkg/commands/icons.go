package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stash/pkg/commands/options"
	"tableflip.dev/stash/pkg/runner/icons"
)

func addIcons(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "icons",
		Short: "Show the icon names a collection can use",
		Example: `
stash icons
stash collections new "Recipes" --icon food
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			output.JSON = oo.JSON
			i := icons.Icons{JSON: oo.JSON}
			return output.HandleError(i.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
