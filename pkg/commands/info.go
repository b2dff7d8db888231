package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stash/pkg/commands/options"
	"tableflip.dev/stash/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the stash and where it is stored.",
		Example: `
stash info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			output.JSON = oo.JSON
			return run(cmd.Context(), func(s *session) error {
				i := info.Info{
					Config:  s.Config,
					Service: s.Service,
					JSON:    oo.JSON,
				}
				return i.Do(cmd.Context())
			})
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
