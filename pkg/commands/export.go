package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stash/pkg/commands/options"
	"tableflip.dev/stash/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection and item as one document",
		Example: `
stash export > backup.json
stash export -o yaml -f stash.yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := export.Export{Service: s.Service, Format: eo.Format, File: eo.File}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddExportArgs(cmd, eo)

	topLevel.AddCommand(cmd)
}
