package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stash/pkg/runner/theme"
)

func addDark(topLevel *cobra.Command) {
	var show bool
	cmd := &cobra.Command{
		Use:   "dark",
		Short: "Toggle the dark mode preference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := theme.Dark{Service: s.Service, Show: show}
				return r.Do(cmd.Context())
			})
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "Only print the current setting.")

	topLevel.AddCommand(cmd)
}
