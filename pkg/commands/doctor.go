package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/stash/pkg/runner/doctor"
)

func addDoctor(topLevel *cobra.Command) {
	var repair bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that collections and items agree with each other",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := doctor.Doctor{Service: s.Service, Repair: repair}
				return r.Do(cmd.Context())
			})
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "Rebuild the item lists of collections that disagree with their items.")

	topLevel.AddCommand(cmd)
}
