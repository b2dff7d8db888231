package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(stash completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(stash completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

func completeCollections(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return collectionCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
}

func collectionCompletions(cmd *cobra.Command, toComplete string) []string {
	s, err := openSession(cmd.Context())
	if err != nil {
		return nil
	}
	defer s.Close()
	var names []string
	for _, c := range s.Service.State().Collections {
		if strings.HasPrefix(strings.ToLower(c.Name), strings.ToLower(toComplete)) {
			names = append(names, c.Name)
		}
	}
	return names
}
