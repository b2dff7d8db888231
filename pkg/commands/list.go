package commands

import (
	"time"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/stash/pkg/commands/options"
	"tableflip.dev/stash/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	vo := &options.ViewOptions{}
	var follow bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List items",
		Long: base.Wrap80("List items. The view picks all items, favorites, or one collection; the search " +
			"keeps items with any field value containing the text; --rated, --status and --tag narrow further; " +
			"--sort orders the result."),
		Example: `
stash list
stash list --view favorites
stash list --view Films --status Watched --sort rating_desc
stash list -q nolan --rated
stash list --since 2w --tag sci-fi
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters, err := vo.Filters(time.Now())
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			output.JSON = oo.JSON
			return run(cmd.Context(), func(s *session) error {
				r := list.List{
					Service: s.Service,
					Logger:  s.Logger,
					View:    vo.View,
					Query:   vo.Search,
					Sort:    vo.Sort,
					Filters: filters,
					ShowID:  oo.ShowID,
					JSON:    oo.JSON,
					Follow:  follow,
				}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddViewArgs(cmd, vo)
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, oo)
	cmd.Flags().BoolVarP(&follow, "watch", "w", false,
		"Keep running and print the list again whenever the stash changes.")
	_ = cmd.RegisterFlagCompletionFunc("view", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return append([]string{"all", "favorites"}, collectionCompletions(cmd, toComplete)...), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addStatuses(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	vo := &options.ViewOptions{}
	cmd := &cobra.Command{
		Use:   "statuses",
		Short: "List the status values and tags present in a view",
		Example: `
stash statuses --view Films
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			output.JSON = oo.JSON
			return run(cmd.Context(), func(s *session) error {
				r := list.Statuses{Service: s.Service, View: vo.View, Query: vo.Search, JSON: oo.JSON}
				return r.Do(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&vo.View, "view", "all",
		`Items to look at: "all", "favorites", or a collection name.`)
	cmd.Flags().StringVarP(&vo.Search, "search", "q", "",
		"Case-insensitive text search over every field value.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
