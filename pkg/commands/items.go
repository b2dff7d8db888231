package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/stash/pkg/commands/options"
	"tableflip.dev/stash/pkg/runner/items"
)

func addItems(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item", "it"},
		Short:   "Add, edit and remove items",
		Long: base.Wrap80("Add, edit and remove items. Items are referenced by id, a unique id prefix, " +
			"or their title when it is unique."),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newItemsAddCmd())
	cmd.AddCommand(newItemsEditCmd())
	cmd.AddCommand(newItemsShowCmd())
	cmd.AddCommand(newItemsDeleteCmd())
	cmd.AddCommand(newItemsFavCmd())
	topLevel.AddCommand(cmd)
}

func newItemsAddCmd() *cobra.Command {
	iopts := &options.ItemOptions{}
	cmd := &cobra.Command{
		Use:   "add <collection> [title]",
		Short: "Add an item to a collection",
		Example: `
stash items add Films Arrival --set Rating=5 --set "Status=Watched" --set "Genres=sci-fi, drama"
stash items add Books --set "Title=Piranesi" --fav --added 2021-3-14
`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeCollections,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := iopts.Assignments()
			if err != nil {
				return err
			}
			added, err := iopts.GetAdded()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				if len(args) > 1 {
					c := s.Service.State().CollectionByName(args[0])
					if c != nil && c.TitleField() != nil {
						values = append([][2]string{{c.TitleField().ID, args[1]}}, values...)
					}
				}
				r := items.Add{
					Service:    s.Service,
					Collection: args[0],
					Values:     values,
					Favorite:   iopts.Favorite,
					Added:      added,
				}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddItemArgs(cmd, iopts)
	options.AddFavoriteArgs(cmd, iopts)
	options.AddAddedArgs(cmd, iopts)
	return cmd
}

func newItemsEditCmd() *cobra.Command {
	iopts := &options.ItemOptions{}
	co := &options.CollectionOptions{}
	cmd := &cobra.Command{
		Use:   "edit <item>",
		Short: "Change field values of an item or move it to another collection",
		Example: `
stash items edit Arrival --set Rating=4
stash items edit 3f2a --collection Books
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := iopts.Assignments()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := items.Edit{Service: s.Service, Item: args[0], Values: values, MoveTo: co.Collection}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddItemArgs(cmd, iopts)
	options.AddCollectionArgs(cmd, co)
	_ = cmd.RegisterFlagCompletionFunc("collection", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return collectionCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newItemsShowCmd() *cobra.Command {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "show <item>",
		Short: "Show every field of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			output.JSON = oo.JSON
			return run(cmd.Context(), func(s *session) error {
				r := items.Show{Service: s.Service, Item: args[0], ShowID: oo.ShowID, JSON: oo.JSON}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, oo)
	return cmd
}

func newItemsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <item>...",
		Aliases: []string{"rm"},
		Short:   "Delete items",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := items.Delete{Service: s.Service, Items: args}
				return r.Do(cmd.Context())
			})
		},
	}
}

func newItemsFavCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fav <item>",
		Short: "Toggle the favorite flag of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := items.Favorite{Service: s.Service, Item: args[0]}
				return r.Do(cmd.Context())
			})
		},
	}
}
