package commands

import (
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/stash/pkg/commands/options"
	"tableflip.dev/stash/pkg/runner/collections"
)

func addCollections(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"collection", "col"},
		Short:   "Manage collections and their fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newCollectionsListCmd())
	cmd.AddCommand(newCollectionsShowCmd())
	cmd.AddCommand(newCollectionsNewCmd())
	cmd.AddCommand(newCollectionsEditCmd())
	cmd.AddCommand(newCollectionsDeleteCmd())
	cmd.AddCommand(newCollectionsFieldCmd())
	topLevel.AddCommand(cmd)
}

func newCollectionsListCmd() *cobra.Command {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			output.JSON = oo.JSON
			return run(cmd.Context(), func(s *session) error {
				r := collections.List{Service: s.Service, ShowID: oo.ShowID, JSON: oo.JSON}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArgs(cmd, oo)
	return cmd
}

func newCollectionsShowCmd() *cobra.Command {
	oo := &options.OutputOptions{}
	cmd := &cobra.Command{
		Use:               "show <collection>",
		Short:             "Show the fields of a collection",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCollections,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			output.JSON = oo.JSON
			return run(cmd.Context(), func(s *session) error {
				r := collections.Show{Service: s.Service, Collection: args[0], JSON: oo.JSON}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	return cmd
}

func newCollectionsNewCmd() *cobra.Command {
	in := &options.CollectionInput{}
	var fields []string
	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a collection",
		Long: base.Wrap80("Create a collection. Every collection starts with a text field named Title; " +
			"more fields are given as name:type, and status or select fields may list options as name:type:a|b. " +
			"Field types: text, longtext, url, image, date, status, select, rating, toggle, tags."),
		Example: `
stash collections new Films --field Director --field Rating:rating --field "Status:status:To Watch|Watched"
stash collections new Reading --preset books --color teal
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				in.Name = args[0]
			}
			if in.Preset != "" && strings.TrimSpace(in.Name) == "" {
				in.Name = in.Preset
			}
			if err := in.Validate(); err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := collections.Create{
					Service:     s.Service,
					Name:        in.Name,
					Icon:        in.Icon,
					Color:       in.Color,
					Description: in.Description,
					Preset:      in.Preset,
					Fields:      fields,
				}
				if in.Preset != "" && len(args) == 0 {
					r.Name = ""
				}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddCollectionInputArgs(cmd, in)
	options.AddPresetArgs(cmd, in)
	cmd.Flags().StringArrayVar(&fields, "field", nil,
		"Add a field, as name[:type[:option|option]]. Repeatable.")
	return cmd
}

func newCollectionsEditCmd() *cobra.Command {
	in := &options.CollectionInput{}
	var name string
	cmd := &cobra.Command{
		Use:               "edit <collection>",
		Short:             "Change a collection's name, icon, color or description",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCollections,
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			if cmd.Flags().Changed("name") {
				in.Name = name
			}
			if err := in.Validate(); err != nil {
				return err
			}
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := collections.Edit{Service: s.Service, Collection: args[0]}
				flags := cmd.Flags()
				if flags.Changed("name") {
					r.Name = &in.Name
				}
				if flags.Changed("icon") {
					r.Icon = &in.Icon
				}
				if flags.Changed("color") {
					r.Color = &in.Color
				}
				if flags.Changed("description") {
					r.Description = &in.Description
				}
				return r.Do(cmd.Context())
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "New name.")
	options.AddCollectionInputArgs(cmd, in)
	return cmd
}

func newCollectionsDeleteCmd() *cobra.Command {
	co := &options.ConfirmOptions{}
	cmd := &cobra.Command{
		Use:               "delete <collection>",
		Aliases:           []string{"rm"},
		Short:             "Delete a collection and every item in it",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeCollections,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := collections.Delete{Service: s.Service, Collection: args[0], Confirm: co.Confirm}
				return r.Do(cmd.Context())
			})
		},
	}
	options.AddConfirmArgs(cmd, co)
	return cmd
}

func newCollectionsFieldCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Edit the fields of a collection",
		Long: base.Wrap80("Edit the fields of a collection. The Title field always stays first and cannot be removed. " +
			"Items keep the values of removed fields."),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	ops := []struct {
		op    collections.FieldOp
		use   string
		short string
		args  int
	}{
		{collections.FieldAdd, "add <collection> <name[:type[:option|option]]>", "Append a field", 2},
		{collections.FieldRename, "rename <collection> <field> <new name>", "Rename a field", 3},
		{collections.FieldRemove, "remove <collection> <field>", "Remove a field", 2},
		{collections.FieldMoveUp, "up <collection> <field>", "Move a field one place up", 2},
		{collections.FieldMoveDown, "down <collection> <field>", "Move a field one place down", 2},
		{collections.FieldOptionAdd, "option-add <collection> <field> <option>", "Add an option to a status or select field", 3},
		{collections.FieldOptionRemove, "option-remove <collection> <field> <option>", "Remove an option from a status or select field", 3},
	}
	for _, o := range ops {
		cmd.AddCommand(newFieldOpCmd(o.op, o.use, o.short, o.args))
	}
	return cmd
}

func newFieldOpCmd(op collections.FieldOp, use, short string, nargs int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return completeCollections(cmd, args, toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return run(cmd.Context(), func(s *session) error {
				r := collections.Field{Service: s.Service, Collection: args[0], Op: op, Field: args[1]}
				if len(args) > 2 {
					r.Value = args[2]
				}
				return r.Do(cmd.Context())
			})
		},
	}
}
