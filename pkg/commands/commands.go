package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/stash/pkg/commands/options"
)

var (
	output  = &options.OutputOptions{}
	logging = &options.LogOptions{}
	noColor bool
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "stash",
		Short: base.Wrap80("Keep collections of the things you care about on the command line."),
		Long: base.Wrap80("Stash keeps personal collections (films, books, records, anything) where " +
			"each collection defines its own typed fields and every item is filled in against that schema."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			fd := os.Stdout.Fd()
			if noColor || (!isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)) {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output.")
	options.AddLogArgs(cmd, logging)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addCollections(topLevel)
	addItems(topLevel)
	addList(topLevel)
	addStatuses(topLevel)
	addDark(topLevel)
	addIcons(topLevel)
	addExport(topLevel)
	addDoctor(topLevel)
	addInfo(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
