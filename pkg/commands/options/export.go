package options

import (
	"github.com/spf13/cobra"
)

// ExportOptions
type ExportOptions struct {
	Format string
	File   string
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.Format, "format", "o", "json",
		"Output format. One of 'json' or 'yaml'.")
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		"Write to a file instead of stdout.")
}
