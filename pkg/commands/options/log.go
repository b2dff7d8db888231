package options

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// LogOptions
type LogOptions struct {
	Verbose bool
}

func AddLogArgs(cmd *cobra.Command, o *LogOptions) {
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log storage and state changes to stderr.")
}

// Logger returns a development logger when verbose, else a no-op logger.
func (o *LogOptions) Logger() (*zap.Logger, error) {
	if !o.Verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}
