// Package export writes the whole stash as one document.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/state"
)

// Export writes the stored state as JSON (the persisted layout) or YAML.
type Export struct {
	Service *app.Service
	Out     io.Writer
	Format  string
	// File, when set, is written instead of Out.
	File string
}

// Do encodes the state.
func (e *Export) Do(_ context.Context) error {
	if e.Service == nil {
		return errors.New("export: no service")
	}
	st := e.Service.State()

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(strings.TrimSpace(e.Format)) {
	case "", "json":
		if data, err = state.Encode(st); err == nil {
			data = append(data, '\n')
		}
	case "yaml", "yml":
		data, err = yaml.Marshal(st)
	default:
		return fmt.Errorf("export: unknown format %q, expected json or yaml", e.Format)
	}
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if e.File != "" {
		if err := os.WriteFile(e.File, data, 0o644); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	}
	out := e.Out
	if out == nil {
		out = color.Output
	}
	_, err = out.Write(data)
	return err
}
