// Package info reports where the stash lives and what it holds.
package info

import (
	"context"
	"errors"
	"io"
	"os"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/printers"
	"tableflip.dev/stash/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
	JSON    bool
}

// Summary is the JSON form of Info.
type Summary struct {
	ConfigPath  string `json:"configPath,omitempty"`
	Path        string `json:"path"`
	Backend     string `json:"backend"`
	Key         string `json:"key"`
	Location    string `json:"location"`
	Collections int    `json:"collections"`
	Items       int    `json:"items"`
	Favorites   int    `json:"favorites"`
	DarkMode    bool   `json:"darkMode"`
}

func (n *Info) Do(_ context.Context) error {
	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Service == nil || n.Service.Persistence == nil {
		return errors.New("info: no persistence")
	}

	st := n.Service.State()
	s := Summary{
		ConfigPath:  os.Getenv("STASH_CONFIG_PATH"),
		Path:        n.Config.BasePath(),
		Backend:     string(n.Config.Backend()),
		Key:         n.Config.Key(),
		Location:    n.Service.Persistence.Location(),
		Collections: len(st.Collections),
		Items:       len(st.Items),
		DarkMode:    st.DarkMode,
	}
	for _, it := range st.Items {
		if it.IsFavorite {
			s.Favorites++
		}
	}
	if n.JSON {
		return printers.JSON(n.Out, s)
	}

	pp := printers.PrettyPrint{Out: n.Out}
	if s.ConfigPath != "" {
		pp.Message("STASH_CONFIG_PATH found on env, using %s", s.ConfigPath)
	} else {
		pp.Message("STASH_CONFIG_PATH env var not set")
	}
	pp.Message("Config.path: %s", s.Path)
	pp.Message("Config.backend: %s", s.Backend)
	pp.Message("Config.key: %s", s.Key)
	pp.Message("Stored at: %s", s.Location)
	pp.NewLine()
	pp.TitleWithCount("Collections", s.Collections)
	pp.Collections(st.Collections...)
	pp.Message("%d items, %d favorites, dark mode %t", s.Items, s.Favorites, s.DarkMode)
	return nil
}
