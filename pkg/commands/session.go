package commands

import (
	"context"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"tableflip.dev/stash/pkg/app"
	"tableflip.dev/stash/pkg/store"
)

// session is an opened service plus what it needs to shut down.
type session struct {
	Config  store.Config
	Service *app.Service
	Logger  *zap.Logger
}

func openSession(ctx context.Context) (*session, error) {
	logger, err := logging.Logger()
	if err != nil {
		return nil, err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store",
		zap.String("backend", string(cfg.Backend())),
		zap.String("location", p.Location()))

	svc := &app.Service{Persistence: p, Logger: logger}
	if err := svc.Open(ctx); err != nil {
		_ = p.Close()
		return nil, err
	}
	return &session{Config: cfg, Service: svc, Logger: logger}, nil
}

// warnNotice prints the load-time notice, if any, to stderr.
func (s *session) warnNotice() {
	if notice := s.Service.Notice(); notice != nil {
		_, _ = color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %v\n", notice)
	}
}

func (s *session) Close() {
	if err := s.Service.Persistence.Close(); err != nil {
		s.Logger.Warn("close store", zap.Error(err))
	}
	_ = s.Logger.Sync()
}

// run opens a session, hands it to fn and closes it again.
func run(ctx context.Context, fn func(*session) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return output.HandleError(err)
	}
	defer s.Close()
	s.warnNotice()
	return output.HandleError(fn(s))
}
