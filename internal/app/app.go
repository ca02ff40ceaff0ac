package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/five82/podium/internal/config"
	"github.com/five82/podium/internal/logging"
	"github.com/five82/podium/internal/persist"
	"github.com/five82/podium/internal/prefs"
	"github.com/five82/podium/internal/state"
	"github.com/five82/podium/internal/suggest"
	"github.com/five82/podium/internal/ui"
)

// flushTimeout bounds the final snapshot write on Close.
const flushTimeout = 5 * time.Second

// Options configure the podium application.
type Options struct {
	ConfigPath string
	PrefsPath  string  // empty uses default ~/.config/podium/prefs.toml
	Seed       *uint64 // non-nil makes draws deterministic
	Verbose    bool
}

// Session holds the wired components shared by the TUI and the headless
// commands.
type Session struct {
	Config    config.Config
	Logger    *zap.Logger
	Store     *state.Store
	Generator suggest.Generator

	backend  persist.Backend
	writer   *persist.Writer
	degraded bool

	stop context.CancelFunc
	done <-chan struct{}
}

// Open loads configuration and the persisted snapshot and returns a ready
// Session. A storage backend that cannot be opened is replaced by an
// in-memory one so the session still works, without persistence.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	s := &Session{Config: cfg, Logger: logger}

	backend, err := persist.Open(cfg.Storage)
	if err != nil {
		logger.Warn("storage unavailable, changes will not be saved",
			zap.String("backend", cfg.Storage.Backend),
			zap.String("path", cfg.Storage.Path),
			zap.Error(err))
		backend = persist.NewMemoryBackend()
		s.degraded = true
	}
	s.backend = backend

	data := persist.Load(ctx, backend, cfg.DayIDs(), logger)

	var storeOpts []state.Option
	if opts.Seed != nil {
		seed := *opts.Seed
		storeOpts = append(storeOpts, state.WithSource(rand.New(rand.NewPCG(seed, seed))))
	}
	s.Store = state.New(data, storeOpts...)

	s.writer = persist.NewWriter(backend, logger)
	s.Store.Subscribe(s.writer.Observe)

	s.Generator = newGenerator(ctx, cfg.Suggest, logger)

	logger.Info("session opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.Bool("degraded", s.degraded),
		zap.Ints("days", cfg.DayIDs()))
	return s, nil
}

func newGenerator(ctx context.Context, cfg config.Suggest, logger *zap.Logger) suggest.Generator {
	key := cfg.APIKey()
	if key == "" {
		logger.Info("suggestions disabled", zap.String("api_key_env", cfg.APIKeyEnv))
		return suggest.Nop{}
	}
	gen, err := suggest.NewGemini(ctx, suggest.GeminiConfig{
		APIKey:  key,
		Model:   cfg.Model,
		Count:   cfg.Count,
		Timeout: cfg.Timeout,
	}, logger)
	if err != nil {
		logger.Warn("suggestions disabled", zap.Error(err))
		return suggest.Nop{}
	}
	return gen
}

// Degraded reports whether the session fell back to in-memory storage.
func (s *Session) Degraded() bool {
	return s.degraded
}

// Start launches the background persister. Snapshots committed before
// Start stay queued and are written on the first wake or on Close.
func (s *Session) Start(ctx context.Context) {
	if s.stop != nil {
		return
	}
	ctx, s.stop = context.WithCancel(ctx)
	s.done = StartPersister(ctx, s.writer, defaultRetryInterval, s.Logger)
}

// Close stops the persister, writes the latest snapshot and releases the
// backend.
func (s *Session) Close() error {
	if s.stop != nil {
		s.stop()
		<-s.done
		s.stop = nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	flushErr := s.writer.Flush(ctx)

	closeErr := s.backend.Close()
	_ = s.Logger.Sync()

	if flushErr != nil {
		return fmt.Errorf("save snapshot: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close storage: %w", closeErr)
	}
	return nil
}

// Run boots the podium TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	s, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	s.Start(ctx)

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	uiOpts := ui.Options{
		Context:   ctx,
		Store:     s.Store,
		Generator: s.Generator,
		Config:    s.Config,
		Prefs:     loadPrefs(prefsPath, s.Logger),
		PrefsPath: prefsPath,
		Logger:    s.Logger,
	}
	return ui.Run(uiOpts)
}

func loadPrefs(path string, logger *zap.Logger) prefs.Prefs {
	p, err := prefs.Load(path)
	if err != nil {
		logger.Warn("load prefs failed, using defaults",
			zap.String("path", path),
			zap.Error(err))
		return prefs.Default()
	}
	return p
}
