package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/five82/bloom/internal/catalog"
	"github.com/five82/bloom/internal/config"
	"github.com/five82/bloom/internal/export"
	"github.com/five82/bloom/internal/prefs"
	"github.com/five82/bloom/internal/storage"
	"github.com/five82/bloom/internal/ui"
)

const defaultEnvFile = ".env"

// Options configure the Bloom application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/bloom/prefs.toml
	EnvFile    string // empty tries ./.env and ignores it when missing
}

// Run boots the Bloom TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	sess, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	userPrefs := prefs.Load(opts.PrefsPath)
	log.Printf("app: started with %s storage, %d bouquets", sess.cfg.StorageBackend, sess.store.Len())

	err = ui.Run(ui.Options{
		Context:     ctx,
		Store:       sess.store,
		Placeholder: sess.cfg.PlaceholderImage,
		DarkMode:    userPrefs.DarkMode,
		PrefsPath:   opts.PrefsPath,
		LogPath:     sess.cfg.LogPath,
	})
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// Export writes the stored collection to w.
func Export(ctx context.Context, opts Options, w io.Writer, format export.Format) error {
	sess, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	return export.WriteRecords(w, format, sess.store.Snapshot())
}

// Stats writes statistics for the stored collection to w.
func Stats(ctx context.Context, opts Options, w io.Writer, format export.Format) error {
	sess, err := open(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	return export.WriteStats(w, format, catalog.ComputeStatistics(sess.store.Snapshot()))
}

// session holds everything opened for one command.
type session struct {
	cfg     config.Config
	kv      storage.KV
	store   *catalog.Store
	logFile *os.File
	prevLog io.Writer
}

func open(ctx context.Context, opts Options) (*session, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load bloom config: %w", err)
	}

	sess := &session{cfg: cfg, prevLog: log.Writer()}
	if err := sess.startLogging(); err != nil {
		return nil, err
	}

	kv, err := openStorage(ctx, cfg.StorageOptions(), defaultConnectAttempts, defaultRetryInterval)
	if err != nil {
		sess.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageBackend, err)
	}
	sess.kv = kv

	sess.store = catalog.NewStore(ctx, catalog.NewJSONPersister(kv, cfg.StorageKey),
		catalog.WithPlaceholderImage(cfg.PlaceholderImage),
		catalog.WithLogger(log.Default()),
	)
	return sess, nil
}

// startLogging sends the standard logger to the configured file so log
// lines never land on the terminal the TUI draws on.
func (s *session) startLogging() error {
	if s.cfg.LogPath == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(s.cfg.LogPath, "")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	s.logFile = f
	return nil
}

// Close flushes the store, then releases storage and the log file.
func (s *session) Close() {
	if s.store != nil {
		_ = s.store.Close()
	}
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			log.Printf("app: close storage: %v", err)
		}
	}
	log.SetOutput(s.prevLog)
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// loadEnvFile reads KEY=value pairs into the environment without overriding
// variables that are already set. A missing default file is ignored.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}
