// ABOUTME: Root command, global flags, and store lifecycle for every subcommand.
// ABOUTME: Running notes with no subcommand opens the interactive screen.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/notes/internal/config"
	"github.com/harper/notes/internal/kv"
	"github.com/harper/notes/internal/logging"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/store"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile     string
	dbPath      string
	backendFlag string

	cfg       *config.Config
	logger    = zap.NewNop()
	storage   kv.Storage
	noteStore *store.Store
)

// commands that never touch the store
var storeless = map[string]bool{
	"version":                       true,
	"help":                          true,
	"completion":                    true,
	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Take notes from the terminal",
	Long: `notes keeps titled markdown notes in a local store.

Run without arguments to open the interactive screen, or use the
subcommands to add, edit, search, and export notes from scripts.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if storeless[cmd.Name()] || (cmd.HasParent() && cmd.Parent().Name() == "completion") {
			return nil
		}
		return openStore(!cmd.HasParent() || cmd.Name() == "tui")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if cerr := closeStore(); err == nil {
		err = cerr
	}
	return err
}

// openStore resolves config and flags, then loads the collection. The
// interactive screen must not log to stderr, so it logs to the configured
// file or nowhere.
func openStore(interactive bool) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		cfg.Backend = backendFlag
	}
	if dbPath != "" {
		cfg.Path = dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !interactive || cfg.Log.File != "" {
		logger, err = logging.New(cfg.Log.Level, cfg.Log.File)
		if err != nil {
			return fmt.Errorf("failed to set up logging: %w", err)
		}
	}

	storage, err = kv.Open(cfg.Backend, cfg.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.Backend, err)
	}

	noteStore, err = store.Open(storage, store.WithSeed(cfg.SeedWelcome), store.WithLogger(logger))
	if err := persistWarning(err); err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}

	logger.Debug("store opened",
		zap.String("backend", cfg.Backend),
		zap.String("path", cfg.Path),
		zap.Int("notes", noteStore.Len()))
	return nil
}

func closeStore() error {
	_ = logger.Sync()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}

// persistWarning downgrades a failed write to a warning: the change still
// applies for the rest of this process.
func persistWarning(err error) error {
	if errors.Is(err, store.ErrPersist) {
		fmt.Fprintln(os.Stderr, ui.Warning(fmt.Sprintf("changes were not saved: %v", err)))
		return nil
	}
	return err
}

// resolveNote accepts a full id or a unique prefix of at least six characters.
func resolveNote(idOrPrefix string) (*models.Note, error) {
	if note, err := noteStore.Get(idOrPrefix); err == nil {
		return note, nil
	}
	return noteStore.GetByPrefix(idOrPrefix)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/notes/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "storage path (default under $XDG_DATA_HOME/notes)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: badger, bolt, sqlite, or memory")
}
