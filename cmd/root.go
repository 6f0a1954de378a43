package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"psiagenda/internal/assistant"
	"psiagenda/internal/backup"
	"psiagenda/internal/config"
	"psiagenda/internal/schedule"
	"psiagenda/internal/store"
)

// rootCmd represents the base command for the psiagenda application
var rootCmd = &cobra.Command{
	Use:   "psiagenda",
	Short: "Appointment scheduling for a single practitioner",
	Long: `psiagenda manages the appointment book of a single practitioner:
one-time and recurring sessions, weekly or biweekly, expanded over a
six-month horizon.

It can run as:
  - A standalone CLI tool (default)
  - An MCP (Model Context Protocol) server for AI assistants`,
	SilenceUsage: true,
}

var (
	configPath string
	dataDir    string
	debugMode  bool
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "psiagenda version %s\n" .Version}}`)

	// If no subcommand is provided, show the schedule by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "list")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// A .env file in the working directory may provide GEMINI_API_KEY
	// and the OTEL_* instrumentation settings. Absence is not an error.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: OS config dir)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding the appointment data (default: OS config dir)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newEditCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// app bundles the wired components every subcommand needs.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	service   *schedule.Service
	backups   *backup.Manager
	assistant *assistant.Client
}

// newApp loads the configuration and wires the file store, scheduling
// service, backup manager and, when an API key is configured, the AI
// assistant client.
func newApp() (*app, error) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	dir := dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	if dir == "" {
		dir, err = store.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve data directory: %w", err)
		}
	}

	st, err := store.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open data directory %s: %w", dir, err)
	}

	service, err := schedule.NewService(schedule.ServiceConfig{
		Store:  st,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	backups, err := backup.NewManager(backup.ManagerConfig{
		Store:  st,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, service: service, backups: backups}

	if cfg.Gemini.APIKey != "" {
		a.assistant, err = assistant.NewClient(assistant.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
			Logger: logger,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create assistant client: %w", err)
		}
	}

	return a, nil
}

// warnIfBackupDue prints a reminder on stderr when the last export is older
// than the backup window. List and mutation commands call this so the
// reminder surfaces during normal use without blocking anything.
func (a *app) warnIfBackupDue(cmd *cobra.Command) {
	due, err := a.backups.IsDue(cmd.Context())
	if err != nil || !due {
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Warning: last backup is more than 7 days old. Run 'psiagenda export' to refresh it.")
}
