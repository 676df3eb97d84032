package main

import (
	"fmt"
	"strings"

	"github.com/phrazzld/mjolnir/internal/config"
	"github.com/phrazzld/mjolnir/internal/platform/logger"
	"github.com/phrazzld/mjolnir/internal/redact"
	"github.com/spf13/cobra"
)

// cliOptions holds the values of the persistent flags.
type cliOptions struct {
	configFile string
	envFile    string
	port       int
	logLevel   string
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	root := &cobra.Command{
		Use:   "mjolnir",
		Short: "Mjolnir - artist top songs API",
		Long: `Mjolnir serves the ten most popular songs of an artist, fetched from the
Deezer catalogue and optionally cached.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "",
		"Path to a YAML config file (default: ./config.yaml when present)")
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile,
		"Dotenv file loaded before reading the environment")
	flags.IntVar(&opts.port, "port", 0, "HTTP port, overrides server.port")
	flags.StringVar(&opts.logLevel, "log-level", "",
		"Log level: debug, info, warn or error (overrides server.log_level)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "check-config",
		Short: "Load and validate the configuration, then print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			printConfig(cmd, cfg)
			return nil
		},
	})

	return root
}

// loadConfig loads configuration and applies flag overrides. Flags win over
// config files and the environment.
func loadConfig(cmd *cobra.Command, opts *cliOptions) (*config.Config, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile: opts.configFile,
		EnvFile:    opts.envFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	overridden := false
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = opts.port
		overridden = true
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Server.LogLevel = strings.ToLower(strings.TrimSpace(opts.logLevel))
		overridden = true
	}
	if overridden {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func runServe(cmd *cobra.Command, opts *cliOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"cache_driver", cfg.Cache.Driver,
		"partner_base_url", cfg.Partner.BaseURL)

	ctx := cmd.Context()
	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}

func printConfig(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "server.port: %d\n", cfg.Server.Port)
	_, _ = fmt.Fprintf(out, "server.log_level: %s\n", cfg.Server.LogLevel)
	_, _ = fmt.Fprintf(out, "partner.base_url: %s\n", cfg.Partner.BaseURL)
	_, _ = fmt.Fprintf(out, "partner.max_retries: %d\n", cfg.Partner.MaxRetries)
	_, _ = fmt.Fprintf(out, "cache.driver: %s\n", cfg.Cache.Driver)
	if cfg.Cache.DSN != "" {
		_, _ = fmt.Fprintf(out, "cache.dsn: %s\n", redact.String(cfg.Cache.DSN))
	}
	_, _ = fmt.Fprintf(out, "cache.ttl_seconds: %d\n", cfg.Cache.TTLSeconds)
	_, _ = fmt.Fprintf(out, "task.queue_size: %d\n", cfg.Task.QueueSize)
	_, _ = fmt.Fprintf(out, "task.worker_count: %d\n", cfg.Task.WorkerCount)
}
