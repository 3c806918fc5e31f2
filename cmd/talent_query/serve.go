package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/talent-query/internal/config"
	"github.com/jonathan/talent-query/internal/logger"
	"github.com/jonathan/talent-query/internal/server"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes query processing over REST.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&serveConfigFile, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.Default()
	if serveConfigFile != "" {
		loaded, err := config.LoadConfig(serveConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Logging was initialized from the global flags; the config file and
	// environment supply the values unless a flag was set explicitly.
	logger.Init(serveLogConfig(cfg))

	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "Warning: DATABASE_URL not set, results will not be persisted")
	}

	srv, err := server.New(server.Config{
		Port:        cfg.Port,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// serveLogConfig resolves the serve logging settings: explicit --log-level and
// --log-format flags win over config file and environment values.
func serveLogConfig(cfg *config.Config) logger.Config {
	lc := logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}
	flags := rootCmd.PersistentFlags()
	if flags.Changed("log-level") {
		lc.Level = logLevel
	}
	if flags.Changed("log-format") {
		lc.Format = logFormat
	}
	return lc
}
