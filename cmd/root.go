package cmd

import (
	"fmt"

	"github.com/abhisek/survey/internal/config"
	"github.com/abhisek/survey/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "survey",
	Short:        "Terminal client for the members survey",
	Long:         "Survey answers the members survey page by page in the terminal and submits the result to the survey backend.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to config file (overrides SURVEY_CONFIG env var)")
	flags.String("db", "", "Path to SQLite database file (overrides SURVEY_DB env var)")
	flags.String("base-url", "", "Survey backend origin, e.g. http://localhost:3000")
	flags.Int("survey-id", 0, "Survey to answer")
	flags.String("log-file", "", "Path to log file (overrides SURVEY_LOG_FILE env var)")
	flags.BoolP("verbose", "v", false, "Log at debug level")

	rootCmd.AddCommand(takeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective configuration. Sources in increasing
// priority: defaults, config file, .env, SURVEY_* env vars, flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotenv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	path, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL, _ = flags.GetString("base-url")
	}
	if flags.Changed("survey-id") {
		cfg.SurveyID, _ = flags.GetInt("survey-id")
	}
	if flags.Changed("db") {
		cfg.DB, _ = flags.GetString("db")
	}
	if flags.Changed("log-file") {
		cfg.Logging.File, _ = flags.GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath returns the --config flag value, falling back to the
// default location.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	p, err := config.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return p, nil
}

// resolveDBPath returns the configured database path (flag, SURVEY_DB or
// config file), then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the submission log.
func openStore(cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
