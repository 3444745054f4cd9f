package cmd

import (
	"fmt"

	"github.com/abhisek/survey/internal/app"
	"github.com/abhisek/survey/internal/logging"
	"github.com/abhisek/survey/internal/survey"
	"github.com/abhisek/survey/internal/surveyapi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var takeCmd = &cobra.Command{
	Use:   "take",
	Short: "Open the survey form directly",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, true)
	},
}

// runApp loads configuration, opens the store, builds dependencies, and
// launches the TUI.
func runApp(cmd *cobra.Command, startInSurvey bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := logging.New(cfg.Logging.File, cfg.Logging.Level, verbose)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	client := surveyapi.New(cfg.BaseURL, cfg.SurveyID,
		surveyapi.WithTimeout(cfg.Timeout),
		surveyapi.WithLogger(logger),
	)
	repo := st.SubmissionRepo()
	service := survey.NewService(client, repo, logger, survey.Config{
		SurveyID: cfg.SurveyID,
		PageSize: cfg.PageSize,
		Pages:    cfg.Pages,
	})

	logger.Info("starting survey client",
		zap.String("version", version),
		zap.String("endpoint", client.Endpoint()),
		zap.Int("pages", cfg.Pages),
		zap.Int("page_size", cfg.PageSize),
	)

	return app.Run(app.Options{
		Service:       service,
		Repo:          repo,
		Logger:        logger,
		StartInSurvey: startInSurvey,
	})
}
