package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/survey/internal/store"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent submission attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		all, _ := cmd.Flags().GetBool("all")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{Limit: limit}
		if !all {
			opts.SurveyID = cfg.SurveyID
		}
		records, err := s.SubmissionRepo().QuerySubmissions(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query submissions: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(records) == 0 {
			fmt.Fprintln(out, "No submissions found.")
			return nil
		}

		// Header.
		fmt.Fprintf(out, "%-19s  %-6s  %-6s  %-4s  %s\n",
			"Timestamp", "Survey", "Status", "HTTP", "Result")
		fmt.Fprintln(out, strings.Repeat("─", 80))

		for _, r := range records {
			result := r.Result
			if rs := []rune(result); len(rs) > 40 {
				result = string(rs[:37]) + "..."
			}
			ok := "✓"
			if r.Status != store.StatusSent {
				ok = "✗"
			}
			fmt.Fprintf(out, "%-19s  %-6d  %-6s  %-4d  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				r.SurveyID,
				ok,
				r.HTTPStatus,
				result,
			)
			if r.ErrorMessage != "" {
				fmt.Fprintf(out, "%-19s  error: %s\n", "", r.ErrorMessage)
			}
		}

		fmt.Fprintf(out, "\n%d attempts\n", len(records))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show (0 = all)")
	historyCmd.Flags().Bool("all", false, "Include every survey, not just the configured one")
}
