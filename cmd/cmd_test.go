package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/survey/internal/store"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default; cobra keeps parsed values
// on the package-level commands between runs.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestConfigShow_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "config", "show",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--base-url", "https://surveys.example.com",
		"--survey-id", "7",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "base_url: https://surveys.example.com")
	assert.Contains(t, out, "survey_id: 7")
	assert.Contains(t, out, "pages: 4")
}

func TestConfigShow_InvalidFlag(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "config", "show",
		"--config", filepath.Join(dir, "missing.yaml"),
		"--base-url", "not a url",
		"--survey-id", "1",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url")
}

func TestConfigInit_WritesOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey", "config.yaml")

	out, err := execute(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote")
	assert.FileExists(t, path)

	_, err = execute(t, "config", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestHistoryAndReset(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "survey.db")
	cfgPath := filepath.Join(dir, "config.yaml")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	repo := st.SubmissionRepo()
	_, err = repo.AppendSubmission(context.Background(), store.SubmissionData{
		SurveyID: 1, Result: "A,B,C", Status: store.StatusSent, HTTPStatus: 200,
	})
	require.NoError(t, err)
	_, err = repo.AppendSubmission(context.Background(), store.SubmissionData{
		SurveyID: 1, Result: "A,B,C", Status: store.StatusFailed, ErrorMessage: "connection refused",
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	args := []string{"--config", cfgPath, "--db", dbPath, "--survey-id", "1"}

	out, err := execute(t, append([]string{"history"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "A,B,C")
	assert.Contains(t, out, "error: connection refused")
	assert.Contains(t, out, "2 attempts")

	out, err = execute(t, append([]string{"reset"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 submission records.")

	out, err = execute(t, append([]string{"history"}, args...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "No submissions found.")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "survey "+version)
}

func TestHistory_TruncatesMultiByteResult(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "survey.db")
	cfgPath := filepath.Join(dir, "config.yaml")

	result := strings.Repeat("그렇다,", 15)
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.SubmissionRepo().AppendSubmission(context.Background(), store.SubmissionData{
		SurveyID: 1, Result: result, Status: store.StatusSent, HTTPStatus: 200,
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := execute(t, "history", "--config", cfgPath, "--db", dbPath, "--survey-id", "1")
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(out), "output must stay valid UTF-8")
	assert.Contains(t, out, string([]rune(result)[:37])+"...")
}
