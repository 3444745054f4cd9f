package survey

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/survey/internal/store"
)

// ErrIncomplete is returned when submitting a form with unanswered questions.
var ErrIncomplete = errors.New("survey has unanswered questions")

// Backend fetches questions and accepts results.
type Backend interface {
	FetchQuestions(ctx context.Context) ([]Item, error)

	// Submit posts the joined result and returns the HTTP status code.
	Submit(ctx context.Context, result string) (int, error)
}

// Config controls pagination and identifies the survey in the local log.
type Config struct {
	SurveyID int
	PageSize int
	Pages    int // 0 derives from the loaded question count
}

// DefaultConfig returns the members survey layout: 4 pages of 5.
func DefaultConfig() Config {
	return Config{
		SurveyID: 1,
		PageSize: DefaultPageSize,
		Pages:    DefaultPages,
	}
}

// Service loads and submits a survey. Network failures are logged and
// swallowed; callers never see a load error.
type Service struct {
	backend Backend
	repo    store.SubmissionRepo
	logger  *zap.Logger
	config  Config
}

// NewService creates a Service. repo and logger may be nil.
func NewService(backend Backend, repo store.SubmissionRepo, logger *zap.Logger, cfg Config) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend: backend,
		repo:    repo,
		logger:  logger,
		config:  cfg,
	}
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.config
}

// Load fetches the question set and returns a fresh form on page 0. On
// failure the error is logged and an empty form is returned.
func (s *Service) Load(ctx context.Context) *Form {
	items, err := s.backend.FetchQuestions(ctx)
	if err != nil {
		s.logger.Error("Error fetching data", zap.Int("survey_id", s.config.SurveyID), zap.Error(err))
		return NewForm(nil, s.config.PageSize, s.config.Pages)
	}

	questions, dropped := FromItems(items)
	if len(dropped) > 0 {
		s.logger.Warn("preselected answers not among options were cleared",
			zap.Ints("question_ids", dropped))
	}

	form := NewForm(questions, s.config.PageSize, s.config.Pages)
	s.logger.Info("questions loaded",
		zap.Int("survey_id", s.config.SurveyID),
		zap.Int("count", form.Len()),
		zap.Int("pages", form.TotalPages()),
	)
	if s.config.Pages > 0 && form.Len() != s.config.Pages*form.PageSize() {
		s.logger.Warn("question count does not fill the fixed page layout",
			zap.Int("count", form.Len()),
			zap.Int("capacity", s.config.Pages*form.PageSize()),
		)
	}
	return form
}

// Submit posts the form result. The outcome is logged and recorded in the
// submission log; the form is left untouched. A returned error has already
// been logged.
func (s *Service) Submit(ctx context.Context, f *Form) error {
	if !f.AllAnswered() {
		return ErrIncomplete
	}

	result := f.Result()
	s.logger.Info("surveyResult", zap.String("result", result))

	status, err := s.backend.Submit(ctx, result)

	rec := store.SubmissionData{
		SurveyID:   s.config.SurveyID,
		Result:     result,
		Status:     store.StatusSent,
		HTTPStatus: status,
	}
	if err != nil {
		rec.Status = store.StatusFailed
		rec.ErrorMessage = err.Error()
		s.logger.Error("Error posting data", zap.Int("survey_id", s.config.SurveyID), zap.Error(err))
	} else {
		s.logger.Info("survey submitted", zap.Int("survey_id", s.config.SurveyID), zap.Int("status", status))
	}

	s.record(ctx, rec)

	if err != nil {
		return fmt.Errorf("submit survey %d: %w", s.config.SurveyID, err)
	}
	return nil
}

// record appends to the submission log without failing the submit path.
func (s *Service) record(ctx context.Context, data store.SubmissionData) {
	if s.repo == nil {
		return
	}
	if _, err := s.repo.AppendSubmission(ctx, data); err != nil {
		s.logger.Warn("failed to record submission", zap.Error(err))
	}
}
