package store

import (
	"context"
	"time"
)

// Submission outcomes.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// QueryOpts configures submission queries.
type QueryOpts struct {
	Limit    int // max results (0 = unlimited)
	SurveyID int // 0 = all surveys
}

// SubmissionData captures a single submit attempt.
type SubmissionData struct {
	SurveyID     int
	Result       string
	Status       string
	HTTPStatus   int
	ErrorMessage string
}

// SubmissionRecord is a stored submit attempt.
type SubmissionRecord struct {
	ID        string
	Timestamp time.Time
	SubmissionData
}

// SubmissionRepo records survey submit attempts.
type SubmissionRepo interface {
	// AppendSubmission stores an attempt and returns its ID.
	AppendSubmission(ctx context.Context, data SubmissionData) (string, error)

	// QuerySubmissions returns attempts, newest first.
	QuerySubmissions(ctx context.Context, opts QueryOpts) ([]SubmissionRecord, error)

	// Clear deletes every attempt and returns how many were removed.
	Clear(ctx context.Context) (int64, error)
}
