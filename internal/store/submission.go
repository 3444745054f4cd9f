package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const submissionsTable = "submissions"

var submissionColumns = []string{
	"id", "survey_id", "result", "status", "http_status", "error_message", "created_at",
}

// submissionRepo implements SubmissionRepo with ent's SQL builder.
type submissionRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

func (r *submissionRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *submissionRepo) AppendSubmission(ctx context.Context, data SubmissionData) (string, error) {
	id := uuid.New().String()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(submissionsTable).
		Columns(submissionColumns...).
		Values(id, data.SurveyID, data.Result, data.Status, data.HTTPStatus, data.ErrorMessage, r.clock().UnixNano()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return "", fmt.Errorf("save submission: %w", err)
	}
	return id, nil
}

func (r *submissionRepo) QuerySubmissions(ctx context.Context, opts QueryOpts) ([]SubmissionRecord, error) {
	selector := entsql.Dialect(dialect.SQLite).
		Select(submissionColumns...).
		From(entsql.Table(submissionsTable)).
		OrderBy(entsql.Desc("seq"))
	if opts.SurveyID > 0 {
		selector = selector.Where(entsql.EQ("survey_id", opts.SurveyID))
	}
	if opts.Limit > 0 {
		selector = selector.Limit(opts.Limit)
	}
	query, args := selector.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var records []SubmissionRecord
	for rows.Next() {
		var (
			rec       SubmissionRecord
			createdAt int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.SurveyID,
			&rec.Result,
			&rec.Status,
			&rec.HTTPStatus,
			&rec.ErrorMessage,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		rec.Timestamp = time.Unix(0, createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return records, nil
}

func (r *submissionRepo) Clear(ctx context.Context) (int64, error) {
	query, args := entsql.Dialect(dialect.SQLite).Delete(submissionsTable).Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("clear submissions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}
