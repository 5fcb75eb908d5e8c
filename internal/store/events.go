package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
)

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// insert appends one event row, prefixing the sequence and timestamp.
func (r *eventRepo) insert(ctx context.Context, t *schema.Table, values ...any) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	cols := make([]string, 0, len(t.Columns)-1)
	for _, c := range t.Columns[1:] {
		cols = append(cols, c.Name)
	}
	if len(values)+2 != len(cols) {
		return fmt.Errorf("insert %s: %d values for %d columns", t.Name, len(values), len(cols)-2)
	}
	values = append([]any{seq, time.Now().UTC()}, values...)

	b := builder()
	q, args := b.Insert(t.Name).Columns(cols...).Values(values...).Query()
	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("insert %s: %w", t.Name, err)
	}
	return nil
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	return r.insert(ctx, sessionEventsTable,
		data.SessionID,
		data.Action,
		data.Difficulty,
		data.ProblemsServed,
		data.CorrectAnswers,
		data.DurationSecs,
	)
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	return r.insert(ctx, attemptEventsTable,
		data.SessionID,
		data.A,
		data.B,
		data.Strategy,
		data.Answer,
		data.Correct,
		data.Skipped,
		data.HintsRevealed,
		data.TimeMs,
	)
}

func (r *eventRepo) AppendHintEvent(ctx context.Context, data HintEventData) error {
	return r.insert(ctx, hintEventsTable,
		data.SessionID,
		data.A,
		data.B,
		data.Strategy,
		data.Level,
	)
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	var errMsg any
	if data.ErrorMessage != "" {
		errMsg = data.ErrorMessage
	}
	return r.insert(ctx, llmRequestEventsTable,
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		errMsg,
	)
}

func (r *eventRepo) StrategyStats(ctx context.Context) ([]StrategyStat, error) {
	b := builder()
	q, args := b.Select(
		"strategy",
		entsql.As(entsql.Count("*"), "attempts"),
		entsql.As(entsql.Sum("correct"), "correct_count"),
		entsql.As(entsql.Sum("skipped"), "skipped_count"),
		entsql.As(entsql.Avg("hints_revealed"), "avg_hints"),
		entsql.As(entsql.Avg("time_ms"), "avg_time_ms"),
	).
		From(entsql.Table(attemptEventsTable.Name)).
		GroupBy("strategy").
		OrderBy(entsql.Desc("attempts"), "strategy").
		Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query strategy stats: %w", err)
	}
	defer rows.Close()

	var stats []StrategyStat
	for rows.Next() {
		var (
			s       StrategyStat
			avgTime float64
		)
		if err := rows.Scan(&s.Strategy, &s.Attempts, &s.Correct, &s.Skipped, &s.AvgHints, &avgTime); err != nil {
			return nil, fmt.Errorf("scan strategy stats: %w", err)
		}
		s.AvgTime = time.Duration(avgTime) * time.Millisecond
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *eventRepo) RecentAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error) {
	b := builder()
	sel := b.Select(
		"sequence", "timestamp", "session_id", "operand_a", "operand_b",
		"strategy", "answer", "correct", "skipped", "hints_revealed", "time_ms",
	).
		From(entsql.Table(attemptEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	if opts.Strategy != "" {
		sel.Where(entsql.EQ("strategy", opts.Strategy))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	q, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		err := rows.Scan(&a.Sequence, &a.Timestamp, &a.SessionID, &a.A, &a.B,
			&a.Strategy, &a.Answer, &a.Correct, &a.Skipped, &a.HintsRevealed, &a.TimeMs)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *eventRepo) RecentLLMRequests(ctx context.Context, limit int) ([]LLMRequest, error) {
	sel := builder().Select(
		"sequence", "timestamp", "provider", "model", "purpose", "input_tokens",
		"output_tokens", "latency_ms", "success", "error_message",
	).
		From(entsql.Table(llmRequestEventsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequest
	for rows.Next() {
		var (
			e      LLMRequest
			errMsg sql.NullString
		)
		err := rows.Scan(&e.Sequence, &e.Timestamp, &e.Provider, &e.Model, &e.Purpose,
			&e.InputTokens, &e.OutputTokens, &e.LatencyMs, &e.Success, &errMsg)
		if err != nil {
			return nil, fmt.Errorf("scan llm request: %w", err)
		}
		e.ErrorMessage = errMsg.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	b := builder()
	for _, t := range tables {
		q, args := b.Delete(t.Name).Query()
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("reset %s: %w", t.Name, err)
		}
	}
	return tx.Commit()
}
