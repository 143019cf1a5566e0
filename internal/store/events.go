package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a requested event does not exist.
var ErrNotFound = errors.New("event not found")

// QuestionEvent is one processed question, terminated or not.
type QuestionEvent struct {
	ID           int64
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	Question     string
	QuestionType string
	Strategy     string
	Handler      string
	HintCount    int
	Degraded     bool
}

// HintEvent is one hint served by the interception chain.
type HintEvent struct {
	ID         int64
	Sequence   int64
	Timestamp  time.Time
	SessionID  string
	Question   string
	HintNumber int
}

// SessionEvent marks a session boundary. Action is "started", "reset", or
// "ended"; the counters are the session totals at that moment.
type SessionEvent struct {
	ID             int64
	Sequence       int64
	Timestamp      time.Time
	SessionID      string
	Action         string
	QuestionsAsked int
	HintsGiven     int
	DurationSecs   int64
}

// LLMEvent records one generation request against an external provider,
// successful or not.
type LLMEvent struct {
	ID           int64
	Sequence     int64
	Timestamp    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMS    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// AggregateStats is the lifetime view across all sessions, computed from the
// question and hint event tables.
type AggregateStats struct {
	Questions  int
	Hints      int
	Degraded   int
	Sessions   int
	ByType     map[string]int
	ByStrategy map[string]int
	ByHandler  map[string]int
}

// EventRepo appends and queries pipeline events. All appends assign the next
// global sequence number before inserting.
type EventRepo interface {
	AppendQuestion(ctx context.Context, ev QuestionEvent) error
	AppendHint(ctx context.Context, ev HintEvent) error
	AppendSession(ctx context.Context, ev SessionEvent) error
	AppendLLMRequest(ctx context.Context, ev LLMEvent) error

	// ListLLMEvents returns the most recent LLM events, newest first.
	// A non-empty purpose filters in the query, so limit always applies
	// to matching rows.
	ListLLMEvents(ctx context.Context, purpose string, limit int) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
	Aggregate(ctx context.Context) (*AggregateStats, error)
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendQuestion(ctx context.Context, ev QuestionEvent) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO question_events
			(sequence, timestamp, session_id, question, question_type, strategy, handler, hint_count, degraded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, nowStamp(ev.Timestamp), ev.SessionID, ev.Question,
		ev.QuestionType, ev.Strategy, ev.Handler, ev.HintCount, boolInt(ev.Degraded),
	)
	if err != nil {
		return fmt.Errorf("append question event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendHint(ctx context.Context, ev HintEvent) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO hint_events (sequence, timestamp, session_id, question, hint_number)
		VALUES (?, ?, ?, ?, ?)`,
		seq, nowStamp(ev.Timestamp), ev.SessionID, ev.Question, ev.HintNumber,
	)
	if err != nil {
		return fmt.Errorf("append hint event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSession(ctx context.Context, ev SessionEvent) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO session_events
			(sequence, timestamp, session_id, action, questions_asked, hints_given, duration_secs)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seq, nowStamp(ev.Timestamp), ev.SessionID, ev.Action,
		ev.QuestionsAsked, ev.HintsGiven, ev.DurationSecs,
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, ev LLMEvent) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_events
			(sequence, timestamp, provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, nowStamp(ev.Timestamp), ev.Provider, ev.Model, ev.Purpose,
		ev.InputTokens, ev.OutputTokens, ev.LatencyMS, boolInt(ev.Success),
		ev.ErrorMessage, ev.RequestBody, ev.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) ListLLMEvents(ctx context.Context, purpose string, limit int) ([]LLMEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, sequence, timestamp, provider, model, purpose, input_tokens,
			output_tokens, latency_ms, success, error_message, request_body, response_body
		FROM llm_events`
	args := []any{}
	if purpose != "" {
		query += ` WHERE purpose = ?`
		args = append(args, purpose)
	}
	query += ` ORDER BY sequence DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list llm events: %w", err)
	}
	defer rows.Close()

	var out []LLMEvent
	for rows.Next() {
		ev, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *ev)
	}
	return out, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, sequence, timestamp, provider, model, purpose, input_tokens,
			output_tokens, latency_ms, success, error_message, request_body, response_body
		FROM llm_events WHERE id = ?`, id)
	ev, err := scanLLMEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("llm event %d: %w", id, ErrNotFound)
	}
	return ev, err
}

func (r *eventRepo) Aggregate(ctx context.Context) (*AggregateStats, error) {
	agg := &AggregateStats{
		ByType:     make(map[string]int),
		ByStrategy: make(map[string]int),
		ByHandler:  make(map[string]int),
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT question_type, strategy, handler, degraded FROM question_events`)
	if err != nil {
		return nil, fmt.Errorf("aggregate questions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var qType, strat, handler string
		var degraded int
		if err := rows.Scan(&qType, &strat, &handler, &degraded); err != nil {
			return nil, fmt.Errorf("scan question event: %w", err)
		}
		agg.ByHandler[handler]++
		if strat != "" {
			agg.Questions++
			agg.ByType[qType]++
			agg.ByStrategy[strat]++
		}
		if degraded != 0 {
			agg.Degraded++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM hint_events`).Scan(&agg.Hints); err != nil {
		return nil, fmt.Errorf("aggregate hints: %w", err)
	}
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT session_id) FROM session_events`).Scan(&agg.Sessions); err != nil {
		return nil, fmt.Errorf("aggregate sessions: %w", err)
	}
	return agg, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEvent, error) {
	var ev LLMEvent
	var ts string
	var success int
	err := row.Scan(&ev.ID, &ev.Sequence, &ts, &ev.Provider, &ev.Model, &ev.Purpose,
		&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMS, &success,
		&ev.ErrorMessage, &ev.RequestBody, &ev.ResponseBody)
	if err != nil {
		return nil, err
	}
	ev.Success = success != 0
	ev.Timestamp = parseStamp(ts)
	return &ev, nil
}

// nowStamp formats t, defaulting to the current time, as the stored
// RFC 3339 UTC string.
func nowStamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseStamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
