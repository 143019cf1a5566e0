package llm

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/mentor/internal/store"
)

// LoggingProvider records every generation request to the event store and
// the structured log, success or failure. Recording failures never fail the
// generation itself.
type LoggingProvider struct {
	next     Provider
	provider string
	repo     store.EventRepo
	logger   *zap.Logger
}

// WithLogging wraps next so that each call is appended to repo as an LLM
// event. A nil repo disables persistence; a nil logger falls back to nop.
func WithLogging(next Provider, providerName string, repo store.EventRepo, logger *zap.Logger) *LoggingProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{
		next:     next,
		provider: providerName,
		repo:     repo,
		logger:   logger,
	}
}

func (l *LoggingProvider) ModelID() string { return l.next.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.next.Generate(ctx, req)
	latency := time.Since(start)

	ev := store.LLMEvent{
		Timestamp:   start,
		Provider:    l.provider,
		Model:       l.next.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMS:   latency.Milliseconds(),
		RequestBody: serializeRequest(req),
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed",
			zap.String("provider", l.provider),
			zap.String("purpose", ev.Purpose),
			zap.Duration("latency", latency),
			zap.Error(err),
		)
	} else {
		ev.Success = true
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = resp.Text
		l.logger.Debug("llm request succeeded",
			zap.String("provider", l.provider),
			zap.String("model", resp.Model),
			zap.String("purpose", ev.Purpose),
			zap.Duration("latency", latency),
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
	}

	if l.repo != nil {
		if recErr := l.repo.AppendLLMRequest(ctx, ev); recErr != nil {
			l.logger.Warn("llm event not recorded", zap.Error(recErr))
		}
	}
	return resp, err
}

func serializeRequest(req Request) string {
	b, err := json.Marshal(req)
	if err != nil {
		return ""
	}
	return string(b)
}
