package llm

import "context"

type purposeKey struct{}

// WithPurpose labels ctx with the pedagogical purpose of the request, for
// example the strategy name. The logging middleware records it.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the purpose label, or "unspecified" when the context
// carries none.
func PurposeFrom(ctx context.Context) string {
	if p, ok := ctx.Value(purposeKey{}).(string); ok && p != "" {
		return p
	}
	return "unspecified"
}
