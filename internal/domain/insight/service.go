package insight

import "context"

// Service defines the insight aggregation engine
type Service interface {
	// Generate runs every slot for a user and returns at most MaxInsights
	// insights in slot order. Slots without data are omitted.
	Generate(ctx context.Context, userID string) ([]Insight, error)

	// Summarize generates insights and describes them in a few sentences
	Summarize(ctx context.Context, userID string) (*Summary, error)
}
