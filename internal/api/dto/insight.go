package dto

import "github.com/pratik-mahalle/freelancehub/internal/domain/insight"

// InsightDTO represents one generated insight
type InsightDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Trend       string `json:"trend"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// InsightSummaryDTO is a narrative over the generated insights
type InsightSummaryDTO struct {
	Summary  string       `json:"summary"`
	Source   string       `json:"source"`
	Insights []InsightDTO `json:"insights"`
}

// FromInsights converts generated insights, keeping their order
func FromInsights(in []insight.Insight) []InsightDTO {
	out := make([]InsightDTO, len(in))
	for i, ins := range in {
		out[i] = InsightDTO{
			ID:          string(ins.ID),
			Title:       ins.Title,
			Value:       ins.Value,
			Description: ins.Description,
			Trend:       string(ins.Trend),
			Category:    string(ins.Category),
			Priority:    string(ins.Priority),
		}
	}
	return out
}
