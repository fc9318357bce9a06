package client

import (
	"context"
	"net/url"
)

// Entitlement returns the trial and subscription state of the session user
func (c *Client) Entitlement(ctx context.Context) (*Entitlement, error) {
	var ent Entitlement
	if err := c.doRequest(ctx, "GET", "/api/v1/entitlement", nil, &ent); err != nil {
		return nil, err
	}
	return &ent, nil
}

// CheckLimit reports whether feature is blocked for the session user
func (c *Client) CheckLimit(ctx context.Context, feature string) (*LimitCheck, error) {
	var check LimitCheck
	if err := c.doRequest(ctx, "GET", "/api/v1/entitlement/limits/"+url.PathEscape(feature), nil, &check); err != nil {
		return nil, err
	}
	return &check, nil
}

// Insights returns the dashboard insights, at most six
func (c *Client) Insights(ctx context.Context) ([]Insight, error) {
	var insights []Insight
	if err := c.doRequest(ctx, "GET", "/api/v1/insights", nil, &insights); err != nil {
		return nil, err
	}
	return insights, nil
}

// InsightSummary returns a narrative summary of the insights
func (c *Client) InsightSummary(ctx context.Context) (*InsightSummary, error) {
	var summary InsightSummary
	if err := c.doRequest(ctx, "GET", "/api/v1/insights/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
