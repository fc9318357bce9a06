package client

import "context"

// Service defines the interface for client business logic
type Service interface {
	Create(ctx context.Context, userID, email string, c *Client) (*Client, error)
	Get(ctx context.Context, userID, id string) (*Client, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Client, error)
	Update(ctx context.Context, c *Client) (*Client, error)
	Delete(ctx context.Context, userID, id string) error
}
