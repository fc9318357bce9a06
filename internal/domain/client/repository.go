package client

import "context"

// Repository defines the interface for client data access.
// Every method is scoped to the owning user.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, userID, id string) (*Client, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, userID, id string) error
}
