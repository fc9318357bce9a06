package project

import "context"

// Service defines the interface for project business logic
type Service interface {
	Create(ctx context.Context, userID, email string, p *Project) (*Project, error)
	Get(ctx context.Context, userID, id string) (*Project, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Project, error)
	Update(ctx context.Context, p *Project) (*Project, error)
	Delete(ctx context.Context, userID, id string) error
}
