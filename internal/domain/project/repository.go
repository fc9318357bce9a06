package project

import "context"

// Repository defines the interface for project data access
type Repository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, userID, id string) (*Project, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Project, error)
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, userID, id string) error
}
