package timeentry

import "context"

// Service defines the interface for time tracking
type Service interface {
	Create(ctx context.Context, userID, email string, e *Entry) (*Entry, error)
	Get(ctx context.Context, userID, id string) (*Entry, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) (*Entry, error)
	Delete(ctx context.Context, userID, id string) error
}
