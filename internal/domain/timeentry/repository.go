package timeentry

import "context"

// Repository defines the interface for time entry data access
type Repository interface {
	Create(ctx context.Context, e *Entry) error
	GetByID(ctx context.Context, userID, id string) (*Entry, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, userID, id string) error
}
