package invoice

import (
	"context"
	"time"
)

// Repository defines the interface for invoice data access
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, userID, id string) (*Invoice, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, userID, id string) error

	// MarkOverdue moves every sent invoice due before the given date to overdue
	// and returns how many changed. It is not scoped to a user.
	MarkOverdue(ctx context.Context, dueBefore time.Time) (int, error)
}
