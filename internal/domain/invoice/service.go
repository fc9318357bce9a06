package invoice

import "context"

// Service defines the interface for invoice business logic
type Service interface {
	Create(ctx context.Context, userID, email string, inv *Invoice) (*Invoice, error)
	Get(ctx context.Context, userID, id string) (*Invoice, error)
	List(ctx context.Context, userID string, filter Filter) ([]*Invoice, error)
	Update(ctx context.Context, inv *Invoice) (*Invoice, error)
	Delete(ctx context.Context, userID, id string) error
	MarkSent(ctx context.Context, userID, id string) (*Invoice, error)
	MarkPaid(ctx context.Context, userID, id string) (*Invoice, error)
	SweepOverdue(ctx context.Context) (int, error)
}
