package profile

import "context"

// Repository defines the interface for profile data access.
// Lookups return an errors.NotFound AppError when no profile exists.
type Repository interface {
	// GetByID retrieves the profile owned by a user id
	GetByID(ctx context.Context, id string) (*Profile, error)

	// GetByEmail retrieves a profile by its email
	GetByEmail(ctx context.Context, email string) (*Profile, error)

	// Create stores a new profile
	Create(ctx context.Context, p *Profile) error
}
