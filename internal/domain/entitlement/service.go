package entitlement

import "context"

// Service defines the entitlement engine
type Service interface {
	// GetTrialInfo returns the entitlement of a user, creating the default
	// trial profile when none exists
	GetTrialInfo(ctx context.Context, userID, email string) (*TrialInfo, error)

	// CurrentTrialInfo resolves the session's user and returns their entitlement
	CurrentTrialInfo(ctx context.Context) (*TrialInfo, error)

	// Resolve returns the loaded entitlement state of a user
	Resolve(ctx context.Context, userID, email string) (Entitlement, error)

	// Require returns a PLAN_LIMIT_REACHED error when feature is blocked for the user
	Require(ctx context.Context, userID, email string, feature Feature) error
}
