package repository

import (
	"context"

	"github.com/pratik-mahalle/freelancehub/internal/domain/profile"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
)

// ProfileRepository implements profile.Repository
type ProfileRepository struct {
	store gateway.DataStore
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(store gateway.DataStore) profile.Repository {
	return &ProfileRepository{store: store}
}

// GetByID retrieves the profile owned by a user id
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profile.Profile, error) {
	row, err := gateway.First(ctx, r.store, gateway.From(tableProfiles).Eq("id", id))
	if err != nil {
		return nil, lookupError(err, "Profile")
	}
	return profileFromRow(row), nil
}

// GetByEmail retrieves a profile by email
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	row, err := gateway.First(ctx, r.store, gateway.From(tableProfiles).Eq("email", email))
	if err != nil {
		return nil, lookupError(err, "Profile")
	}
	return profileFromRow(row), nil
}

// Create stores a new profile
func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) error {
	if p.ID == "" {
		return errors.BadRequest("profile id is required")
	}
	now := nowUTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	row, err := r.store.Insert(ctx, tableProfiles, gateway.Row{
		"id":                              p.ID,
		"email":                           nullString(p.Email),
		"subscription_status":             p.EffectiveStatus(),
		"subscription_plan":               p.EffectivePlan(),
		"trial_started_at":                p.TrialStartedAt,
		"trial_ends_at":                   p.TrialEndsAt,
		"subscription_current_period_end": p.SubscriptionCurrentPeriodEnd,
		"created_at":                      p.CreatedAt,
		"updated_at":                      p.UpdatedAt,
	})
	if err != nil {
		return err
	}
	*p = *profileFromRow(row)
	return nil
}

func profileFromRow(row gateway.Row) *profile.Profile {
	return &profile.Profile{
		ID:                           row.String("id"),
		Email:                        row.String("email"),
		SubscriptionStatus:           profile.Status(row.String("subscription_status")),
		SubscriptionPlan:             profile.Plan(row.String("subscription_plan")),
		TrialStartedAt:               row.Time("trial_started_at"),
		TrialEndsAt:                  row.Time("trial_ends_at"),
		SubscriptionCurrentPeriodEnd: row.Time("subscription_current_period_end"),
		CreatedAt:                    row.TimeOr("created_at", nowUTC()),
		UpdatedAt:                    row.TimeOr("updated_at", nowUTC()),
	}
}
