package profile

import "time"

// Status is the subscription status stored on a profile
type Status string

// Subscription statuses
const (
	StatusTrial     Status = "trial"
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
	StatusPastDue   Status = "past_due"
	StatusUnpaid    Status = "unpaid"
)

// Plan is the subscription plan stored on a profile
type Plan string

// Plans
const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// DefaultTrialLength is the trial granted to a lazily created profile
const DefaultTrialLength = 14 * 24 * time.Hour

// Profile is the per-user subscription record. There is exactly one per user id.
type Profile struct {
	ID                           string     `json:"id"`
	Email                        string     `json:"email,omitempty"`
	SubscriptionStatus           Status     `json:"subscription_status"`
	SubscriptionPlan             Plan       `json:"subscription_plan"`
	TrialStartedAt               *time.Time `json:"trial_started_at,omitempty"`
	TrialEndsAt                  *time.Time `json:"trial_ends_at,omitempty"`
	SubscriptionCurrentPeriodEnd *time.Time `json:"subscription_current_period_end,omitempty"`
	CreatedAt                    time.Time  `json:"created_at"`
	UpdatedAt                    time.Time  `json:"updated_at"`
}

// NewTrial returns the default profile for a user seen for the first time
func NewTrial(userID, email string, now time.Time, length time.Duration) *Profile {
	if length <= 0 {
		length = DefaultTrialLength
	}
	now = now.UTC().Truncate(time.Second)
	ends := now.Add(length)
	return &Profile{
		ID:                 userID,
		Email:              email,
		SubscriptionStatus: StatusTrial,
		SubscriptionPlan:   PlanFree,
		TrialStartedAt:     &now,
		TrialEndsAt:        &ends,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// EffectiveStatus returns the status, defaulting to trial when unset
func (p *Profile) EffectiveStatus() Status {
	if p.SubscriptionStatus == "" {
		return StatusTrial
	}
	return p.SubscriptionStatus
}

// EffectivePlan returns the plan, defaulting to free when unset
func (p *Profile) EffectivePlan() Plan {
	if p.SubscriptionPlan == "" {
		return PlanFree
	}
	return p.SubscriptionPlan
}
