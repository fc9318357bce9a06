package entitlement

import (
	"math"
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/domain/profile"
)

// Unlimited marks a limit without a cap
const Unlimited = -1

// Limits are the plan quotas. They are reported, not enforced.
type Limits struct {
	MaxClients   int `json:"max_clients"`
	MaxProjects  int `json:"max_projects"`
	MaxStorageGB int `json:"max_storage_gb"`
}

// Plan quotas
var (
	ProLimits  = Limits{MaxClients: Unlimited, MaxProjects: Unlimited, MaxStorageGB: 10}
	FreeLimits = Limits{MaxClients: 10, MaxProjects: 5, MaxStorageGB: 1}
)

// LimitsFor returns the quotas of a plan
func LimitsFor(plan profile.Plan) Limits {
	if plan == profile.PlanPro {
		return ProLimits
	}
	return FreeLimits
}

// TrialInfo is derived from a profile on every check and never stored
type TrialInfo struct {
	Status                profile.Status `json:"status"`
	Plan                  profile.Plan   `json:"plan"`
	DaysRemaining         int            `json:"days_remaining"`
	IsExpired             bool           `json:"is_expired"`
	CanUseFeatures        bool           `json:"can_use_features"`
	HasActiveSubscription bool           `json:"has_active_subscription"`
	TrialEndsAt           *time.Time     `json:"trial_ends_at,omitempty"`
	CurrentPeriodEnd      *time.Time     `json:"current_period_end,omitempty"`
	Limits                Limits         `json:"limits"`
}

const day = 24 * time.Hour

// ComputeTrialInfo derives the entitlement of p at now
func ComputeTrialInfo(p *profile.Profile, now time.Time) TrialInfo {
	status := p.EffectiveStatus()
	plan := p.EffectivePlan()

	days := 0
	if p.TrialEndsAt != nil {
		remaining := math.Ceil(float64(p.TrialEndsAt.Sub(now)) / float64(day))
		if remaining > 0 {
			days = int(remaining)
		}
	}

	active := status == profile.StatusActive &&
		(p.SubscriptionCurrentPeriodEnd == nil || p.SubscriptionCurrentPeriodEnd.After(now))
	expired := (status == profile.StatusTrial && days <= 0) || status == profile.StatusExpired

	return TrialInfo{
		Status:                status,
		Plan:                  plan,
		DaysRemaining:         days,
		IsExpired:             expired,
		CanUseFeatures:        active || (!expired && status == profile.StatusTrial),
		HasActiveSubscription: active,
		TrialEndsAt:           p.TrialEndsAt,
		CurrentPeriodEnd:      p.SubscriptionCurrentPeriodEnd,
		Limits:                LimitsFor(plan),
	}
}
