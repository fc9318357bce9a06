package entitlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pratik-mahalle/freelancehub/internal/domain/profile"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestComputeTrialInfo(t *testing.T) {
	tests := []struct {
		name          string
		profile       profile.Profile
		wantDays      int
		wantExpired   bool
		wantCanUse    bool
		wantActiveSub bool
		wantLimits    Limits
	}{
		{
			name:        "free trial with five days left",
			profile:     profile.Profile{SubscriptionStatus: profile.StatusTrial, SubscriptionPlan: profile.PlanFree, TrialEndsAt: at(5 * day)},
			wantDays:    5,
			wantExpired: false,
			wantCanUse:  true,
			wantLimits:  Limits{MaxClients: 10, MaxProjects: 5, MaxStorageGB: 1},
		},
		{
			name:        "partial day rounds up",
			profile:     profile.Profile{SubscriptionStatus: profile.StatusTrial, TrialEndsAt: at(36 * time.Hour)},
			wantDays:    2,
			wantCanUse:  true,
			wantLimits:  FreeLimits,
		},
		{
			name:        "trial ended yesterday",
			profile:     profile.Profile{SubscriptionStatus: profile.StatusTrial, TrialEndsAt: at(-day)},
			wantDays:    0,
			wantExpired: true,
			wantLimits:  FreeLimits,
		},
		{
			name:        "trial without end date is expired",
			profile:     profile.Profile{SubscriptionStatus: profile.StatusTrial},
			wantExpired: true,
			wantLimits:  FreeLimits,
		},
		{
			name:          "active pro without period end",
			profile:       profile.Profile{SubscriptionStatus: profile.StatusActive, SubscriptionPlan: profile.PlanPro, TrialEndsAt: at(-30 * day)},
			wantCanUse:    true,
			wantActiveSub: true,
			wantLimits:    Limits{MaxClients: -1, MaxProjects: -1, MaxStorageGB: 10},
		},
		{
			name:       "active with lapsed period",
			profile:    profile.Profile{SubscriptionStatus: profile.StatusActive, SubscriptionPlan: profile.PlanPro, SubscriptionCurrentPeriodEnd: at(-time.Hour)},
			wantLimits: ProLimits,
		},
		{
			name:          "active with future period end",
			profile:       profile.Profile{SubscriptionStatus: profile.StatusActive, SubscriptionCurrentPeriodEnd: at(day)},
			wantCanUse:    true,
			wantActiveSub: true,
			wantLimits:    FreeLimits,
		},
		{
			name:        "expired status",
			profile:     profile.Profile{SubscriptionStatus: profile.StatusExpired, TrialEndsAt: at(3 * day)},
			wantDays:    3,
			wantExpired: true,
			wantLimits:  FreeLimits,
		},
		{
			name:       "cancelled is blocked but not expired",
			profile:    profile.Profile{SubscriptionStatus: profile.StatusCancelled, TrialEndsAt: at(3 * day)},
			wantDays:   3,
			wantLimits: FreeLimits,
		},
		{
			name:        "missing status and plan default to free trial",
			profile:     profile.Profile{TrialEndsAt: at(day)},
			wantDays:    1,
			wantCanUse:  true,
			wantLimits:  FreeLimits,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ComputeTrialInfo(&tt.profile, now)
			assert.Equal(t, tt.wantDays, info.DaysRemaining, "days remaining")
			assert.Equal(t, tt.wantExpired, info.IsExpired, "expired")
			assert.Equal(t, tt.wantCanUse, info.CanUseFeatures, "can use features")
			assert.Equal(t, tt.wantActiveSub, info.HasActiveSubscription, "active subscription")
			assert.Equal(t, tt.wantLimits, info.Limits)
		})
	}
}

func TestComputeTrialInfo_ExpiredTrialsReportZeroDays(t *testing.T) {
	for hours := 0; hours <= 24*60; hours += 7 {
		p := profile.Profile{SubscriptionStatus: profile.StatusTrial, TrialEndsAt: at(-time.Duration(hours) * time.Hour)}
		info := ComputeTrialInfo(&p, now)
		assert.True(t, info.IsExpired, "ended %dh ago", hours)
		assert.Zero(t, info.DaysRemaining, "ended %dh ago", hours)
	}
}

func TestComputeTrialInfo_DaysNeverNegative(t *testing.T) {
	statuses := []profile.Status{
		profile.StatusTrial, profile.StatusActive, profile.StatusCancelled,
		profile.StatusExpired, profile.StatusPastDue, profile.StatusUnpaid,
	}
	for _, status := range statuses {
		for offset := -400; offset <= 400; offset += 13 {
			p := profile.Profile{SubscriptionStatus: status, TrialEndsAt: at(time.Duration(offset) * time.Hour)}
			info := ComputeTrialInfo(&p, now)
			assert.GreaterOrEqual(t, info.DaysRemaining, 0)
		}
	}
}

func TestComputeTrialInfo_ActiveWithoutPeriodEndCanAlwaysUse(t *testing.T) {
	for _, ends := range []*time.Time{nil, at(-365 * day), at(-time.Second), at(day)} {
		p := profile.Profile{SubscriptionStatus: profile.StatusActive, TrialEndsAt: ends}
		assert.True(t, ComputeTrialInfo(&p, now).CanUseFeatures)
	}
}

func TestEntitlementStates(t *testing.T) {
	loading := Loading()
	assert.False(t, loading.Known())
	assert.True(t, loading.CanUseFeatures(), "loading is optimistic")
	assert.False(t, loading.HasReachedLimit(FeatureClients))

	pro := profile.Profile{SubscriptionStatus: profile.StatusActive, SubscriptionPlan: profile.PlanPro}
	allowed := Resolve(ComputeTrialInfo(&pro, now))
	assert.Equal(t, StateAllowed, allowed.State)
	assert.True(t, allowed.Known())
	for _, f := range Features {
		assert.False(t, allowed.HasReachedLimit(f), f)
	}

	ended := profile.Profile{SubscriptionStatus: profile.StatusTrial, TrialEndsAt: at(-day)}
	blocked := Resolve(ComputeTrialInfo(&ended, now))
	assert.Equal(t, StateBlocked, blocked.State)
	assert.False(t, blocked.CanUseFeatures())
	assert.True(t, blocked.HasReachedLimit(FeatureProjects))
}

func TestFeatureValid(t *testing.T) {
	assert.True(t, FeatureInvoices.Valid())
	assert.False(t, Feature("teleport").Valid())
}
