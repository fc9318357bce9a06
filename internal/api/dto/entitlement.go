package dto

import (
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
)

// LimitsDTO represents plan quotas. -1 means unlimited.
type LimitsDTO struct {
	MaxClients   int `json:"maxClients"`
	MaxProjects  int `json:"maxProjects"`
	MaxStorageGB int `json:"maxStorageGb"`
}

// TrialInfoDTO represents the entitlement of the current user
type TrialInfoDTO struct {
	State                 string     `json:"state"`
	Status                string     `json:"status"`
	Plan                  string     `json:"plan"`
	DaysRemaining         int        `json:"daysRemaining"`
	IsExpired             bool       `json:"isExpired"`
	CanUseFeatures        bool       `json:"canUseFeatures"`
	HasActiveSubscription bool       `json:"hasActiveSubscription"`
	TrialEndsAt           *time.Time `json:"trialEndsAt,omitempty"`
	CurrentPeriodEnd      *time.Time `json:"currentPeriodEnd,omitempty"`
	Limits                LimitsDTO  `json:"limits"`
}

// LimitCheckDTO answers whether a feature is blocked
type LimitCheckDTO struct {
	Feature string `json:"feature"`
	Reached bool   `json:"reached"`
}

// FromEntitlement converts a resolved entitlement
func FromEntitlement(ent entitlement.Entitlement) TrialInfoDTO {
	out := TrialInfoDTO{State: string(ent.State)}
	if ent.Info == nil {
		return out
	}
	info := ent.Info
	out.Status = string(info.Status)
	out.Plan = string(info.Plan)
	out.DaysRemaining = info.DaysRemaining
	out.IsExpired = info.IsExpired
	out.CanUseFeatures = info.CanUseFeatures
	out.HasActiveSubscription = info.HasActiveSubscription
	out.TrialEndsAt = info.TrialEndsAt
	out.CurrentPeriodEnd = info.CurrentPeriodEnd
	out.Limits = LimitsDTO{
		MaxClients:   info.Limits.MaxClients,
		MaxProjects:  info.Limits.MaxProjects,
		MaxStorageGB: info.Limits.MaxStorageGB,
	}
	return out
}
