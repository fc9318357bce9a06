package services

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
	"github.com/pratik-mahalle/freelancehub/internal/domain/profile"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/metrics"
)

// EntitlementService implements entitlement.Service
type EntitlementService struct {
	profiles      profile.Repository
	auth          gateway.AuthProvider
	logger        *logger.Logger
	now           func() time.Time
	trialLength   time.Duration
	emailLookup   bool
	lookupTimeout time.Duration

	// collapses concurrent first-time checks so one process creates one profile
	inflight singleflight.Group
}

// EntitlementOption configures an EntitlementService
type EntitlementOption func(*EntitlementService)

// WithClock sets the time source
func WithClock(now func() time.Time) EntitlementOption {
	return func(s *EntitlementService) { s.now = now }
}

// WithTrialLength sets the length of lazily created trials
func WithTrialLength(d time.Duration) EntitlementOption {
	return func(s *EntitlementService) {
		if d > 0 {
			s.trialLength = d
		}
	}
}

// WithEmailLookup toggles the lookup of profiles by email before user id
func WithEmailLookup(enabled bool) EntitlementOption {
	return func(s *EntitlementService) { s.emailLookup = enabled }
}

// WithLookupTimeout bounds a single profile lookup
func WithLookupTimeout(d time.Duration) EntitlementOption {
	return func(s *EntitlementService) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(profiles profile.Repository, auth gateway.AuthProvider, log *logger.Logger, opts ...EntitlementOption) entitlement.Service {
	s := &EntitlementService{
		profiles:      profiles,
		auth:          auth,
		logger:        log,
		now:           time.Now,
		trialLength:   profile.DefaultTrialLength,
		emailLookup:   true,
		lookupTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetTrialInfo returns the entitlement of a user. A missing profile is
// created with the default trial; only store failures are errors.
func (s *EntitlementService) GetTrialInfo(ctx context.Context, userID, email string) (*entitlement.TrialInfo, error) {
	if userID == "" {
		return nil, errors.Unauthenticated("Sign in to check your subscription")
	}

	// the shared lookup outlives any single caller; each caller waits on its own ctx
	ch := s.inflight.DoChan(userID+"\x00"+email, func() (interface{}, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.lookupTimeout)
		defer cancel()
		return s.loadProfile(flightCtx, userID, email)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		metrics.RecordEntitlementCheck("error")
		return nil, res.Err
	}

	info := entitlement.ComputeTrialInfo(res.Val.(*profile.Profile), s.now())
	if info.CanUseFeatures {
		metrics.RecordEntitlementCheck("allowed")
	} else {
		metrics.RecordEntitlementCheck("blocked")
	}
	return &info, nil
}

// loadProfile reads by email, then by id, then creates. The steps stay sequential.
func (s *EntitlementService) loadProfile(ctx context.Context, userID, email string) (*profile.Profile, error) {
	log := s.logger.With("user_id", userID)

	if s.emailLookup && email != "" {
		p, err := s.profiles.GetByEmail(ctx, email)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, errors.ErrCodeNotFound) {
			log.WarnWithErr(err, "Profile lookup by email failed, falling back to user id")
		}
	}

	p, err := s.profiles.GetByID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		log.ErrorWithErr(err, "Failed to load profile")
		return nil, errors.EntitlementStoreError(err)
	}

	p = profile.NewTrial(userID, email, s.now(), s.trialLength)
	if err := s.profiles.Create(ctx, p); err != nil {
		log.ErrorWithErr(err, "Failed to create trial profile")
		return nil, errors.EntitlementStoreError(err)
	}

	metrics.RecordProfileCreated()
	log.WithFields(map[string]interface{}{
		"trial_ends_at": p.TrialEndsAt,
	}).Info("Trial profile created")

	return p, nil
}

// CurrentTrialInfo resolves the session user and returns their entitlement
func (s *EntitlementService) CurrentTrialInfo(ctx context.Context) (*entitlement.TrialInfo, error) {
	user, err := s.auth.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.Unauthenticated("Sign in to check your subscription")
	}
	return s.GetTrialInfo(ctx, user.ID, user.Email)
}

// Resolve returns the loaded entitlement of a user
func (s *EntitlementService) Resolve(ctx context.Context, userID, email string) (entitlement.Entitlement, error) {
	info, err := s.GetTrialInfo(ctx, userID, email)
	if err != nil {
		return entitlement.Loading(), err
	}
	return entitlement.Resolve(*info), nil
}

// Require fails with PLAN_LIMIT_REACHED when feature is blocked for the user.
// An unknown entitlement is an error, never an unlock.
func (s *EntitlementService) Require(ctx context.Context, userID, email string, feature entitlement.Feature) error {
	ent, err := s.Resolve(ctx, userID, email)
	if err != nil {
		return err
	}
	if ent.HasReachedLimit(feature) {
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
			"feature": feature,
		}).Info("Feature blocked by plan")
		return errors.PlanLimitReached(string(feature))
	}
	return nil
}
