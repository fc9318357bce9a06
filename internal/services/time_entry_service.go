package services

import (
	"context"

	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
	"github.com/pratik-mahalle/freelancehub/internal/domain/timeentry"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

// TimeEntryService implements timeentry.Service
type TimeEntryService struct {
	repo         timeentry.Repository
	entitlements entitlement.Service
	logger       *logger.Logger
}

// NewTimeEntryService creates a new time entry service
func NewTimeEntryService(repo timeentry.Repository, entitlements entitlement.Service, log *logger.Logger) timeentry.Service {
	return &TimeEntryService{
		repo:         repo,
		entitlements: entitlements,
		logger:       log,
	}
}

// Create records tracked time once the plan allows it
func (s *TimeEntryService) Create(ctx context.Context, userID, email string, e *timeentry.Entry) (*timeentry.Entry, error) {
	if err := validateTimeEntry(e); err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ctx, userID, email, entitlement.FeatureTimeTracking); err != nil {
		return nil, err
	}

	e.UserID = userID
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create time entry")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"time_entry_id": e.ID,
		"user_id":       userID,
		"minutes":       e.DurationMinutes,
	}).Debug("Time entry created")

	return e, nil
}

// Get retrieves a time entry
func (s *TimeEntryService) Get(ctx context.Context, userID, id string) (*timeentry.Entry, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List lists a user's time entries
func (s *TimeEntryService) List(ctx context.Context, userID string, filter timeentry.Filter) ([]*timeentry.Entry, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update updates a time entry
func (s *TimeEntryService) Update(ctx context.Context, e *timeentry.Entry) (*timeentry.Entry, error) {
	if err := validateTimeEntry(e); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete deletes a time entry
func (s *TimeEntryService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func validateTimeEntry(e *timeentry.Entry) error {
	if e.StartTime.IsZero() {
		return errors.BadRequest("start_time is required")
	}
	if e.DurationMinutes <= 0 {
		return errors.BadRequest("duration_minutes must be positive")
	}
	return nil
}
