package services

import (
	"context"
	"fmt"

	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
	"github.com/pratik-mahalle/freelancehub/internal/domain/project"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

// ProjectService implements project.Service
type ProjectService struct {
	repo         project.Repository
	entitlements entitlement.Service
	logger       *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo project.Repository, entitlements entitlement.Service, log *logger.Logger) project.Service {
	return &ProjectService{
		repo:         repo,
		entitlements: entitlements,
		logger:       log,
	}
}

// Create creates a project once the plan allows it
func (s *ProjectService) Create(ctx context.Context, userID, email string, p *project.Project) (*project.Project, error) {
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := s.entitlements.Require(ctx, userID, email, entitlement.FeatureProjects); err != nil {
		return nil, err
	}

	p.UserID = userID
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create project")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"project_id": p.ID,
		"user_id":    userID,
		"status":     p.Status,
	}).Info("Project created")

	return p, nil
}

// Get retrieves a project
func (s *ProjectService) Get(ctx context.Context, userID, id string) (*project.Project, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List lists a user's projects
func (s *ProjectService) List(ctx context.Context, userID string, filter project.Filter) ([]*project.Project, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update updates a project
func (s *ProjectService) Update(ctx context.Context, p *project.Project) (*project.Project, error) {
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete deletes a project
func (s *ProjectService) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}

func validateProject(p *project.Project) error {
	if p.Status != "" && !p.Status.Valid() {
		return errors.BadRequest(fmt.Sprintf("unknown project status %q", p.Status))
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return errors.BadRequest("end_date must not be before start_date")
	}
	if p.Budget.IsNegative() {
		return errors.BadRequest("budget must not be negative")
	}
	return nil
}
