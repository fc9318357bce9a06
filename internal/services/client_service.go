package services

import (
	"context"

	"github.com/pratik-mahalle/freelancehub/internal/domain/client"
	"github.com/pratik-mahalle/freelancehub/internal/domain/entitlement"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

// ClientService implements client.Service
type ClientService struct {
	repo         client.Repository
	entitlements entitlement.Service
	logger       *logger.Logger
}

// NewClientService creates a new client service
func NewClientService(repo client.Repository, entitlements entitlement.Service, log *logger.Logger) client.Service {
	return &ClientService{
		repo:         repo,
		entitlements: entitlements,
		logger:       log,
	}
}

// Create creates a client once the plan allows it
func (s *ClientService) Create(ctx context.Context, userID, email string, c *client.Client) (*client.Client, error) {
	if err := s.entitlements.Require(ctx, userID, email, entitlement.FeatureClients); err != nil {
		return nil, err
	}

	c.UserID = userID
	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create client")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"client_id": c.ID,
		"user_id":   userID,
	}).Info("Client created")

	return c, nil
}

// Get retrieves a client
func (s *ClientService) Get(ctx context.Context, userID, id string) (*client.Client, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// List lists a user's clients
func (s *ClientService) List(ctx context.Context, userID string, filter client.Filter) ([]*client.Client, error) {
	return s.repo.List(ctx, userID, filter)
}

// Update updates a client
func (s *ClientService) Update(ctx context.Context, c *client.Client) (*client.Client, error) {
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete deletes a client
func (s *ClientService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"client_id": id,
		"user_id":   userID,
	}).Info("Client deleted")

	return nil
}
