package repository

import (
	"context"

	"github.com/pratik-mahalle/freelancehub/internal/domain/client"
	"github.com/pratik-mahalle/freelancehub/internal/gateway"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
)

// ClientRepository implements client.Repository
type ClientRepository struct {
	store gateway.DataStore
}

// NewClientRepository creates a new client repository
func NewClientRepository(store gateway.DataStore) client.Repository {
	return &ClientRepository{store: store}
}

// Create creates a new client
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	now := nowUTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	values := clientValues(c)
	values["user_id"] = c.UserID
	values["created_at"] = now
	if c.ID != "" {
		values["id"] = c.ID
	}

	row, err := r.store.Insert(ctx, tableClients, values)
	if err != nil {
		return err
	}
	*c = *clientFromRow(row)
	return nil
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, userID, id string) (*client.Client, error) {
	row, err := gateway.First(ctx, r.store, gateway.From(tableClients).Eq("user_id", userID).Eq("id", id))
	if err != nil {
		return nil, lookupError(err, "Client")
	}
	return clientFromRow(row), nil
}

// List retrieves a user's clients by name
func (r *ClientRepository) List(ctx context.Context, userID string, filter client.Filter) ([]*client.Client, error) {
	rows, err := r.store.Select(ctx, gateway.From(tableClients).
		Eq("user_id", userID).
		OrderBy("name", false).
		Limit(orDefault(filter.Limit, 500)))
	if err != nil {
		return nil, err
	}
	out := make([]*client.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, clientFromRow(row))
	}
	return out, nil
}

// Update updates a client
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	c.UpdatedAt = nowUTC()
	rows, err := r.store.Update(ctx, tableClients, clientValues(c),
		gateway.Eq("id", c.ID), gateway.Eq("user_id", c.UserID))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.NotFound("Client")
	}
	*c = *clientFromRow(rows[0])
	return nil
}

// Delete deletes a client
func (r *ClientRepository) Delete(ctx context.Context, userID, id string) error {
	n, err := r.store.Delete(ctx, tableClients, gateway.Eq("id", id), gateway.Eq("user_id", userID))
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NotFound("Client")
	}
	return nil
}

func clientValues(c *client.Client) gateway.Row {
	return gateway.Row{
		"name":       c.Name,
		"email":      nullString(c.Email),
		"company":    nullString(c.Company),
		"phone":      nullString(c.Phone),
		"notes":      nullString(c.Notes),
		"updated_at": c.UpdatedAt,
	}
}

func clientFromRow(row gateway.Row) *client.Client {
	return &client.Client{
		ID:        row.String("id"),
		UserID:    row.String("user_id"),
		Name:      row.String("name"),
		Email:     row.String("email"),
		Company:   row.String("company"),
		Phone:     row.String("phone"),
		Notes:     row.String("notes"),
		CreatedAt: row.TimeOr("created_at", nowUTC()),
		UpdatedAt: row.TimeOr("updated_at", nowUTC()),
	}
}
