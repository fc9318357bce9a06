package dto

import (
	"time"

	"github.com/pratik-mahalle/freelancehub/internal/domain/client"
)

// ClientDTO represents a client in API responses
type ClientDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateClientRequest represents a client creation request
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Company string `json:"company,omitempty" validate:"max=200"`
	Phone   string `json:"phone,omitempty" validate:"max=50"`
	Notes   string `json:"notes,omitempty"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Company *string `json:"company,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

// ToClient builds a client from the request
func (r CreateClientRequest) ToClient() *client.Client {
	return &client.Client{
		Name:    r.Name,
		Email:   r.Email,
		Company: r.Company,
		Phone:   r.Phone,
		Notes:   r.Notes,
	}
}

// Apply copies the set fields onto c
func (r UpdateClientRequest) Apply(c *client.Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.Company != nil {
		c.Company = *r.Company
	}
	if r.Phone != nil {
		c.Phone = *r.Phone
	}
	if r.Notes != nil {
		c.Notes = *r.Notes
	}
}

// FromClient converts a client
func FromClient(c *client.Client) ClientDTO {
	return ClientDTO{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Company:   c.Company,
		Phone:     c.Phone,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// FromClients converts a list of clients
func FromClients(in []*client.Client) []ClientDTO {
	out := make([]ClientDTO, len(in))
	for i, c := range in {
		out[i] = FromClient(c)
	}
	return out
}
