package client

import "context"

// User is the authenticated session user
type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// GetCurrentUser retrieves the user the token belongs to
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.doRequest(ctx, "GET", "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout ends the server session and forgets the token
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, "POST", "/api/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}
