// Package gateway is the data and auth boundary of the service. Engines and
// repositories talk to a DataStore and an AuthProvider; the concrete backend is
// either the hosted REST API or a local SQL database.
package gateway

import (
	"context"
	"errors"
)

// ErrNotFound is returned by First when no row matches
var ErrNotFound = errors.New("gateway: no rows")

// User is an authenticated identity
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// DataStore is the generic table interface
type DataStore interface {
	Select(ctx context.Context, q Query) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, values Row, filters ...Filter) ([]Row, error)
	Delete(ctx context.Context, table string, filters ...Filter) (int, error)
}

// AuthProvider resolves the session carried by the context.
// CurrentUser returns nil, nil when there is no session.
type AuthProvider interface {
	CurrentUser(ctx context.Context) (*User, error)
	SignOut(ctx context.Context) error
}

// Pinger is implemented by backends that can report readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

type tokenKey struct{}

// WithAccessToken returns a context carrying the caller's bearer token
func WithAccessToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// AccessToken returns the bearer token carried by ctx, or ""
func AccessToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// First runs q with a limit of one and returns the row, or ErrNotFound
func First(ctx context.Context, store DataStore, q Query) (Row, error) {
	rows, err := store.Select(ctx, q.Limit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}
