package gateway

import (
	"context"

	"github.com/pratik-mahalle/freelancehub/internal/auth"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

// JWTAuthProvider resolves sessions from HS256 access tokens signed with a
// shared secret. Tokens are stateless, so SignOut has nothing to revoke.
type JWTAuthProvider struct {
	secret string
	logger *logger.Logger
}

// NewJWTAuthProvider creates a token-verifying auth provider
func NewJWTAuthProvider(secret string, log *logger.Logger) *JWTAuthProvider {
	return &JWTAuthProvider{secret: secret, logger: log}
}

// CurrentUser implements AuthProvider
func (p *JWTAuthProvider) CurrentUser(ctx context.Context) (*User, error) {
	token := AccessToken(ctx)
	if token == "" {
		return nil, nil
	}
	claims, err := auth.ParseClaims(token, p.secret)
	if err != nil {
		p.logger.Debugf("rejected access token: %v", err)
		return nil, nil
	}
	return &User{ID: claims.UserID(), Email: claims.Email}, nil
}

// SignOut implements AuthProvider
func (p *JWTAuthProvider) SignOut(ctx context.Context) error {
	return nil
}
