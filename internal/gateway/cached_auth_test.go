package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pratik-mahalle/freelancehub/internal/cache"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
)

type mockAuthProvider struct {
	mock.Mock
}

func (m *mockAuthProvider) CurrentUser(ctx context.Context) (*User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*User)
	return user, args.Error(1)
}

func (m *mockAuthProvider) SignOut(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func setupTestCache(t *testing.T) *cache.Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c, err := cache.Connect(context.Background(), cache.Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCachedAuthProvider_HitsWrappedProviderOnce(t *testing.T) {
	next := new(mockAuthProvider)
	next.On("CurrentUser", mock.Anything).Return(&User{ID: "u1", Email: "a@example.com"}, nil).Once()

	p := NewCachedAuthProvider(next, setupTestCache(t), time.Minute, logger.Nop())
	ctx := WithAccessToken(context.Background(), "tok")

	for i := 0; i < 3; i++ {
		user, err := p.CurrentUser(ctx)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "u1", user.ID)
	}
	next.AssertExpectations(t)
}

func TestCachedAuthProvider_SignOutInvalidates(t *testing.T) {
	next := new(mockAuthProvider)
	next.On("CurrentUser", mock.Anything).Return(&User{ID: "u1"}, nil).Twice()
	next.On("SignOut", mock.Anything).Return(nil).Once()

	p := NewCachedAuthProvider(next, setupTestCache(t), time.Minute, logger.Nop())
	ctx := WithAccessToken(context.Background(), "tok")

	_, err := p.CurrentUser(ctx)
	require.NoError(t, err)
	require.NoError(t, p.SignOut(ctx))
	_, err = p.CurrentUser(ctx)
	require.NoError(t, err)

	next.AssertExpectations(t)
}

func TestCachedAuthProvider_NoSessionNotCached(t *testing.T) {
	next := new(mockAuthProvider)
	next.On("CurrentUser", mock.Anything).Return(nil, nil).Twice()

	p := NewCachedAuthProvider(next, setupTestCache(t), time.Minute, logger.Nop())
	ctx := WithAccessToken(context.Background(), "expired")

	for i := 0; i < 2; i++ {
		user, err := p.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
	}
	next.AssertExpectations(t)
}

func TestJWTAuthProvider(t *testing.T) {
	p := NewJWTAuthProvider("secret", logger.Nop())

	user, err := p.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = p.CurrentUser(WithAccessToken(context.Background(), "garbage"))
	require.NoError(t, err)
	assert.Nil(t, user)
}
