package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	store := testhelpers.SetupTestStore(t)
	auth := service.NewAuthService(store, "test-secret", time.Hour)
	ctx := context.Background()

	req := &types.RegisterRequest{
		Email:     "Cook@Example.com",
		Username:  "cook",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  "supersecret",
	}
	user, err := auth.Register(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.PasswordHash)

	_, err = auth.Register(ctx, req)
	requireKind(t, err, service.KindConflict)

	token, err := auth.Login(ctx, "cook@example.com", "supersecret")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "cook", claims.Username)
	assert.False(t, claims.IsAdmin)

	_, err = auth.Login(ctx, "cook@example.com", "wrong")
	requireKind(t, err, service.KindUnauthorized)
	_, err = auth.Login(ctx, "nobody@example.com", "supersecret")
	requireKind(t, err, service.KindUnauthorized)
}

func TestValidateTokenRejectsForeignTokens(t *testing.T) {
	store := testhelpers.SetupTestStore(t)
	auth := service.NewAuthService(store, "test-secret", time.Hour)
	user := testhelpers.CreateTestUser(t, store, "cook", false)

	other := service.NewAuthService(store, "another-secret", time.Hour)
	foreign, err := other.GenerateToken(user)
	require.NoError(t, err)
	_, err = auth.ValidateToken(foreign)
	requireKind(t, err, service.KindUnauthorized)

	expired := service.NewAuthService(store, "test-secret", time.Nanosecond)
	stale, err := expired.GenerateToken(user)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = auth.ValidateToken(stale)
	requireKind(t, err, service.KindUnauthorized)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, types.TokenClaims{UserID: user.ID}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = auth.ValidateToken(unsigned)
	requireKind(t, err, service.KindUnauthorized)
}

func TestCurrentViewerFollowsStore(t *testing.T) {
	store := testhelpers.SetupTestStore(t)
	auth := service.NewAuthService(store, "test-secret", time.Hour)
	ctx := context.Background()

	admin := testhelpers.CreateTestUser(t, store, "admin", true)
	token, err := auth.GenerateToken(admin)
	require.NoError(t, err)
	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	require.True(t, claims.IsAdmin)

	require.NoError(t, store.DB().Model(admin).Update("is_admin", false).Error)
	viewer, err := auth.CurrentViewer(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, viewer.ID)
	assert.False(t, viewer.IsAdmin)

	require.NoError(t, store.DB().Delete(admin).Error)
	_, err = auth.CurrentViewer(ctx, claims)
	assert.Equal(t, service.KindUnauthorized, service.KindOf(err))
}
