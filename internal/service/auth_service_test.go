package service_test

import (
	"context"
	"testing"

	"github.com/unstopDD/sklad-sub000/internal/config"
	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/model"
	"github.com/unstopDD/sklad-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authConfig() *config.Config {
	return &config.Config{
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	repo := newStubProfileRepo()
	svc := service.NewAuthService(repo, authConfig())
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{
		Email:    "baker@example.com",
		Name:     "Baker",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.AccessToken)
	assert.Equal(t, model.PlanFree, registered.Profile.Plan, "new accounts start on the free plan")

	logged, err := svc.Login(ctx, dto.LoginRequest{
		Email:    "baker@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.Profile.ID, logged.Profile.ID)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email:    "baker@example.com",
		Password: "wrong",
	})
	assert.Error(t, err)

	_, err = svc.Login(ctx, dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "hunter2hunter2",
	})
	assert.Error(t, err)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubProfileRepo()
	svc := service.NewAuthService(repo, authConfig())
	ctx := context.Background()

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Email: "baker@example.com", Name: "Baker", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, dto.RegisterRequest{
		Email: "baker@example.com", Name: "Impostor", Password: "otherpassword",
	})
	assert.Error(t, err)
}

func TestRefreshIssuesNewTokens(t *testing.T) {
	repo := newStubProfileRepo()
	svc := service.NewAuthService(repo, authConfig())
	ctx := context.Background()

	registered, err := svc.Register(ctx, dto.RegisterRequest{
		Email: "baker@example.com", Name: "Baker", Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, registered.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, registered.Profile.ID, refreshed.Profile.ID)

	_, err = svc.Refresh(ctx, "not-a-token")
	assert.Error(t, err)
}
