package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	adapters "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/adapters/services"
	domain "github.com/Jay-TheFullStackEngineer/Medici-User-Hub/internal/userhub/domain/services"
)

func TestHashAndVerify(t *testing.T) {
	passwordSvc := adapters.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	hash, err := passwordSvc.Hash(ctx, "password123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "password123", hash)

	ok, err := passwordSvc.Verify(ctx, "password123", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMismatch(t *testing.T) {
	passwordSvc := adapters.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	hash, err := passwordSvc.Hash(ctx, "password123")
	require.NoError(t, err)

	ok, err := passwordSvc.Verify(ctx, "wrongpassword", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyMalformedHash(t *testing.T) {
	passwordSvc := adapters.NewBcrypt(bcrypt.MinCost)

	ok, err := passwordSvc.Verify(context.Background(), "password123", "not-a-bcrypt-hash")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyEmptyInputs(t *testing.T) {
	passwordSvc := adapters.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	ok, err := passwordSvc.Verify(ctx, "", "some-hash")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = passwordSvc.Verify(ctx, "password123", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashEmptyPassword(t *testing.T) {
	passwordSvc := adapters.NewBcrypt(bcrypt.MinCost)

	_, err := passwordSvc.Hash(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPassword)
}

func TestHashesAreSalted(t *testing.T) {
	passwordSvc := adapters.NewBcrypt(bcrypt.MinCost)
	ctx := context.Background()

	first, err := passwordSvc.Hash(ctx, "password123")
	require.NoError(t, err)
	second, err := passwordSvc.Hash(ctx, "password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
