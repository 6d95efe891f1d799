package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paper-swipe/storage"
)

func TestUsers_Create(t *testing.T) {
	svc := NewUserService(storage.NewRepository(newTestDB(t)), zap.NewNop())

	u, err := svc.Create(context.Background(), " Ada ", " Ada@Example.ORG ", []string{"GANs", " gans ", "", "Diffusion"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "Ada", u.Name)
	assert.Equal(t, "ada@example.org", u.Email)
	assert.Equal(t, []string{"GANs", "Diffusion"}, []string(u.Interests))
}

func TestUsers_CreateRejectsInvalidEmail(t *testing.T) {
	svc := NewUserService(storage.NewRepository(newTestDB(t)), zap.NewNop())

	for _, email := range []string{"", "no-at-sign", "Ada <ada@example.org>", "a@"} {
		_, err := svc.Create(context.Background(), "x", email, nil)
		assert.Truef(t, errors.Is(err, ErrInvalidInput), "email %q", email)
	}
}

func TestUsers_CreateDuplicateEmail(t *testing.T) {
	svc := NewUserService(storage.NewRepository(newTestDB(t)), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Create(ctx, "a", "dup@example.org", nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "b", "DUP@example.org", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUsers_SetInterests(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(storage.NewRepository(db), zap.NewNop())
	u := createUser(t, db, "old")

	updated, err := svc.SetInterests(context.Background(), u.ID, []string{"new", "New", " other "})
	require.NoError(t, err)
	assert.Equal(t, []string{"new", "other"}, []string(updated.Interests))

	_, err = svc.SetInterests(context.Background(), "missing", []string{"x"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
