package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "news-events-api/internal/errors"
	"news-events-api/internal/model"
	"news-events-api/internal/testutil"
)

func TestAdminRepository_CreateAndFind(t *testing.T) {
	repo := NewAdminRepository(testutil.DB(t))
	ctx := context.Background()

	admin := &model.Admin{Email: "admin@example.com", Password: "hashed", Name: "Site Admin"}
	require.NoError(t, repo.Create(ctx, admin))
	assert.NotZero(t, admin.ID)
	assert.False(t, admin.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", byID.Email)
	assert.Equal(t, "Site Admin", byID.Name)

	byEmail, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byEmail.ID)
}

func TestAdminRepository_DuplicateEmail(t *testing.T) {
	repo := NewAdminRepository(testutil.DB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Admin{Email: "dup@example.com", Password: "h", Name: "First"}))

	err := repo.Create(ctx, &model.Admin{Email: "dup@example.com", Password: "h", Name: "Second"})
	require.Error(t, err)
	assert.Equal(t, errs.KindDuplicateKey, errs.KindOf(err))
	assert.Equal(t, "Admin with this email already exists", errs.MessageOf(err))
}

func TestAdminRepository_FindMissing(t *testing.T) {
	repo := NewAdminRepository(testutil.DB(t))
	ctx := context.Background()

	_, err := repo.FindByID(ctx, 999)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestAdminRepository_ListNewestFirst(t *testing.T) {
	repo := NewAdminRepository(testutil.DB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Admin{Email: "first@example.com", Password: "h", Name: "First"}))
	require.NoError(t, repo.Create(ctx, &model.Admin{Email: "second@example.com", Password: "h", Name: "Second"}))

	admins, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "second@example.com", admins[0].Email)
	assert.Equal(t, "first@example.com", admins[1].Email)
}

func TestAdminRepository_Update(t *testing.T) {
	repo := NewAdminRepository(testutil.DB(t))
	ctx := context.Background()

	admin := &model.Admin{Email: "admin@example.com", Password: "old-hash", Name: "Old Name"}
	require.NoError(t, repo.Create(ctx, admin))

	admin.Name = "New Name"
	admin.Password = "new-hash"
	require.NoError(t, repo.Update(ctx, admin))

	got, err := repo.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, "new-hash", got.Password)
}
