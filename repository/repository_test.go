package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agrichain/agrichain/repository/models"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepository returns a migrated and seeded repository on a private in-memory sqlite database
func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo := NewRepository(cmtlog.NewNopLogger())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	require.NoError(t, repo.ConnectDB(context.Background(), "sqlite", dsn))
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.Migrate())
	require.NoError(t, repo.Seed())
	return repo
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	regs, repoErr := repo.ListRegistrations(ctx)
	require.Nil(t, repoErr)
	require.Len(t, regs, 2)
	assert.Equal(t, "Rahul Modi", regs[0].Name)
	assert.Equal(t, "farmer", regs[0].Role)
	assert.Equal(t, "Piyush Rajat", regs[1].Name)
	assert.Equal(t, "Fresh Distribution Co.", regs[1].Organization)

	t.Run("should not seed twice", func(t *testing.T) {
		require.NoError(t, repo.Migrate())
		require.NoError(t, repo.Seed())
		regs, repoErr := repo.ListRegistrations(ctx)
		require.Nil(t, repoErr)
		assert.Len(t, regs, 2)
	})
}

func TestDeleteRegistration(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	regs, repoErr := repo.ListRegistrations(ctx)
	require.Nil(t, repoErr)

	t.Run("should remove exactly the requested record", func(t *testing.T) {
		require.Nil(t, repo.DeleteRegistration(ctx, regs[0].ID))

		remaining, repoErr := repo.ListRegistrations(ctx)
		require.Nil(t, repoErr)
		require.Len(t, remaining, 1)
		assert.Equal(t, regs[1], remaining[0])
	})

	t.Run("should report a missing record", func(t *testing.T) {
		repoErr := repo.DeleteRegistration(ctx, regs[0].ID)
		require.NotNil(t, repoErr)
		assert.Equal(t, CodeNotFound, repoErr.Code)

		_, repoErr = repo.GetRegistration(ctx, 9999)
		require.NotNil(t, repoErr)
		assert.Equal(t, CodeNotFound, repoErr.Code)
	})
}

func TestCreateRegistration(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	reg := &models.Registration{
		Name:         "Anita Rao",
		Email:        "anita@retail.in",
		Organization: "Fresh Market Store",
		Role:         "retailer",
		RequestDate:  "2024-01-26",
	}
	require.Nil(t, repo.CreateRegistration(ctx, reg))
	assert.NotZero(t, reg.ID)
	assert.Equal(t, "pending", reg.Status)

	got, repoErr := repo.GetRegistration(ctx, reg.ID)
	require.Nil(t, repoErr)
	assert.Equal(t, "anita@retail.in", got.Email)
}

func TestActivities(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	count, repoErr := repo.CountActivities(ctx)
	require.Nil(t, repoErr)
	assert.EqualValues(t, 2, count)

	added := &models.Activity{Type: "Product Added", User: "0xabc", Product: "Organic Carrots", BatchID: "BATCH-003", Timestamp: time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)}
	require.Nil(t, repo.AppendActivity(ctx, added))
	assert.Equal(t, "Confirmed", added.Status)

	t.Run("should list newest first", func(t *testing.T) {
		activities, repoErr := repo.ListActivities(ctx, 0)
		require.Nil(t, repoErr)
		require.Len(t, activities, 3)
		assert.Equal(t, "BATCH-003", activities[0].BatchID)
		assert.Equal(t, "Product Transferred", activities[1].Type)
		assert.Equal(t, "Product Added", activities[2].Type)
	})

	t.Run("should honor the limit", func(t *testing.T) {
		activities, repoErr := repo.ListActivities(ctx, 1)
		require.Nil(t, repoErr)
		assert.Len(t, activities, 1)
	})
}

func TestConnectDB(t *testing.T) {
	repo := NewRepository(cmtlog.NewNopLogger())
	err := repo.ConnectDB(context.Background(), "mysql", "")
	assert.Error(t, err)
}

func TestRepositoryError(t *testing.T) {
	err := &RepositoryError{Code: CodeNotFound, Message: "Registration not found", Detail: "registration 7"}
	assert.Equal(t, "NOT_FOUND: Registration not found (registration 7)", err.Error())
}
