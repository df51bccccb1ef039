package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agrichain/agrichain/i18n"
	"github.com/agrichain/agrichain/repository"
	"github.com/agrichain/agrichain/session"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *repository.Repository {
	t.Helper()
	repo := repository.NewRepository(cmtlog.NewNopLogger())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	require.NoError(t, repo.ConnectDB(context.Background(), "sqlite", dsn))
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.Migrate())
	require.NoError(t, repo.Seed())
	return repo
}

func newTestRouter(t *testing.T) (*Router, *Admin, *Workspaces) {
	t.Helper()
	translator, err := i18n.NewTranslator("en")
	require.NoError(t, err)
	admin := NewAdmin(newTestRepository(t))
	workspaces := NewWorkspaces(16, time.Hour, cmtlog.NewNopLogger())
	return NewRouter(workspaces, admin, translator), admin, workspaces
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	router, _, _ := newTestRouter(t)

	titles := map[session.Role]string{
		session.RoleFarmer:      "Farmer Dashboard",
		session.RoleDistributor: "Distributor Dashboard",
		session.RoleRetailer:    "Retailer Dashboard",
		session.RoleConsumer:    "Consumer Dashboard",
		session.RoleAdmin:       "Admin Dashboard",
	}

	t.Run("should give every role its own dashboard", func(t *testing.T) {
		for _, role := range session.Roles() {
			view, err := router.Render(ctx, &session.Session{ID: "s-" + string(role), Role: role}, "en")
			require.NoError(t, err)
			assert.Equal(t, string(role), view.Role)
			assert.Equal(t, titles[role], view.Title)
			assert.Len(t, view.Stats, 4)
		}
	})

	t.Run("should show the invalid role view for unknown roles", func(t *testing.T) {
		for _, sess := range []*session.Session{nil, {ID: "x", Role: "auditor"}, {ID: "y"}} {
			view, err := router.Render(ctx, sess, "en")
			require.NoError(t, err)
			assert.Equal(t, "Invalid Role", view.Title)
			assert.Equal(t, "Please contact an administrator to assign you a proper role.", view.Message)
		}
	})

	t.Run("should translate labels", func(t *testing.T) {
		view, err := router.Render(ctx, &session.Session{ID: "hi", Role: session.RoleFarmer}, "hi")
		require.NoError(t, err)
		assert.Equal(t, "किसान डैशबोर्ड", view.Title)
		assert.Equal(t, "कुल उत्पाद", view.Stats[0].Label)
	})

	t.Run("should keep workspaces apart", func(t *testing.T) {
		first := router.workspaces.Get("first")
		_, err := first.Retailer.DecrementStock(2)
		require.NoError(t, err)

		other, err := router.workspaces.Get("second").Retailer.Product(2)
		require.NoError(t, err)
		assert.Equal(t, 5, other.Stock)
	})
}

func TestAdmin(t *testing.T) {
	ctx := context.Background()
	_, admin, _ := newTestRouter(t)

	pending, err := admin.PendingUsers(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	t.Run("should remove exactly the approved user", func(t *testing.T) {
		require.NoError(t, admin.Approve(ctx, pending[0].ID))

		left, err := admin.PendingUsers(ctx)
		require.NoError(t, err)
		require.Len(t, left, 1)
		assert.Equal(t, pending[1].ID, left[0].ID)
	})

	t.Run("should report an unknown user", func(t *testing.T) {
		assert.ErrorIs(t, admin.Reject(ctx, pending[0].ID), ErrNotFound)
	})

	t.Run("should remove exactly the rejected user", func(t *testing.T) {
		require.NoError(t, admin.Reject(ctx, pending[1].ID))
		left, err := admin.PendingUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, left)
	})

	t.Run("should expose analytics", func(t *testing.T) {
		view, err := admin.view(ctx, identity)
		require.NoError(t, err)
		analytics := view.Data.(map[string]any)["analytics"].(Analytics)
		assert.Equal(t, 1250, analytics.TotalProducts)
		assert.EqualValues(t, 2, analytics.TransactionsToday)
		assert.Equal(t, 0, analytics.PendingUsers)
	})
}

func TestWorkspaces(t *testing.T) {
	t.Run("should hand back the same workspace", func(t *testing.T) {
		w := NewWorkspaces(4, time.Hour, cmtlog.NewNopLogger())
		assert.Same(t, w.Get("a"), w.Get("a"))
		assert.NotSame(t, w.Get("a"), w.Get("b"))
		assert.Equal(t, 2, w.Len())
	})

	t.Run("should evict the least recently used", func(t *testing.T) {
		w := NewWorkspaces(1, time.Hour, cmtlog.NewNopLogger())
		a := w.Get("a")
		w.Get("b")
		assert.NotSame(t, a, w.Get("a"))
	})

	t.Run("should expire idle workspaces", func(t *testing.T) {
		w := NewWorkspaces(4, 20*time.Millisecond, cmtlog.NewNopLogger())
		a := w.Get("a")
		time.Sleep(100 * time.Millisecond)
		assert.NotSame(t, a, w.Get("a"))
	})

	t.Run("should keep a workspace alive while it is in use", func(t *testing.T) {
		w := NewWorkspaces(4, 150*time.Millisecond, cmtlog.NewNopLogger())
		a := w.Get("a")
		for range 10 {
			time.Sleep(40 * time.Millisecond)
			require.Same(t, a, w.Get("a"))
		}
	})

	t.Run("should drop the workspace on logout", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sessions := session.NewService(session.NewMemoryStore(), cmtlog.NewNopLogger())
		events, unsubscribe := sessions.Subscribe()
		defer unsubscribe()

		w := NewWorkspaces(4, time.Hour, cmtlog.NewNopLogger())
		go w.Follow(ctx, events)

		sess, err := sessions.Login(ctx, nil, "farmer", "0xabc")
		require.NoError(t, err)
		w.Get(sess.ID)
		require.Equal(t, 1, w.Len())

		require.NoError(t, sessions.Logout(ctx, sess.ID))
		assert.Eventually(t, func() bool { return w.Len() == 0 }, time.Second, 10*time.Millisecond)
	})
}
