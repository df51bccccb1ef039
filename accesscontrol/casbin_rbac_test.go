package accesscontrol

import (
	"net/http"
	"testing"

	"github.com/agrichain/agrichain/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanAct(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	t.Run("should allow every role on its own dashboard", func(t *testing.T) {
		for _, role := range session.Roles() {
			for _, method := range []string{http.MethodGet, http.MethodPost} {
				ok, err := e.CanAct(role, role, method)
				require.NoError(t, err)
				assert.True(t, ok, "%s %s", role, method)
			}
		}
	})

	t.Run("should deny cross-role actions", func(t *testing.T) {
		for _, role := range session.Roles() {
			for _, owner := range session.Roles() {
				if role == owner {
					continue
				}
				ok, err := e.CanAct(role, owner, http.MethodPost)
				require.NoError(t, err)
				assert.False(t, ok, "%s on %s", role, owner)
			}
		}
	})

	t.Run("should deny unknown roles", func(t *testing.T) {
		ok, err := e.CanAct(session.Role("auditor"), session.RoleFarmer, http.MethodGet)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should follow granted roles", func(t *testing.T) {
		e, err := NewEnforcer()
		require.NoError(t, err)
		require.NoError(t, e.GrantRole(session.RoleAdmin, session.RoleDistributor))

		ok, err := e.CanAct(session.RoleAdmin, session.RoleDistributor, http.MethodPost)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = e.CanAct(session.RoleAdmin, session.RoleFarmer, http.MethodPost)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
