package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agrichain/agrichain/accesscontrol"
	"github.com/agrichain/agrichain/dashboard"
	"github.com/agrichain/agrichain/i18n"
	"github.com/agrichain/agrichain/qr"
	"github.com/agrichain/agrichain/repository"
	"github.com/agrichain/agrichain/session"
	"github.com/agrichain/agrichain/srvreg"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *WebServer {
	t.Helper()
	logger := cmtlog.NewNopLogger()

	repo := repository.NewRepository(logger)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	require.NoError(t, repo.ConnectDB(context.Background(), "sqlite", dsn))
	t.Cleanup(func() { repo.Close() })
	require.NoError(t, repo.Migrate())
	require.NoError(t, repo.Seed())

	translator, err := i18n.NewTranslator("en")
	require.NoError(t, err)
	access, err := accesscontrol.NewEnforcer()
	require.NoError(t, err)

	sessions := session.NewService(session.NewMemoryStore(), logger)
	workspaces := dashboard.NewWorkspaces(64, time.Hour, logger)
	admin := dashboard.NewAdmin(repo)

	registry := srvreg.NewServiceRegistry(srvreg.Services{
		Sessions:   sessions,
		Workspaces: workspaces,
		Router:     dashboard.NewRouter(workspaces, admin, translator),
		Admin:      admin,
		Repository: repo,
		Generator:  qr.NewGenerator(),
		Translator: translator,
		Access:     access,
	}, logger)
	registry.RegisterDefaultServices()

	return NewWebServer("0", logger, registry, sessions, translator)
}

func do(ws *WebServer, r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rec, r)
	return rec
}

func loginAs(t *testing.T, ws *WebServer, role string) (string, *http.Cookie) {
	t.Helper()
	body := fmt.Sprintf(`{"role":%q,"walletAddress":"0x9f2c","user":{"name":"Asha"}}`, role)
	rec := do(ws, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out struct {
		Session struct {
			ID string `json:"id"`
		} `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotEmpty(t, out.Session.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return out.Session.ID, cookies[0]
}

func TestRootAndMetrics(t *testing.T) {
	ws := newTestServer(t)

	t.Run("should serve the info page", func(t *testing.T) {
		rec := do(ws, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "AgriChain")
	})

	t.Run("should reject other methods on the info page", func(t *testing.T) {
		rec := do(ws, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})

	t.Run("should expose prometheus metrics", func(t *testing.T) {
		do(ws, httptest.NewRequest(http.MethodGet, "/health", nil))
		rec := do(ws, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "agrichain_http_request_duration_seconds")
	})
}

func TestSessionFlow(t *testing.T) {
	ws := newTestServer(t)

	t.Run("should render the dashboard of every role", func(t *testing.T) {
		for _, role := range session.Roles() {
			id, _ := loginAs(t, ws, string(role))

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req.Header.Set(srvreg.SessionHeader, id)
			rec := do(ws, req)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var view dashboard.View
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
			assert.Equal(t, string(role), view.Role)
		}
	})

	t.Run("should accept the session cookie", func(t *testing.T) {
		_, cookie := loginAs(t, ws, "farmer")

		req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
		req.AddCookie(cookie)
		rec := do(ws, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should reject a session after logout", func(t *testing.T) {
		id, _ := loginAs(t, ws, "retailer")

		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.Header.Set(srvreg.SessionHeader, id)
		require.Equal(t, http.StatusOK, do(ws, req).Code)

		req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set(srvreg.SessionHeader, id)
		rec := do(ws, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "/unauthorized")
	})

	t.Run("should treat an unknown id as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.Header.Set(srvreg.SessionHeader, "no-such-session")
		assert.Equal(t, http.StatusUnauthorized, do(ws, req).Code)
	})

	t.Run("should forbid cross-role actions", func(t *testing.T) {
		id, _ := loginAs(t, ws, "consumer")

		req := httptest.NewRequest(http.MethodPost, "/dashboard/admin/users/1/approve", nil)
		req.Header.Set(srvreg.SessionHeader, id)
		assert.Equal(t, http.StatusForbidden, do(ws, req).Code)
	})
}

func TestLabelAndLanguage(t *testing.T) {
	ws := newTestServer(t)

	t.Run("should stream a png label", func(t *testing.T) {
		id, _ := loginAs(t, ws, "retailer")

		req := httptest.NewRequest(http.MethodGet, "/dashboard/retailer/products/1/label?size=150", nil)
		req.Header.Set(srvreg.SessionHeader, id)
		rec := do(ws, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
	})

	t.Run("should negotiate the language", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/languages", nil)
		req.Header.Set("Accept-Language", "hi-IN,hi;q=0.9,en;q=0.5")
		rec := do(ws, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hi", rec.Header().Get("Content-Language"))

		req = httptest.NewRequest(http.MethodGet, "/languages?lang=ta", nil)
		req.Header.Set("Accept-Language", "hi")
		rec = do(ws, req)
		assert.Equal(t, "ta", rec.Header().Get("Content-Language"))
	})

	t.Run("should answer unknown paths with json", func(t *testing.T) {
		rec := do(ws, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	})
}
