package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method, path, session string
}

func newStubServer(t *testing.T, failPath string) (*httptest.Server, *[]recorded) {
	t.Helper()
	var (
		mu    sync.Mutex
		calls []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, recorded{r.Method, r.URL.Path, r.Header.Get(SessionHeader)})
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == failPath {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error":"forbidden"}`))
			return
		}
		if r.URL.Path == "/auth/login" {
			json.NewEncoder(w).Encode(map[string]any{"session": map[string]string{"id": "sess-1"}})
			return
		}
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestWorkflow(t *testing.T) {
	t.Run("should run every step with the session header", func(t *testing.T) {
		srv, calls := newStubServer(t, "")
		c := NewHTTPClient(srv.URL)

		results, err := Workflow{Role: "farmer", WalletAddress: "0x1"}.Run(c)
		require.NoError(t, err)

		steps := make([]string, len(results))
		for i, r := range results {
			steps[i] = r.Step
		}
		assert.Equal(t, []string{StepLogin, StepDashboard, StepScan, StepLogout, StepComplete}, steps)

		require.Len(t, *calls, 4)
		assert.Equal(t, recorded{http.MethodPost, "/auth/login", ""}, (*calls)[0])
		assert.Equal(t, recorded{http.MethodGet, "/dashboard", "sess-1"}, (*calls)[1])
		assert.Equal(t, recorded{http.MethodPost, "/auth/logout", "sess-1"}, (*calls)[3])
		assert.Empty(t, c.sessionID)
	})

	t.Run("should stop at the failing step", func(t *testing.T) {
		srv, calls := newStubServer(t, "/scanner/simulate")

		results, err := Workflow{Role: "farmer", WalletAddress: "0x1"}.Run(NewHTTPClient(srv.URL))
		require.Error(t, err)
		assert.Contains(t, err.Error(), StepScan)
		assert.Contains(t, err.Error(), "HTTP 403")
		assert.Len(t, results, 2)
		assert.Len(t, *calls, 3)
	})
}
