package client

import (
	"fmt"
	"net/http"
	"time"
)

// Workflow steps, in the order they run
const (
	StepLogin     = "Login"
	StepDashboard = "Dashboard"
	StepScan      = "Simulate Scan"
	StepLogout    = "Logout"
	StepComplete  = "Complete Workflow"
)

// StepResult is the latency of one workflow step
type StepResult struct {
	Step    string
	Latency time.Duration
}

// Workflow logs in as Role, opens the dashboard, records a simulated scan and logs out
type Workflow struct {
	Role          string
	WalletAddress string
	// Pause between steps
	Pause time.Duration
}

type loginResponse struct {
	Session struct {
		ID string `json:"id"`
	} `json:"session"`
}

// Run executes the workflow on c. On failure it returns the steps that
// completed along with the error.
func (w Workflow) Run(c *HTTPClient) ([]StepResult, error) {
	var results []StepResult
	totalStart := time.Now()

	step := func(name string, call func() error) error {
		start := time.Now()
		if err := call(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		results = append(results, StepResult{name, time.Since(start)})
		if w.Pause > 0 {
			time.Sleep(w.Pause)
		}
		return nil
	}

	// 1. Login
	err := step(StepLogin, func() error {
		resp, err := c.POST("/auth/login", map[string]interface{}{
			"role":          w.Role,
			"walletAddress": w.WalletAddress,
			"user":          map[string]interface{}{"name": "Benchmark " + w.Role},
		})
		if err != nil {
			return err
		}
		var login loginResponse
		if err := UnmarshalBody(resp, &login); err != nil {
			return err
		}
		if login.Session.ID == "" {
			return fmt.Errorf("no session id in login response")
		}
		c.SetSession(login.Session.ID)
		return nil
	})
	if err != nil {
		return results, err
	}
	defer c.SetSession("")

	// 2. Dashboard
	if err := step(StepDashboard, expectOK(c.GET, "/dashboard")); err != nil {
		return results, err
	}

	// 3. Simulated scan
	post := func(endpoint string) (*http.Response, error) { return c.POST(endpoint, nil) }
	if err := step(StepScan, expectOK(post, "/scanner/simulate")); err != nil {
		return results, err
	}

	// 4. Logout
	if err := step(StepLogout, expectOK(post, "/auth/logout")); err != nil {
		return results, err
	}

	results = append(results, StepResult{StepComplete, time.Since(totalStart)})
	return results, nil
}

func expectOK(send func(string) (*http.Response, error), endpoint string) func() error {
	return func() error {
		resp, err := send(endpoint)
		if err != nil {
			return err
		}
		return UnmarshalBody(resp, nil)
	}
}
