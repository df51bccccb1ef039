package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SessionHeader names the header the server reads the session id from
const SessionHeader = "X-Session-ID"

// HTTPClient talks to one AgriChain server, optionally as a logged in session
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	sessionID string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetSession makes later requests act as sessionID; empty clears it
func (c *HTTPClient) SetSession(sessionID string) {
	c.sessionID = sessionID
}

func (c *HTTPClient) GET(endpoint string) (*http.Response, error) {
	return c.do(http.MethodGet, endpoint, nil)
}

func (c *HTTPClient) POST(endpoint string, body interface{}) (*http.Response, error) {
	return c.do(http.MethodPost, endpoint, body)
}

func (c *HTTPClient) DELETE(endpoint string) (*http.Response, error) {
	return c.do(http.MethodDelete, endpoint, nil)
}

func (c *HTTPClient) do(method, endpoint string, body interface{}) (*http.Response, error) {
	url := c.baseURL + endpoint

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Cache-Control", "no-cache")
	if c.sessionID != "" {
		req.Header.Set(SessionHeader, c.sessionID)
	}

	return c.client.Do(req)
}

// UnmarshalBody decodes a JSON response, turning error statuses into errors.
// v may be nil to only check the status.
func UnmarshalBody(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}
	if v == nil {
		return nil
	}

	return json.Unmarshal(body, v)
}
