package srvreg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/agrichain/agrichain/accesscontrol"
	"github.com/agrichain/agrichain/dashboard"
	"github.com/agrichain/agrichain/i18n"
	"github.com/agrichain/agrichain/qr"
	"github.com/agrichain/agrichain/repository"
	"github.com/agrichain/agrichain/session"
	cmtlog "github.com/cometbft/cometbft/libs/log"
)

// Request represents the client's HTTP request
type Request struct {
	Method     string            `json:"method"`
	Path       string            `json:"path"`
	Query      map[string]string `json:"query"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
	RemoteAddr string            `json:"remote_addr"`
	RequestID  string            `json:"request_id"`
	Timestamp  time.Time         `json:"timestamp"`

	// Filled in by the web server and the registry
	Lang    string            `json:"lang"`
	Session *session.Session  `json:"-"`
	Params  map[string]string `json:"-"`

	ctx context.Context
}

// Context returns the request context, never nil
func (r *Request) Context() context.Context {
	if r.ctx == nil {
		return context.Background()
	}
	return r.ctx
}

// WithContext sets the context handlers use for blocking calls
func (r *Request) WithContext(ctx context.Context) *Request {
	r.ctx = ctx
	return r
}

// Response represents the computed response from server
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// ServiceHandler is a function type for service handlers
type ServiceHandler func(*Request) (*Response, error)

// RouteKey uniquely identifies a route
type RouteKey struct {
	Method string
	Path   string
}

// Guard describes who may call a route
type Guard struct {
	RequireSession bool
	// Owner limits the route to sessions allowed to act on this role's dashboard
	Owner session.Role
}

var (
	Public      = Guard{}
	SessionOnly = Guard{RequireSession: true}
)

// OwnedBy guards a dashboard action route of role
func OwnedBy(role session.Role) Guard {
	return Guard{RequireSession: true, Owner: role}
}

// RouteMatch is a resolved route
type RouteMatch struct {
	Handler ServiceHandler
	Guard   Guard
	Params  map[string]string
}

// Services are the components handlers work with
type Services struct {
	Sessions   *session.Service
	Workspaces *dashboard.Workspaces
	Router     *dashboard.Router
	Admin      *dashboard.Admin
	Repository *repository.Repository
	Generator  *qr.Generator
	Translator *i18n.Translator
	Access     *accesscontrol.Enforcer
}

// ServiceRegistry manages all service handlers
type ServiceRegistry struct {
	handlers    map[RouteKey]ServiceHandler
	exactRoutes map[RouteKey]bool
	guards      map[RouteKey]Guard
	mu          sync.RWMutex
	services    Services
	logger      cmtlog.Logger
	startTime   time.Time
}

var defaultHeaders = map[string]string{"Content-Type": "application/json"}

// NewServiceRegistry creates a new service registry
func NewServiceRegistry(services Services, logger cmtlog.Logger) *ServiceRegistry {
	return &ServiceRegistry{
		handlers:    make(map[RouteKey]ServiceHandler),
		exactRoutes: make(map[RouteKey]bool),
		guards:      make(map[RouteKey]Guard),
		services:    services,
		logger:      logger,
		startTime:   time.Now(),
	}
}

// RegisterHandler registers a new service handler
func (sr *ServiceRegistry) RegisterHandler(method, path string, isExactPath bool, guard Guard, handler ServiceHandler) {
	sr.mu.Lock()
	defer sr.mu.Unlock()

	key := RouteKey{Method: strings.ToUpper(method), Path: path}
	sr.handlers[key] = handler
	sr.exactRoutes[key] = isExactPath
	sr.guards[key] = guard
}

// GetHandlerForPath finds the appropriate handler for a given path
func (sr *ServiceRegistry) GetHandlerForPath(method, path string) (*RouteMatch, bool) {
	sr.mu.RLock()
	defer sr.mu.RUnlock()

	method = strings.ToUpper(method)

	// Try exact match first
	key := RouteKey{Method: method, Path: path}
	if handler, ok := sr.handlers[key]; ok && sr.exactRoutes[key] {
		return &RouteMatch{Handler: handler, Guard: sr.guards[key]}, true
	}

	// Try pattern matching
	for routeKey, handler := range sr.handlers {
		if routeKey.Method != method || sr.exactRoutes[routeKey] {
			continue
		}
		if params, ok := matchPath(routeKey.Path, path); ok {
			return &RouteMatch{Handler: handler, Guard: sr.guards[routeKey], Params: params}, true
		}
	}

	return nil, false
}

// matchPath does simple pattern matching for routes and collects :params
func matchPath(pattern, path string) (map[string]string, bool) {
	patternParts := strings.Split(pattern, "/")
	pathParts := strings.Split(path, "/")

	if len(patternParts) != len(pathParts) {
		return nil, false
	}

	params := map[string]string{}
	for i := range len(patternParts) {
		if name, ok := strings.CutPrefix(patternParts[i], ":"); ok {
			if pathParts[i] == "" {
				return nil, false
			}
			params[name] = pathParts[i]
			continue
		}
		if patternParts[i] != pathParts[i] {
			return nil, false
		}
	}

	return params, true
}

// RegisterDefaultServices sets up every AgriChain endpoint
func (sr *ServiceRegistry) RegisterDefaultServices() {
	// System endpoints
	sr.RegisterHandler("GET", "/health", true, Public, sr.HealthHandler)
	sr.RegisterHandler("GET", "/languages", true, Public, sr.LanguagesHandler)
	sr.RegisterHandler("GET", "/unauthorized", true, Public, sr.UnauthorizedHandler)

	// Auth endpoints
	sr.RegisterHandler("POST", "/auth/login", true, Public, sr.LoginHandler)
	sr.RegisterHandler("POST", "/auth/signup", true, Public, sr.SignUpHandler)
	sr.RegisterHandler("POST", "/auth/logout", true, SessionOnly, sr.LogoutHandler)
	sr.RegisterHandler("GET", "/auth/session", true, SessionOnly, sr.CurrentSessionHandler)

	// Dashboard endpoints
	sr.RegisterHandler("GET", "/dashboard", true, SessionOnly, sr.DashboardHandler)
	sr.RegisterHandler("POST", "/dashboard/farmer/products", true, OwnedBy(session.RoleFarmer), sr.AddProductHandler)
	sr.RegisterHandler("POST", "/dashboard/distributor/pending/:id/accept", false, OwnedBy(session.RoleDistributor), sr.AcceptProductHandler)
	sr.RegisterHandler("POST", "/dashboard/distributor/pending/:id/reject", false, OwnedBy(session.RoleDistributor), sr.RejectProductHandler)
	sr.RegisterHandler("POST", "/dashboard/distributor/shipments/:id/status", false, OwnedBy(session.RoleDistributor), sr.UpdateShipmentStatusHandler)
	sr.RegisterHandler("POST", "/dashboard/retailer/products/:id/increment", false, OwnedBy(session.RoleRetailer), sr.IncrementStockHandler)
	sr.RegisterHandler("POST", "/dashboard/retailer/products/:id/decrement", false, OwnedBy(session.RoleRetailer), sr.DecrementStockHandler)
	sr.RegisterHandler("GET", "/dashboard/retailer/products/:id/label", false, OwnedBy(session.RoleRetailer), sr.PrintLabelHandler)
	sr.RegisterHandler("POST", "/dashboard/consumer/scan", true, OwnedBy(session.RoleConsumer), sr.ConsumerScanHandler)
	sr.RegisterHandler("POST", "/dashboard/admin/users/:id/approve", false, OwnedBy(session.RoleAdmin), sr.ApproveUserHandler)
	sr.RegisterHandler("POST", "/dashboard/admin/users/:id/reject", false, OwnedBy(session.RoleAdmin), sr.RejectUserHandler)

	// QR endpoints
	sr.RegisterHandler("POST", "/qr/generate", true, SessionOnly, sr.GenerateQRHandler)
	sr.RegisterHandler("GET", "/qr/presets", true, SessionOnly, sr.PresetsHandler)
	sr.RegisterHandler("POST", "/scanner/start", true, SessionOnly, sr.ScannerStartHandler)
	sr.RegisterHandler("POST", "/scanner/stop", true, SessionOnly, sr.ScannerStopHandler)
	sr.RegisterHandler("POST", "/scanner/simulate", true, SessionOnly, sr.ScannerSimulateHandler)
	sr.RegisterHandler("POST", "/scanner/frame", true, SessionOnly, sr.ScannerFrameHandler)
	sr.RegisterHandler("GET", "/scanner/history", true, SessionOnly, sr.ScannerHistoryHandler)
	sr.RegisterHandler("DELETE", "/scanner/history", true, SessionOnly, sr.ClearScannerHistoryHandler)
	sr.RegisterHandler("GET", "/timeline/:batchId", false, SessionOnly, sr.TimelineHandler)
}

// ConvertHttpRequest copies the parts of r that handlers need
func ConvertHttpRequest(r *http.Request, requestID string) (*Request, error) {
	headers := make(map[string]string)
	for name, values := range r.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	query := make(map[string]string)
	for name, values := range r.URL.Query() {
		if len(values) > 0 {
			query[name] = values[0]
		}
	}

	body := ""
	if r.Body != nil {
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, err
		}
		raw := strings.TrimSpace(string(bodyBytes))
		body = compactJSON(raw)
	}

	req := &Request{
		Method:     r.Method,
		Path:       r.URL.Path,
		Query:      query,
		Headers:    headers,
		Body:       body,
		RemoteAddr: r.RemoteAddr,
		RequestID:  requestID,
		Timestamp:  time.Now(),
	}
	return req.WithContext(r.Context()), nil
}

// GenerateResponse checks the route guard, then executes the request
func (req *Request) GenerateResponse(services *ServiceRegistry) (*Response, error) {
	match, found := services.GetHandlerForPath(req.Method, req.Path)
	if !found {
		return &Response{
			StatusCode: http.StatusNotFound,
			Headers:    defaultHeaders,
			Body:       fmt.Sprintf(`{"error":"Service not found for %s %s"}`, req.Method, req.Path),
		}, nil
	}
	req.Params = match.Params

	if denied := services.checkGuard(req, match.Guard); denied != nil {
		return denied, nil
	}

	return match.Handler(req)
}

func (sr *ServiceRegistry) checkGuard(req *Request, guard Guard) *Response {
	if !guard.RequireSession {
		return nil
	}
	if !req.Session.Authenticated() {
		return &Response{
			StatusCode: http.StatusUnauthorized,
			Headers:    defaultHeaders,
			Body:       `{"error":"unauthorized","redirect":"/unauthorized"}`,
		}
	}
	if guard.Owner == "" {
		return nil
	}

	allowed, err := sr.services.Access.CanAct(req.Session.Role, guard.Owner, req.Method)
	if err != nil {
		sr.logger.Error("Access check failed", "role", req.Session.Role, "owner", guard.Owner, "err", err)
		return errorResponse(http.StatusInternalServerError, "access check failed")
	}
	if !allowed {
		return errorResponse(http.StatusForbidden, fmt.Sprintf("role %q may not act on the %s dashboard", req.Session.Role, guard.Owner))
	}
	return nil
}

// compactJSON removes whitespace from JSON
func compactJSON(body string) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(body)); err != nil {
		return strings.TrimSpace(body)
	}
	return buf.String()
}
