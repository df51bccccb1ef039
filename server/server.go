package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/agrichain/agrichain/i18n"
	"github.com/agrichain/agrichain/monitoring"
	"github.com/agrichain/agrichain/session"
	"github.com/agrichain/agrichain/srvreg"

	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WebServer serves the AgriChain HTTP API
type WebServer struct {
	httpAddr        string
	server          *http.Server
	logger          cmtlog.Logger
	startTime       time.Time
	serviceRegistry *srvreg.ServiceRegistry
	sessions        *session.Service
	translator      *i18n.Translator
}

// NewWebServer creates a new web server
func NewWebServer(httpPort string, logger cmtlog.Logger, serviceRegistry *srvreg.ServiceRegistry, sessions *session.Service, translator *i18n.Translator) *WebServer {
	mux := http.NewServeMux()

	server := &WebServer{
		httpAddr: ":" + httpPort,
		server: &http.Server{
			Addr:              ":" + httpPort,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:          logger,
		startTime:       time.Now(),
		serviceRegistry: serviceRegistry,
		sessions:        sessions,
		translator:      translator,
	}

	// Register routes
	mux.HandleFunc("/{$}", server.handleRoot)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/", server.handleAPI)

	return server
}

// Handler exposes the routes without a listener
func (ws *WebServer) Handler() http.Handler {
	return ws.server.Handler
}

// Start starts the web server
func (ws *WebServer) Start() error {
	ws.logger.Info("Starting web server", "addr", ws.httpAddr)
	go func() {
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.logger.Error("Web server error: ", "err", err)
		}
	}()
	return nil
}

// Shutdown gracefully shuts down the web server
func (ws *WebServer) Shutdown(ctx context.Context) error {
	ws.logger.Info("Shutting down web server")
	return ws.server.Shutdown(ctx)
}

// handleRoot shows service information
func (ws *WebServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		JSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte("<h1>AgriChain - Supply Chain Traceability</h1>"))
	w.Write([]byte("<p>Uptime: " + time.Since(ws.startTime).Round(time.Second).String() + "</p>"))

	apiDocs := `
	<h2>API Endpoints</h2>
	<ul>
		<li><strong>POST /auth/login</strong> - Connect a wallet and pick a role</li>
		<li><strong>POST /auth/signup</strong> - Request an account</li>
		<li><strong>POST /auth/logout</strong> - End the session</li>
		<li><strong>GET /dashboard</strong> - Dashboard of the session's role</li>
		<li><strong>POST /qr/generate</strong> - Render a QR code</li>
		<li><strong>POST /scanner/{start,stop,simulate,frame}</strong> - QR scanner</li>
		<li><strong>GET /scanner/history</strong> - Recent scans</li>
		<li><strong>GET /timeline/{batchId}</strong> - Product journey</li>
		<li><strong>GET /languages</strong> - Supported languages</li>
		<li><strong>GET /health</strong> - Liveness</li>
		<li><strong>GET /metrics</strong> - Prometheus metrics</li>
	</ul>
	`
	w.Write([]byte(apiDocs))
}

// handleAPI resolves the session and language, then dispatches to the registry
func (ws *WebServer) handleAPI(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	requestID, err := generateRequestID()
	if err != nil {
		JSONError(w, "Internal Server Error", http.StatusInternalServerError)
		ws.logger.Error("Failed to generate request ID", "err", err)
		return
	}

	request, err := srvreg.ConvertHttpRequest(r, requestID)
	if err != nil {
		JSONError(w, "Failed to read request: "+err.Error(), http.StatusBadRequest)
		ws.logger.Error("Failed to convert HTTP request", "err", err)
		return
	}

	request.Session, err = ws.resolveSession(r)
	if err != nil {
		JSONError(w, "Internal Server Error", http.StatusInternalServerError)
		ws.logger.Error("Failed to load session", "request_id", requestID, "err", err)
		return
	}
	request.Lang = ws.translator.Negotiate(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))

	response, err := request.GenerateResponse(ws.serviceRegistry)
	if err != nil {
		ws.logger.Error("Failed to generate response", "request_id", requestID, "path", request.Path, "err", err)
		if response == nil {
			JSONError(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Language", request.Lang)
	w.Header().Set("X-Request-ID", requestID)
	w.WriteHeader(response.StatusCode)
	if _, err := w.Write([]byte(response.Body)); err != nil {
		ws.logger.Error("Failed to write response", "request_id", requestID, "err", err)
	}

	monitoring.RequestDuration.
		WithLabelValues(request.Method, strconv.Itoa(response.StatusCode)).
		Observe(time.Since(start).Seconds())

	ws.logger.Info("API Request Processed",
		"path", request.Path,
		"method", request.Method,
		"status", response.StatusCode,
		"lang", request.Lang,
	)
}

// resolveSession looks up the session named by the header or cookie.
// An unknown id is an anonymous request.
func (ws *WebServer) resolveSession(r *http.Request) (*session.Session, error) {
	id := r.Header.Get(srvreg.SessionHeader)
	if id == "" {
		if cookie, err := r.Cookie(srvreg.SessionCookie); err == nil {
			id = cookie.Value
		}
	}
	if id == "" {
		return nil, nil
	}

	sess, err := ws.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, nil
	}
	return sess, err
}

// Helper functions

func generateRequestID() (string, error) {
	bytes := make([]byte, 16)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

func JSONError(w http.ResponseWriter, message string, statusCode int) {
	errorResponse := struct {
		Error string `json:"error"`
	}{
		Error: message,
	}
	jsonBytes, err := json.Marshal(errorResponse)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(jsonBytes)
}
