package srvreg

import (
	"net/http"
	"time"

	"github.com/agrichain/agrichain/dashboard"
	"github.com/agrichain/agrichain/i18n"
)

// HealthHandler reports liveness
func (sr *ServiceRegistry) HealthHandler(req *Request) (*Response, error) {
	return jsonResponse(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(sr.startTime).Round(time.Second).String(),
	}), nil
}

// LanguagesHandler lists the supported languages and the negotiated one
func (sr *ServiceRegistry) LanguagesHandler(req *Request) (*Response, error) {
	return jsonResponse(http.StatusOK, map[string]interface{}{
		"languages": i18n.Languages(),
		"current":   req.Lang,
	}), nil
}

// UnauthorizedHandler renders the page guarded requests are sent to
func (sr *ServiceRegistry) UnauthorizedHandler(req *Request) (*Response, error) {
	view := dashboard.UnauthorizedView(sr.services.Router.Translator(req.Lang))
	return jsonResponse(http.StatusOK, view), nil
}
