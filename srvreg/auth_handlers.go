package srvreg

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/agrichain/agrichain/dashboard"
	"github.com/agrichain/agrichain/monitoring"
	"github.com/agrichain/agrichain/repository/models"
	"github.com/go-playground/validator/v10"
)

// SessionCookie carries the session id for browser clients
const SessionCookie = "agrichain_session"

// SessionHeader carries the session id for API clients
const SessionHeader = "X-Session-ID"

var validate = validator.New(validator.WithRequiredStructEnabled())

func sessionCookie(value string, maxAge int) string {
	cookie := &http.Cookie{
		Name:     SessionCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	return cookie.String()
}

func withHeader(resp *Response, key, value string) *Response {
	headers := make(map[string]string, len(resp.Headers)+1)
	for k, v := range resp.Headers {
		headers[k] = v
	}
	headers[key] = value
	resp.Headers = headers
	return resp
}

// LoginHandler starts a session for the connected wallet
func (sr *ServiceRegistry) LoginHandler(req *Request) (*Response, error) {
	var body struct {
		Role          string                 `json:"role"`
		WalletAddress string                 `json:"walletAddress"`
		User          map[string]interface{} `json:"user"`
	}
	if err := decodeBody(req, &body); err != nil {
		return failure(err)
	}

	sess, err := sr.services.Sessions.Login(req.Context(), body.User, body.Role, body.WalletAddress)
	if err != nil {
		return failure(err)
	}
	monitoring.LoginsTotal.WithLabelValues(string(sess.Role)).Inc()

	resp := jsonResponse(http.StatusOK, map[string]interface{}{
		"message":  "Login successful",
		"session":  sess,
		"redirect": "/dashboard",
	})
	return withHeader(resp, "Set-Cookie", sessionCookie(sess.ID, 0)), nil
}

// LogoutHandler clears the current session
func (sr *ServiceRegistry) LogoutHandler(req *Request) (*Response, error) {
	if err := sr.services.Sessions.Logout(req.Context(), req.Session.ID); err != nil {
		return failure(err)
	}
	monitoring.LogoutsTotal.Inc()

	resp := jsonResponse(http.StatusOK, map[string]interface{}{
		"message":  "Logged out",
		"redirect": "/login",
	})
	return withHeader(resp, "Set-Cookie", sessionCookie("", -1)), nil
}

// CurrentSessionHandler returns the caller's session
func (sr *ServiceRegistry) CurrentSessionHandler(req *Request) (*Response, error) {
	return jsonResponse(http.StatusOK, req.Session), nil
}

type signUpForm struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Organization  string `json:"organization" validate:"required"`
	Role          string `json:"role" validate:"required,oneof=farmer distributor retailer consumer"`
	WalletAddress string `json:"walletAddress"`
}

// SignUpHandler files a registration request for admin review
func (sr *ServiceRegistry) SignUpHandler(req *Request) (*Response, error) {
	var form signUpForm
	if err := decodeBody(req, &form); err != nil {
		return failure(err)
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.Organization = strings.TrimSpace(form.Organization)
	form.Role = strings.ToLower(strings.TrimSpace(form.Role))
	if err := validate.Struct(form); err != nil {
		return failure(fmt.Errorf("%w: %v", dashboard.ErrValidation, err))
	}

	reg := &models.Registration{
		Name:          form.Name,
		Email:         form.Email,
		Organization:  form.Organization,
		Role:          form.Role,
		WalletAddress: strings.TrimSpace(form.WalletAddress),
		RequestDate:   time.Now().Format("2006-01-02"),
	}
	if repoErr := sr.services.Repository.CreateRegistration(req.Context(), reg); repoErr != nil {
		return failure(repoErr)
	}
	sr.logger.Info("Registration submitted", "registration_id", reg.ID, "role", reg.Role)

	return jsonResponse(http.StatusCreated, map[string]interface{}{
		"message":      "Registration submitted! An admin will review and approve your account.",
		"registration": reg,
		"redirect":     "/login",
	}), nil
}
