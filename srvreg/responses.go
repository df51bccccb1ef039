package srvreg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/agrichain/agrichain/dashboard"
	"github.com/agrichain/agrichain/qr"
	"github.com/agrichain/agrichain/repository"
	"github.com/agrichain/agrichain/session"
)

var errBadPathParam = errors.New("invalid path parameter")

var statusByError = []struct {
	err    error
	status int
}{
	{session.ErrRoleRequired, http.StatusBadRequest},
	{session.ErrWalletUnavailable, http.StatusBadRequest},
	{dashboard.ErrValidation, http.StatusBadRequest},
	{qr.ErrEmptyPayload, http.StatusBadRequest},
	{errBadPathParam, http.StatusBadRequest},
	{session.ErrNotFound, http.StatusNotFound},
	{dashboard.ErrNotFound, http.StatusNotFound},
	{dashboard.ErrInvalidTransition, http.StatusConflict},
	{dashboard.ErrOutOfStock, http.StatusConflict},
	{qr.ErrNotScanning, http.StatusConflict},
	{qr.ErrCameraUnavailable, http.StatusUnprocessableEntity},
	{qr.ErrNoCode, http.StatusUnprocessableEntity},
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	for _, entry := range statusByError {
		if errors.Is(err, entry.err) {
			return entry.status
		}
	}
	var repoErr *repository.RepositoryError
	if errors.As(err, &repoErr) && repoErr.Code == repository.CodeNotFound {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func jsonResponse(statusCode int, v any) *Response {
	body, err := json.Marshal(v)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, "failed to encode response")
	}
	return &Response{
		StatusCode: statusCode,
		Headers:    defaultHeaders,
		Body:       string(body),
	}
}

func errorResponse(statusCode int, message string) *Response {
	body, _ := json.Marshal(map[string]string{"error": message})
	return &Response{
		StatusCode: statusCode,
		Headers:    defaultHeaders,
		Body:       string(body),
	}
}

// failure turns err into an error response; server errors are also returned for logging
func failure(err error) (*Response, error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		return errorResponse(status, "internal server error"), err
	}
	return errorResponse(status, err.Error()), nil
}

func decodeBody(req *Request, v any) error {
	if req.Body == "" {
		return fmt.Errorf("%w: request body is required", dashboard.ErrValidation)
	}
	if err := json.Unmarshal([]byte(req.Body), v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", dashboard.ErrValidation, err)
	}
	return nil
}

func int64Param(req *Request, name string) (int64, error) {
	id, err := strconv.ParseInt(req.Params[name], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", errBadPathParam, name)
	}
	return id, nil
}

func uintParam(req *Request, name string) (uint, error) {
	id, err := strconv.ParseUint(req.Params[name], 10, 0)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a positive number", errBadPathParam, name)
	}
	return uint(id), nil
}
