package web

// errors.go renders failures for API and page requests.
//
// Every error goes through the same path:
//  1. The handler calls respondError(w, r, err)
//  2. The status code is derived from the error's sentinel
//  3. core.MapError supplies the user message and code
//  4. The technical error is logged with the request ID
//  5. API requests get JSON, page requests get an HTML error page

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/mockid/internal/core"
	"github.com/JonMunkholm/mockid/internal/logging"
	"github.com/JonMunkholm/mockid/internal/web/templates"
)

// ErrorResponse is the JSON body of every API error.
// Error is a short title; Message and Action are for people; Code is for
// support and client logic.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.Is(err, errRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrTooManyScans):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// titleFor is the short "error" field. The lookup titles match what
// existing lookup clients already check for.
func titleFor(err error) string {
	switch {
	case errors.Is(err, core.ErrMissingID):
		return "Missing parameter"
	case errors.Is(err, core.ErrInvalidCriteria):
		return "Invalid criteria"
	case errors.Is(err, core.ErrInvalidArgument):
		return "Invalid format"
	case errors.Is(err, core.ErrNotFound):
		return "Not found"
	case errors.Is(err, errMethodNotAllowed):
		return "Method not allowed"
	case errors.Is(err, errRateLimited):
		return "Too many requests"
	case errors.Is(err, core.ErrTooManyScans):
		return "Server busy"
	default:
		return "Internal error"
	}
}

// respondError logs err and writes the user-facing response.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := core.MapError(err)

	level := slog.LevelWarn
	if status >= 500 {
		level = slog.LevelError
	}
	logging.FromContext(r.Context()).Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", msg.Code,
	)

	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "5")
	}

	if wantsJSON(r) {
		writeJSON(w, status, ErrorResponse{
			Error:   titleFor(err),
			Message: msg.Message,
			Action:  msg.Action,
			Code:    msg.Code,
		})
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ErrorPage(status, msg).Render(r.Context(), w); err != nil {
		slog.Error("render error page", "error", err)
	}
}

// wantsJSON checks if the client prefers a JSON response.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
