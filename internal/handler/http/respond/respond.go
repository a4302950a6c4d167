// Package respond writes JSON responses and keeps error payloads safe:
// provider errors routinely embed API keys and DSNs, so anything not
// recognizably a validation message is masked before it leaves the
// process.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

// JSON writes v as a JSON body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out, so all we can do is log.
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Error writes err.Error() verbatim. Only for errors built from user
// input; anything touching upstream services goes through SafeError.
func Error(w http.ResponseWriter, code int, err error) {
	errorJSON(w, code, err.Error())
}

// safeMessageMarkers are substrings of validation-style errors whose
// text is safe to show a client.
var safeMessageMarkers = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
}

// SafeError returns validation errors verbatim and collapses everything
// else to "internal server error", logging the real cause with secrets
// masked. 5xx codes are never passed through verbatim.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isSafeMessage(msg) {
		errorJSON(w, code, msg)
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.Any("error", SanitizeError(err)))
	errorJSON(w, code, "internal server error")
}

func isSafeMessage(msg string) bool {
	lower := strings.ToLower(msg)
	for _, marker := range safeMessageMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func errorJSON(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]string{"error": msg})
}

// AppError pairs an internal error with the message a client should
// see, so handlers can fail with full detail in the log and a curated
// message on the wire.
type AppError struct {
	UserMsg string
	Err     error
	Code    int
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.UserMsg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError for the given status code.
func NewAppError(code int, userMsg string, err error) *AppError {
	return &AppError{Code: code, UserMsg: userMsg, Err: err}
}

// SafeErrorV2 sends an AppError's user message (logging its internal
// cause, masked), and falls back to SafeError for plain errors.
func SafeErrorV2(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		SafeError(w, code, err)
		return
	}

	if appErr.Err != nil {
		slog.Default().Error("application error",
			slog.String("status", http.StatusText(appErr.Code)),
			slog.Int("code", appErr.Code),
			slog.String("user_message", appErr.UserMsg),
			slog.Any("error", SanitizeError(appErr.Err)))
	}
	errorJSON(w, appErr.Code, appErr.UserMsg)
}
