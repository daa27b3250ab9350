// Package httpx holds the JSON request/response helpers shared by HTTP handlers.
package httpx

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	apperr "github.com/oggyb/mentormatch/internal/errors"
	"github.com/oggyb/mentormatch/internal/logger"
	"github.com/oggyb/mentormatch/internal/validation"
)

const maxBodyBytes = 1 << 20

// APIError is the JSON error body.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Write encodes payload as JSON with the given status.
func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Error writes err as an APIError. Server-side failures are logged and their
// message replaced; client errors keep their message.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, code := apperr.HTTPStatus(err)
	body := APIError{Code: code, Message: err.Error()}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		body.Details = ve.Fields
	}

	switch {
	case status >= http.StatusInternalServerError:
		logger.FromContext(r.Context()).Error("request failed", "err", err, "status", status)
		body.Message = http.StatusText(status)
	case status == http.StatusNotFound:
		body.Message = "resource not found"
	case status == http.StatusUnauthorized:
		body.Message = "authentication required"
	}
	Write(w, status, body)
}

// Decode reads a JSON body into dst and validates it.
// A missing or malformed body is a validation error.
func Decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return validation.Struct(dst)
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return apperr.Invalid(typeErr.Field, typeErr.Field+" has an invalid type")
		}
		return apperr.Invalid("body", "request body must be valid JSON")
	}
	return validation.Struct(dst)
}

// URLParamID parses a positive integer path parameter.
func URLParamID(r *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.ErrNotFound
	}
	return id, nil
}
