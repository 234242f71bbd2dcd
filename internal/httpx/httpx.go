// Package httpx holds the JSON plumbing shared by every handler.
package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/ayush/starwars-blog-api/internal/logging"
	"github.com/ayush/starwars-blog-api/internal/metrics"
	"github.com/ayush/starwars-blog-api/internal/validation"
)

// Error is an error that renders as {"<Key>": "<Message>"} with Status.
type Error struct {
	Status  int
	Key     string
	Message string
}

func (e *Error) Error() string { return e.Message }

// NotFound returns a 404 rendered under the "error" key.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Key: "error", Message: msg}
}

// BadRequest returns a 400 rendered under the "error" key.
func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Key: "error", Message: msg}
}

// Notice returns an error rendered under the "message" key.
func Notice(status int, msg string) *Error {
	return &Error{Status: status, Key: "message", Message: msg}
}

var errInvalidBody = BadRequest("invalid request body")

// WriteJSON writes v as JSON with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// HTML renders tmpl into memory and writes it only if execution succeeds,
// so a failing template never leaves a partial page behind.
func HTML(w http.ResponseWriter, status int, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

// Message writes {"message": msg} with status 200.
func Message(w http.ResponseWriter, msg string) {
	WriteJSON(w, http.StatusOK, map[string]string{"message": msg})
}

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Decode reads a single JSON value into v. An empty body leaves v untouched;
// malformed JSON, trailing data and wrongly typed fields are a 400.
func Decode(r *http.Request, v any) error {
	_, err := decode(r, v)
	return err
}

// Bind decodes the body into v and validates it. A field of the wrong type
// is reported like a missing one, with missing as the message.
func Bind(r *http.Request, v any, missing string) error {
	typeErr, err := decode(r, v)
	if typeErr {
		return BadRequest(missing)
	}
	if err != nil {
		return err
	}
	if err := validation.Struct(v); err != nil {
		return BadRequest(missing)
	}
	return nil
}

// decode reports typeErr when the body is valid JSON but a field does not
// fit its Go type.
func decode(r *http.Request, v any) (typeErr bool, err error) {
	if r.Body == nil {
		return false, nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil || len(body) > maxBodyBytes {
		return false, errInvalidBody
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return false, nil
	}

	err = json.Unmarshal(body, v)
	if err == nil {
		return false, nil
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		return true, errInvalidBody
	}
	return false, errInvalidBody
}

// ID parses the {id} path parameter. ok is false for anything that is not
// a positive integer, which callers treat as "not found".
func ID(r *http.Request) (id int, ok bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HandlerFunc is an http.HandlerFunc that may fail.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h, rendering *Error values as-is and anything else as 500.
func Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var apiErr *Error
		if errors.As(err, &apiErr) {
			WriteJSON(w, apiErr.Status, map[string]string{apiErr.Key: apiErr.Message})
			return
		}

		metrics.StoreErrors.Inc()
		logging.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
