// Package httperr carries typed HTTP errors from handlers to a single
// responder, so every failure ends up as {"error": message} with the
// right status code.
package httperr

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// E is an error with an HTTP status attached. Message is what the client
// sees; keep internal detail out of it.
type E struct {
	Status  int
	Message string
}

func (e *E) Error() string {
	return e.Message
}

func New(status int, message string) *E {
	return &E{Status: status, Message: message}
}

func BadRequest(message string) *E {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *E {
	return New(http.StatusUnauthorized, message)
}

func NotFound(message string) *E {
	return New(http.StatusNotFound, message)
}

// HandlerFunc is a handler that reports failure instead of writing it.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handler adapts fn into an http.HandlerFunc, routing any returned error
// through Respond.
func Handler(fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			Respond(w, err)
		}
	}
}

// Respond logs err and writes it as a JSON error body. Untyped errors
// (store failures and the like) become a generic 500.
func Respond(w http.ResponseWriter, err error) {
	log.Println("request failed:", err)

	status := http.StatusInternalServerError
	message := "An unknown error occurred"
	var e *E
	if errors.As(err, &e) {
		status = e.Status
		message = e.Message
	}
	JSON(w, status, map[string]string{"error": message})
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("failed to encode response:", err)
	}
}
