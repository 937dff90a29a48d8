// Package problem renders RFC 7807 "problem details" responses.
// https://tools.ietf.org/html/rfc7807
//
// Every rejection the API produces goes through this package so callers get
// a stable, machine-readable error kind and never an internal detail.
package problem

import (
	"encoding/json"
	"net/http"
)

// Problem represents an RFC 7807 problem details response.
type Problem struct {
	// Type is a URI reference that identifies the problem type.
	// If not set, defaults to "about:blank".
	Type string `json:"type,omitempty"`

	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`

	// Status is the HTTP status code for this occurrence of the problem.
	Status int `json:"status"`

	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
}

// ContentType is the Content-Type for RFC 7807 problem responses.
const ContentType = "application/problem+json"

// Stable machine-readable kinds for authentication outcomes. Clients key on
// these rather than on status codes or prose.
const (
	KindUnauthenticated      = "urn:taskdeck:error:unauthenticated"
	KindForbidden            = "urn:taskdeck:error:forbidden"
	KindDirectoryUnavailable = "urn:taskdeck:error:directory-unavailable"
)

// Write writes an RFC 7807 problem response.
func Write(w http.ResponseWriter, status int, title, detail string) {
	WriteKind(w, "about:blank", status, title, detail)
}

// WriteKind writes an RFC 7807 problem response with a custom type URI.
func WriteKind(w http.ResponseWriter, kind string, status int, title, detail string) {
	p := &Problem{
		Type:   kind,
		Title:  title,
		Status: status,
		Detail: detail,
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(p)
}

// Common helpers for standard HTTP errors.

// BadRequest writes a 400 Bad Request problem response.
func BadRequest(w http.ResponseWriter, detail string) {
	Write(w, http.StatusBadRequest, "Bad Request", detail)
}

// Unauthenticated writes a 401 problem response with the stable
// unauthenticated kind.
func Unauthenticated(w http.ResponseWriter, detail string) {
	WriteKind(w, KindUnauthenticated, http.StatusUnauthorized, "Unauthorized", detail)
}

// Forbidden writes a 403 problem response with the stable forbidden kind.
func Forbidden(w http.ResponseWriter, detail string) {
	WriteKind(w, KindForbidden, http.StatusForbidden, "Forbidden", detail)
}

// NotFound writes a 404 Not Found problem response.
func NotFound(w http.ResponseWriter, detail string) {
	Write(w, http.StatusNotFound, "Not Found", detail)
}

// Conflict writes a 409 Conflict problem response.
func Conflict(w http.ResponseWriter, detail string) {
	Write(w, http.StatusConflict, "Conflict", detail)
}

// UnprocessableEntity writes a 422 Unprocessable Entity problem response.
func UnprocessableEntity(w http.ResponseWriter, detail string) {
	Write(w, http.StatusUnprocessableEntity, "Unprocessable Entity", detail)
}

// InternalServerError writes a 500 Internal Server Error problem response.
func InternalServerError(w http.ResponseWriter, detail string) {
	Write(w, http.StatusInternalServerError, "Internal Server Error", detail)
}

// DirectoryUnavailable writes a 503 problem response with the stable
// directory-unavailable kind. Retryable.
func DirectoryUnavailable(w http.ResponseWriter, detail string) {
	WriteKind(w, KindDirectoryUnavailable, http.StatusServiceUnavailable, "Service Unavailable", detail)
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteJSONOK writes a 200 OK JSON response.
func WriteJSONOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteJSONCreated writes a 201 Created JSON response.
func WriteJSONCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, data)
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
