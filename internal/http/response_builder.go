// Package http serves the analytics API.
//
// This file implements the builder used by every handler to write the JSON
// envelope: {"success": true, "data": ..., "timestamp": ...} on success and
// {"success": false, "error": ..., "message": ...} on failure. Unknown routes
// and panics answer with {"error": ..., "message": ...} alone.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// ResponseBuilder provides a fluent API for building JSON envelope responses.
type ResponseBuilder struct {
	statusCode int
	fields     map[string]any
	headers    map[string]string
}

// NewResponse creates a success envelope with a 200 status.
func NewResponse() *ResponseBuilder {
	return &ResponseBuilder{
		statusCode: http.StatusOK,
		fields:     map[string]any{"success": true},
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *ResponseBuilder) Status(code int) *ResponseBuilder {
	b.statusCode = code
	return b
}

// Data sets the payload.
func (b *ResponseBuilder) Data(data any) *ResponseBuilder {
	return b.Field("data", data)
}

// Count sets the count field carried by list routes.
func (b *ResponseBuilder) Count(n int) *ResponseBuilder {
	return b.Field("count", n)
}

// ChartType sets the chartType field carried by chart routes.
func (b *ResponseBuilder) ChartType(ct string) *ResponseBuilder {
	return b.Field("chartType", ct)
}

// Timestamp stamps the envelope in RFC3339 UTC.
func (b *ResponseBuilder) Timestamp(t time.Time) *ResponseBuilder {
	return b.Field("timestamp", t.UTC().Format(time.RFC3339))
}

// Field sets an arbitrary top-level envelope field.
func (b *ResponseBuilder) Field(name string, value any) *ResponseBuilder {
	b.fields[name] = value
	return b
}

// Header adds a custom header to the response.
func (b *ResponseBuilder) Header(name, value string) *ResponseBuilder {
	b.headers[name] = value
	return b
}

// Write sends the built response to the http.ResponseWriter.
func (b *ResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}

	body, err := json.Marshal(b.fields)
	if err != nil {
		slog.Error("Failed to encode response", "component", "http", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Internal server error","message":"Something went wrong"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(b.statusCode)
	_, _ = w.Write(body)
}

// ErrorResponse creates a failure envelope.
func ErrorResponse(statusCode int, errMsg, message string) *ResponseBuilder {
	b := NewResponse().Status(statusCode).Field("success", false).Field("error", errMsg)
	if message != "" {
		b.Field("message", message)
	}
	return b
}

// BadRequestError creates a 400 Bad Request error response.
func BadRequestError(errMsg, message string) *ResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, errMsg, message)
}

// bareError is the {error, message} body used outside the analytics routes.
func bareError(statusCode int, errMsg, message string) *ResponseBuilder {
	b := ErrorResponse(statusCode, errMsg, message)
	delete(b.fields, "success")
	return b
}

// NotFoundError creates the 404 response for unknown routes.
func NotFoundError() *ResponseBuilder {
	return bareError(http.StatusNotFound, "Endpoint not found", "The requested endpoint does not exist")
}

// InternalServerError creates the 500 response written after a panic.
func InternalServerError(message string) *ResponseBuilder {
	return bareError(http.StatusInternalServerError, "Internal server error", message)
}

// TooManyRequestsError creates the 429 rate limit response.
func TooManyRequestsError() *ResponseBuilder {
	return ErrorResponse(http.StatusTooManyRequests, "Too many requests", "Too many requests from this IP, please try again later.")
}
