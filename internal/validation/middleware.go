// Package validation/middleware provides HTTP request validation middleware.
//
// SYSTEM ARCHITECTURE ROLE:
// This module bridges HTTP requests and the schema validator. It collects parameters
// from the query string, path wildcards and JSON body into one map that the command
// executor validates, and writes malformed requests back as VALIDATION_ERROR responses.
//
// EXTRACTION PATTERNS:
// - Query parameters: single values become strings, repeated values string slices
// - Path parameters: read with http.Request.PathValue for the wildcard names given
// - JSON body: decoded for POST requests and merged over query and path values
//
// USAGE PATTERNS:
//
//	data, err := rv.ExtractRequestData(r, "id")
//	if err != nil {
//		rv.WriteError(w, err)
//		return
//	}
package validation

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/rs/zerolog"
)

// MaxBodyBytes bounds the JSON body read from a request
const MaxBodyBytes = 1 << 20

// RequestValidator provides middleware for HTTP request validation
type RequestValidator struct {
	validator    *Validator
	errorHandler *errors.HTTPErrorHandler
}

// NewRequestValidator creates a new request validator middleware
func NewRequestValidator(logger zerolog.Logger) *RequestValidator {
	return &RequestValidator{
		validator:    NewValidator(),
		errorHandler: errors.NewHTTPErrorHandler(true, logger),
	}
}

// ExtractRequestData merges query parameters, the named path wildcards and,
// for POST requests, the JSON body into one parameter map
func (rv *RequestValidator) ExtractRequestData(r *http.Request, pathKeys ...string) (map[string]interface{}, error) {
	data := make(map[string]interface{})

	for key, values := range r.URL.Query() {
		if len(values) == 1 {
			data[key] = SanitizeString(values[0])
		} else if len(values) > 1 {
			data[key] = values
		}
	}

	for _, key := range pathKeys {
		if value := r.PathValue(key); value != "" {
			data[key] = value
		}
	}

	if r.Method == http.MethodPost {
		bodyData, err := rv.extractJSONBody(r)
		if err != nil {
			return nil, err
		}
		for key, value := range bodyData {
			data[key] = value
		}
	}

	return data, nil
}

// extractJSONBody extracts data from a JSON request body
func (rv *RequestValidator) extractJSONBody(r *http.Request) (map[string]interface{}, error) {
	if r.Body == nil {
		return map[string]interface{}{}, nil
	}

	if contentType := r.Header.Get("Content-Type"); contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return nil, errors.NewAppError(errors.ErrCodeInvalidFormat, "Request body must be application/json")
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, errors.ValidationError("Failed to read request body")
	}
	if len(body) > MaxBodyBytes {
		return nil, errors.ValidationError("Request body too large")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return map[string]interface{}{}, nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.ValidationError("Invalid JSON in request body").WithDetails(err.Error())
	}

	return data, nil
}

// SanitizeString removes control characters other than newlines and tabs
func SanitizeString(input string) string {
	var result strings.Builder
	for _, r := range input {
		if r == '\n' || r == '\t' || r == '\r' || r >= 32 {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// WriteError writes a malformed-request error as a JSON error envelope
func (rv *RequestValidator) WriteError(w http.ResponseWriter, err error) {
	rv.errorHandler.WriteHTTPError(w, err)
}

// Validator returns the underlying validator instance
func (rv *RequestValidator) Validator() *Validator {
	return rv.validator
}
