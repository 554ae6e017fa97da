// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinemapulse/internal/logging"
	"github.com/tomtom215/cinemapulse/internal/models"
	"github.com/tomtom215/cinemapulse/internal/storage"
	"github.com/tomtom215/cinemapulse/internal/validation"
)

// Error codes of the API envelope.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeConflict    = "CONFLICT"
	CodeUnavailable = "SERVICE_UNAVAILABLE"
	CodeInternal    = "INTERNAL_ERROR"
	CodeRateLimited = "RATE_LIMITED"
	CodeBadRequest  = "BAD_REQUEST"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 64 << 10

const msgStorageUnavailable = "Service temporarily unavailable, please try again later"

// sanitizeLogValue escapes control characters so client input cannot forge
// log lines.
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func metadata(r *http.Request, start time.Time) models.Metadata {
	md := models.Metadata{Timestamp: time.Now().UTC()}
	if r != nil {
		md.RequestID = logging.RequestIDFromContext(r.Context())
	}
	if !start.IsZero() {
		md.QueryTimeMS = time.Since(start).Milliseconds()
	}
	return md
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write JSON response")
	}
}

func respondSuccess(w http.ResponseWriter, r *http.Request, status int, data interface{}, start time.Time) {
	respondJSON(w, status, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: metadata(r, start),
	})
}

// respondDegraded answers 200 with data computed without storage.
func respondDegraded(w http.ResponseWriter, r *http.Request, data interface{}, start time.Time) {
	md := metadata(r, start)
	md.Degraded = true
	respondJSON(w, http.StatusOK, &models.APIResponse{Status: "success", Data: data, Metadata: md})
}

// respondError sends an error response. err, when non-nil, is logged with
// the request context and never shown to the client.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string, err error) {
	respondErrorDetails(w, r, status, code, message, nil, err)
}

func respondErrorDetails(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]interface{}, err error) {
	if err != nil {
		logging.Ctx(r.Context()).Error().
			Str("code", code).
			Str("path", r.URL.Path).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: metadata(r, time.Time{}),
		Error:    &models.APIError{Code: code, Message: message, Details: details},
	})
}

// respondStorageError maps a storage failure to 503 or 500.
func respondStorageError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, storage.ErrUnavailable) {
		respondError(w, r, http.StatusServiceUnavailable, CodeUnavailable, msgStorageUnavailable, err)
		return
	}
	respondError(w, r, http.StatusInternalServerError, CodeInternal, "Internal server error", err)
}

// decodeJSON reads a JSON body into v. It answers 400 itself and returns
// false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Could not read request body", nil)
		return false
	}
	if len(body) > maxBodyBytes {
		respondError(w, r, http.StatusRequestEntityTooLarge, CodeBadRequest, "Request body too large", nil)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeBadRequest, "Invalid JSON body", nil)
		return false
	}
	return true
}

// validateRequest runs the struct's validate tags and answers 400 with the
// per-field messages on failure.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	verr := validation.ValidateStruct(v)
	if verr == nil {
		return true
	}
	details := make(map[string]interface{}, len(verr.Errors()))
	for field, msg := range verr.Fields() {
		details[field] = msg
	}
	respondErrorDetails(w, r, http.StatusBadRequest, CodeValidation, verr.First(), details, nil)
	return false
}

// getIntParam parses a query parameter, clamping it to [1, max] and
// falling back to def when absent or malformed.
func getIntParam(r *http.Request, key string, def, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
