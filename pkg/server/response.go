/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Error codes carried in the error envelope.
const (
	ErrCodeValidation  = "VALIDATION_FAILED"
	ErrCodeNotFound    = "NOT_FOUND"
	ErrCodeUpstream    = "UPSTREAM_UNAVAILABLE"
	ErrCodeInternal    = "INTERNAL_ERROR"
	ErrCodeBadEncoding = "BAD_REQUEST_BODY"
)

// APIError is the error half of the response envelope.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Upstream carries the POS system's status code when the error
	// originated there.
	Upstream int `json:"upstream,omitempty"`
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("unable to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, apiErr APIError) {
	s.writeJSON(w, status, errorEnvelope{Error: apiErr})
}
