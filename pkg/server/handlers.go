/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/mpetrenko/taphouse/pkg/catalog"
	"github.com/mpetrenko/taphouse/pkg/sales"
	"github.com/mpetrenko/taphouse/pkg/tap"
)

// LocationInfo describes one configured location for API consumers.
type LocationInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Taps int    `json:"taps"`
}

// TapEventRequest is the POST /taps/event body. Timestamp is optional;
// when empty the server assigns one.
type TapEventRequest struct {
	Location  string `json:"location"`
	Tap       int    `json:"tap"`
	Kind      string `json:"kind"`
	Product   string `json:"product,omitempty"`
	Actor     string `json:"actor,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// TapEventResponse returns the stored event next to the tap's new state.
type TapEventResponse struct {
	Event tap.Event    `json:"event"`
	State tap.TapState `json:"state"`
}

func (s *Server) handleSalesMetrics(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	report, err := s.sales.Metrics(r.Context(), location)
	if err != nil {
		var upstream *sales.UpstreamError
		switch {
		case errors.As(err, &upstream):
			s.log.Error().Err(err).Str("location", location).Msg("metrics upstream failed")
			s.writeError(w, http.StatusInternalServerError, APIError{
				Code:     ErrCodeUpstream,
				Message:  upstream.Message,
				Upstream: upstream.Code,
			})
		case errors.Is(err, sales.ErrUnknownLocation):
			s.writeError(w, http.StatusBadRequest, APIError{Code: ErrCodeValidation, Message: err.Error()})
		default:
			s.writeError(w, http.StatusInternalServerError, APIError{Code: ErrCodeInternal, Message: err.Error()})
		}
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.catalog.Names())
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, APIError{Code: ErrCodeBadEncoding, Message: err.Error()})
		return
	}

	names, err := s.catalog.Add(body.Name)
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyName) {
			s.writeError(w, http.StatusBadRequest, APIError{Code: ErrCodeValidation, Message: "product name must not be empty"})
			return
		}
		s.writeError(w, http.StatusInternalServerError, APIError{Code: ErrCodeInternal, Message: err.Error()})
		return
	}

	s.writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleLocations(w http.ResponseWriter, r *http.Request) {
	configs := s.board.Locations()
	ret := make([]LocationInfo, 0, len(configs))
	for _, c := range configs {
		ret = append(ret, LocationInfo{Code: c.Code, Name: c.Name, Taps: c.Taps})
	}
	s.writeJSON(w, http.StatusOK, ret)
}

func (s *Server) handleTaps(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")

	taps, err := s.board.Taps(location)
	if err != nil {
		s.writeTapError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, taps)
}

func (s *Server) handleTapEvent(w http.ResponseWriter, r *http.Request) {
	var body TapEventRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, APIError{Code: ErrCodeBadEncoding, Message: err.Error()})
		return
	}

	var when time.Time
	if body.Timestamp != "" {
		var err error
		when, err = ParseTimestamp(body.Timestamp)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, APIError{Code: ErrCodeValidation, Message: err.Error()})
			return
		}
	}

	stored, state, err := s.board.Apply(tap.Event{
		Location: body.Location,
		Tap:      body.Tap,
		Kind:     tap.Kind(body.Kind),
		Product:  body.Product,
		Actor:    body.Actor,
		Time:     when,
	})
	if err != nil {
		s.writeTapError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, TapEventResponse{Event: stored, State: state})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("location")

	from, err := ParseTimestamp(r.URL.Query().Get("from"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, APIError{Code: ErrCodeValidation, Message: "from: " + err.Error()})
		return
	}
	to, err := ParseTimestamp(r.URL.Query().Get("to"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, APIError{Code: ErrCodeValidation, Message: "to: " + err.Error()})
		return
	}

	report, err := s.board.History(location, from, to)
	if err != nil {
		s.writeTapError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeTapError maps board errors onto the envelope. Everything the board
// rejects is a client problem.
func (s *Server) writeTapError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tap.ErrUnknownLocation),
		errors.Is(err, tap.ErrUnknownTap),
		errors.Is(err, tap.ErrInvalidEvent):
		s.writeError(w, http.StatusBadRequest, APIError{Code: ErrCodeValidation, Message: err.Error()})
	default:
		s.writeError(w, http.StatusInternalServerError, APIError{Code: ErrCodeInternal, Message: err.Error()})
	}
}
