/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mpetrenko/taphouse/pkg/catalog"
	"github.com/mpetrenko/taphouse/pkg/sales"
	"github.com/mpetrenko/taphouse/pkg/tap"
)

type Server struct {
	log     zerolog.Logger
	metrics MetricsStore

	board   *tap.Board
	catalog *catalog.Catalog
	sales   sales.Gateway

	port        int
	metricsPort int
	staticDir   string
}

func New(log zerolog.Logger, board *tap.Board, cat *catalog.Catalog, gateway sales.Gateway, port, metricsPort int, staticDir string) *Server {
	metrics := NewMetricsStore()
	metrics.RegisterCollector(NewBoardStatsCollector(board))

	return &Server{
		log:         log,
		metrics:     metrics,
		board:       board,
		catalog:     cat,
		sales:       gateway,
		port:        port,
		metricsPort: metricsPort,
		staticDir:   staticDir,
	}
}

// Router assembles the dashboard's HTTP surface: the JSON API under
// /api/v1 and the static bundle at the root.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestMetrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/metrics/{location}", s.handleSalesMetrics)
		r.Get("/products", s.handleListProducts)
		r.Post("/products", s.handleAddProduct)
		r.Get("/locations", s.handleLocations)
		r.Get("/taps", s.handleTaps)
		r.Post("/taps/event", s.handleTapEvent)
		r.Get("/taps/history", s.handleHistory)
	})

	r.Get("/healthz", s.handleHealthz)

	if s.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}

	return r
}

// ListenAndServe serves the dashboard until the listener fails.
func (s *Server) ListenAndServe() error {
	s.log.Info().Int("port", s.port).Str("static", s.staticDir).Msg("listening for dashboard requests")
	return http.ListenAndServe(fmt.Sprintf(":%d", s.port), s.Router())
}

// ServeMetrics exposes the prometheus registry on its own port.
func (s *Server) ServeMetrics() {
	s.log.Info().Int("port", s.metricsPort).Msg("/metrics endpoint started")
	http.Handle("/metrics", s.metrics.Handler())
	http.ListenAndServe(fmt.Sprintf(":%d", s.metricsPort), nil)
}

// requestMetrics counts requests and observes response times under the
// matched chi route pattern.
func (s *Server) requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.IncRequests(route, r.Method)
		s.metrics.ObserveResponseNS(route, r.Method, time.Since(start).Nanoseconds())
	})
}
