/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mpetrenko/taphouse/pkg/tap"
)

type boardStatsCollector struct {
	board *tap.Board

	taps       *prometheus.Desc
	activeTaps *prometheus.Desc
	events     *prometheus.Desc
}

func NewBoardStatsCollector(board *tap.Board) prometheus.Collector {
	return &boardStatsCollector{
		board: board,
		taps: prometheus.NewDesc(
			"taphouse_location_taps",
			"Number of registered taps at a location.",
			[]string{"location"}, nil,
		),
		activeTaps: prometheus.NewDesc(
			"taphouse_location_taps_active",
			"Number of taps currently pouring at a location.",
			[]string{"location"}, nil,
		),
		events: prometheus.NewDesc(
			"taphouse_location_events",
			"Number of tap events recorded for a location.",
			[]string{"location"}, nil,
		),
	}
}

// Describe implements Collector.
func (c *boardStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.taps
	ch <- c.activeTaps
	ch <- c.events
}

// Collect implements Collector.
func (c *boardStatsCollector) Collect(ch chan<- prometheus.Metric) {
	for location, stats := range c.board.Stats() {
		ch <- prometheus.MustNewConstMetric(c.taps, prometheus.GaugeValue, float64(stats.Taps), location)
		ch <- prometheus.MustNewConstMetric(c.activeTaps, prometheus.GaugeValue, float64(stats.Active), location)
		ch <- prometheus.MustNewConstMetric(c.events, prometheus.GaugeValue, float64(stats.Events), location)
	}
}
