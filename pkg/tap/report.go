/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tap

import (
	"time"
)

// Utilization is the share of a queried window a tap spent pouring versus
// stopped. The two percentages sum to 100 for any window with positive
// duration, and are both 0 for an empty window.
type Utilization struct {
	ActivePct float64 `json:"active_pct"`
	StopPct   float64 `json:"stop_pct"`
}

// HistoryReport holds per-tap utilization for a queried window, plus the
// raw in-window events for display.
type HistoryReport struct {
	Report map[int]Utilization `json:"report"`
	Events map[int][]Event     `json:"events"`
}

// History reconstructs per-tap active/stopped durations for location over
// the closed interval [from, to].
//
// The state a tap carries into the window is derived from its events
// before from (no events means stopped, the initial default), and the
// state after the last in-window event extends to the window's end. A
// window with from after to produces a zeroed report.
func (b *Board) History(location string, from, to time.Time) (*HistoryReport, error) {
	s, err := b.shardFor(location)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	report := &HistoryReport{
		Report: make(map[int]Utilization, len(s.taps)),
		Events: make(map[int][]Event, len(s.taps)),
	}

	for id := range s.taps {
		util, window := utilization(s.eventsForTap(id, to), from, to)
		report.Report[id] = util
		report.Events[id] = window
	}

	return report, nil
}

// eventsForTap collects one tap's events with timestamp <= to, in
// ascending order. Callers must hold the shard lock.
func (s *shard) eventsForTap(tap int, to time.Time) []Event {
	var ret []Event
	for _, e := range s.events {
		if e.Time.After(to) {
			break
		}
		if e.Tap == tap {
			ret = append(ret, e)
		}
	}
	return ret
}

// utilization walks one tap's events (all with timestamp <= to) and
// splits [from, to] into active and stopped durations. It returns the
// percentage split and the in-window slice of events.
func utilization(evs []Event, from, to time.Time) (Utilization, []Event) {
	if from.After(to) {
		return Utilization{}, []Event{}
	}

	// State carried into the window is the resulting state of the last
	// event strictly before from.
	carried := Stopped
	i := 0
	for ; i < len(evs) && evs[i].Time.Before(from); i++ {
		carried = evs[i].Kind.Resulting()
	}

	window := make([]Event, len(evs)-i)
	copy(window, evs[i:])

	var active, stopped time.Duration
	current := carried
	boundary := from

	for _, e := range window {
		if current == Active {
			active += e.Time.Sub(boundary)
		} else {
			stopped += e.Time.Sub(boundary)
		}
		current = e.Kind.Resulting()
		boundary = e.Time
	}

	if current == Active {
		active += to.Sub(boundary)
	} else {
		stopped += to.Sub(boundary)
	}

	total := active + stopped
	if total == 0 {
		return Utilization{}, window
	}

	return Utilization{
		ActivePct: 100 * float64(active) / float64(total),
		StopPct:   100 * float64(stopped) / float64(total),
	}, window
}
