/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tap

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// LocationConfig describes one bar location and its fixed tap count.
type LocationConfig struct {
	Code string
	Name string
	Taps int
}

// Board owns all tap state and the event log for every configured
// location. Locations are fixed at construction; taps are created stopped
// and are never deleted.
//
// Each location is an independent shard with its own lock, so requests
// against different locations never contend. Within a location, the
// registry update and the log append happen under one critical section.
type Board struct {
	log    zerolog.Logger
	shards map[string]*shard
	order  []string
}

type shard struct {
	mu     sync.RWMutex
	config LocationConfig
	taps   map[int]TapState
	events []Event
	seq    uint64
}

// LocationStats is a point-in-time summary of one location, used by the
// metrics collector.
type LocationStats struct {
	Taps   int
	Active int
	Events int
}

func NewBoard(log zerolog.Logger, locations []LocationConfig) *Board {
	b := &Board{
		log:    log,
		shards: make(map[string]*shard, len(locations)),
	}

	for _, loc := range locations {
		taps := make(map[int]TapState, loc.Taps)
		for i := 1; i <= loc.Taps; i++ {
			taps[i] = TapState{State: Stopped}
		}
		b.shards[loc.Code] = &shard{config: loc, taps: taps}
		b.order = append(b.order, loc.Code)
	}
	sort.Strings(b.order)

	return b
}

// Locations lists the configured locations in code order.
func (b *Board) Locations() []LocationConfig {
	ret := make([]LocationConfig, 0, len(b.order))
	for _, code := range b.order {
		ret = append(ret, b.shards[code].config)
	}
	return ret
}

func (b *Board) shardFor(location string) (*shard, error) {
	s, ok := b.shards[location]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownLocation, "%q", location)
	}
	return s, nil
}

// Apply validates e, appends it to the location's event log and updates
// the tap's state, as one atomic unit. The stored event (with its
// assigned ID, timestamp and sequence) and the new tap state are
// returned. No state changes on error.
func (b *Board) Apply(e Event) (Event, TapState, error) {
	s, err := b.shardFor(e.Location)
	if err != nil {
		return Event{}, TapState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.taps[e.Tap]
	if !ok {
		return Event{}, TapState{}, errors.Wrapf(ErrUnknownTap, "%s/%d", e.Location, e.Tap)
	}

	if !e.Kind.valid() {
		return Event{}, TapState{}, errors.Wrapf(ErrInvalidEvent, "unknown kind %q", e.Kind)
	}

	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	// A client-supplied timestamp that predates the tap's latest event
	// would make replay order diverge from application order, so the log
	// could no longer reconstruct the registry. Reject it.
	if last, ok := s.lastEventFor(e.Tap); ok && e.Time.Before(last.Time) {
		return Event{}, TapState{}, errors.Wrapf(ErrInvalidEvent,
			"timestamp %s predates the tap's latest event at %s", e.Time, last.Time)
	}

	next, err := Transition(cur, e)
	if err != nil {
		return Event{}, TapState{}, err
	}
	if e.Kind == Stop {
		e.Product = ""
	}

	s.seq++
	e.ID = uuid.NewString()
	e.Seq = s.seq

	s.insertEvent(e)
	s.taps[e.Tap] = next

	b.log.Debug().
		Str("location", e.Location).
		Int("tap", e.Tap).
		Str("kind", string(e.Kind)).
		Str("product", e.Product).
		Msg("applied tap event")

	return e, next, nil
}

// Taps returns a snapshot of the current state of every tap at location.
func (b *Board) Taps(location string) (map[int]TapState, error) {
	s, err := b.shardFor(location)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ret := make(map[int]TapState, len(s.taps))
	for id, state := range s.taps {
		ret[id] = state
	}
	return ret, nil
}

// Events returns the location's events in [from, to], both ends
// inclusive, ascending by (timestamp, seq).
func (b *Board) Events(location string, from, to time.Time) ([]Event, error) {
	s, err := b.shardFor(location)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	lo := sort.Search(len(s.events), func(i int) bool {
		return !s.events[i].Time.Before(from)
	})
	hi := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Time.After(to)
	})
	if lo >= hi {
		return []Event{}, nil
	}

	ret := make([]Event, hi-lo)
	copy(ret, s.events[lo:hi])
	return ret, nil
}

// Stats summarizes every location for the metrics collector.
func (b *Board) Stats() map[string]LocationStats {
	ret := make(map[string]LocationStats, len(b.shards))

	for code, s := range b.shards {
		s.mu.RLock()
		stats := LocationStats{Taps: len(s.taps), Events: len(s.events)}
		for _, state := range s.taps {
			if state.State == Active {
				stats.Active++
			}
		}
		s.mu.RUnlock()
		ret[code] = stats
	}

	return ret
}

// lastEventFor finds the latest event for one tap. Callers must hold the
// shard lock.
func (s *shard) lastEventFor(tap int) (Event, bool) {
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].Tap == tap {
			return s.events[i], true
		}
	}
	return Event{}, false
}

// insertEvent keeps the shard's event slice ordered by (time, seq).
// Events usually arrive in order, so the common case appends. Callers
// must hold the shard lock.
func (s *shard) insertEvent(e Event) {
	i := sort.Search(len(s.events), func(i int) bool {
		if s.events[i].Time.Equal(e.Time) {
			return s.events[i].Seq > e.Seq
		}
		return s.events[i].Time.After(e.Time)
	})

	s.events = append(s.events, Event{})
	copy(s.events[i+1:], s.events[i:])
	s.events[i] = e
}
