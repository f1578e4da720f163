/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tap

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrUnknownLocation = errors.New("unknown location")
	ErrUnknownTap      = errors.New("unknown tap")
	ErrInvalidEvent    = errors.New("invalid event")
)

// State is the on/off state of a single tap.
type State uint8

const (
	Stopped State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "ACTIVE"
	}
	return "STOPPED"
}

func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *State) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"ACTIVE"`:
		*s = Active
	case `"STOPPED"`:
		*s = Stopped
	default:
		return errors.Wrapf(ErrInvalidEvent, "bad state %s", b)
	}
	return nil
}

// Kind is the kind of state transition recorded for a tap.
type Kind string

const (
	Start  Kind = "START"
	Stop   Kind = "STOP"
	Change Kind = "CHANGE"
)

// Resulting is the tap state a transition of this kind leaves behind.
func (k Kind) Resulting() State {
	if k == Stop {
		return Stopped
	}
	return Active
}

func (k Kind) valid() bool {
	switch k {
	case Start, Stop, Change:
		return true
	}
	return false
}

// TapState is the current state of one tap. Product is empty whenever the
// tap is stopped.
type TapState struct {
	State   State  `json:"state"`
	Product string `json:"product,omitempty"`
}

// Event is one recorded state transition. Events are immutable once
// appended; Seq disambiguates events sharing a timestamp.
type Event struct {
	ID       string    `json:"id,omitempty"`
	Location string    `json:"location"`
	Tap      int       `json:"tap"`
	Kind     Kind      `json:"kind"`
	Product  string    `json:"product,omitempty"`
	Actor    string    `json:"actor,omitempty"`
	Time     time.Time `json:"timestamp"`
	Seq      uint64    `json:"seq,omitempty"`
}

// Transition computes the tap state after applying e to cur. It is a pure
// function; START and CHANGE require a product, STOP clears it.
func Transition(cur TapState, e Event) (TapState, error) {
	switch e.Kind {
	case Start, Change:
		if e.Product == "" {
			return cur, errors.Wrapf(ErrInvalidEvent, "%s event without a product", e.Kind)
		}
		return TapState{State: Active, Product: e.Product}, nil
	case Stop:
		return TapState{State: Stopped}, nil
	}
	return cur, errors.Wrapf(ErrInvalidEvent, "unknown kind %q", e.Kind)
}
