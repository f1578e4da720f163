/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tap

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func testBoard() *Board {
	return NewBoard(zerolog.Nop(), []LocationConfig{
		{Code: "krem", Name: "Kremenchuk", Taps: 12},
		{Code: "warsaw", Name: "Warsaw", Taps: 12},
	})
}

func ts(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func TestApplyStart(t *testing.T) {
	board := testBoard()

	stored, state, err := board.Apply(Event{Location: "krem", Tap: 3, Kind: Start, Product: "IPA", Time: ts(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.State != Active || state.Product != "IPA" {
		t.Errorf("wanted {ACTIVE IPA}, got {%s %s}", state.State, state.Product)
	}
	if stored.ID == "" || stored.Seq == 0 {
		t.Errorf("stored event missing ID or seq: %+v", stored)
	}
}

func TestApplyAssignsTimestamp(t *testing.T) {
	board := testBoard()

	before := time.Now()
	stored, _, err := board.Apply(Event{Location: "krem", Tap: 1, Kind: Start, Product: "Lager"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Time.Before(before) {
		t.Errorf("wanted a server-assigned timestamp, got %s", stored.Time)
	}
}

func TestApplyUnknownLocation(t *testing.T) {
	board := testBoard()

	_, _, err := board.Apply(Event{Location: "lviv", Tap: 1, Kind: Start, Product: "IPA"})
	if !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("wanted ErrUnknownLocation, got %v", err)
	}
}

func TestApplyUnknownTap(t *testing.T) {
	board := testBoard()

	_, _, err := board.Apply(Event{Location: "krem", Tap: 13, Kind: Start, Product: "IPA"})
	if !errors.Is(err, ErrUnknownTap) {
		t.Errorf("wanted ErrUnknownTap, got %v", err)
	}

	// Nothing was recorded.
	events, err := board.Events("krem", ts(0), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("wanted an untouched log, found %d events", len(events))
	}
}

func TestApplyRejectsBackdatedEvent(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 1, Kind: Start, Product: "IPA", Time: ts(100)})
	_, _, err := board.Apply(Event{Location: "krem", Tap: 1, Kind: Stop, Time: ts(50)})
	if !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("wanted ErrInvalidEvent for a backdated event, got %v", err)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 2, Kind: Start, Product: "IPA", Time: ts(0)})
	_, first, err := board.Apply(Event{Location: "krem", Tap: 2, Kind: Stop, Time: ts(10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, second, err := board.Apply(Event{Location: "krem", Tap: 2, Kind: Stop, Time: ts(20)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second || second.State != Stopped || second.Product != "" {
		t.Errorf("wanted {STOPPED} both times, got %+v then %+v", first, second)
	}
}

func TestStopWithoutStartIsRecorded(t *testing.T) {
	board := testBoard()

	_, state, err := board.Apply(Event{Location: "warsaw", Tap: 5, Kind: Stop, Time: ts(0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.State != Stopped {
		t.Errorf("wanted STOPPED, got %s", state.State)
	}

	events, err := board.Events("warsaw", ts(0), ts(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("wanted the no-op STOP in the log, found %d events", len(events))
	}
}

func TestEventsInclusiveBounds(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 1, Kind: Start, Product: "IPA", Time: ts(100)})
	mustApply(t, board, Event{Location: "krem", Tap: 1, Kind: Stop, Time: ts(200)})
	mustApply(t, board, Event{Location: "krem", Tap: 1, Kind: Start, Product: "Stout", Time: ts(300)})

	events, err := board.Events("krem", ts(100), ts(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("wanted both boundary events, got %d", len(events))
	}
	if !events[0].Time.Equal(ts(100)) || !events[1].Time.Equal(ts(200)) {
		t.Errorf("wanted events at 100 and 200, got %s and %s", events[0].Time, events[1].Time)
	}
}

func TestEventsOrderedBySeqOnEqualTimestamps(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 1, Kind: Start, Product: "IPA", Time: ts(100)})
	mustApply(t, board, Event{Location: "krem", Tap: 2, Kind: Start, Product: "Stout", Time: ts(100)})

	events, err := board.Events("krem", ts(100), ts(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 || events[0].Seq >= events[1].Seq {
		t.Errorf("wanted insertion order on equal timestamps, got %+v", events)
	}
}

// Replaying the log must always reproduce the registry.
func TestLogReplayMatchesRegistry(t *testing.T) {
	board := testBoard()

	script := []Event{
		{Location: "krem", Tap: 1, Kind: Start, Product: "IPA", Time: ts(10)},
		{Location: "krem", Tap: 2, Kind: Start, Product: "Stout", Time: ts(20)},
		{Location: "krem", Tap: 1, Kind: Change, Product: "Porter", Time: ts(30)},
		{Location: "krem", Tap: 3, Kind: Stop, Time: ts(40)},
		{Location: "krem", Tap: 2, Kind: Stop, Time: ts(50)},
		{Location: "krem", Tap: 1, Kind: Stop, Time: ts(60)},
		{Location: "krem", Tap: 1, Kind: Start, Product: "Pilsner", Time: ts(70)},
	}
	for _, e := range script {
		mustApply(t, board, e)
	}

	events, err := board.Events("krem", ts(0), ts(1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	replayed := map[int]TapState{}
	for _, e := range events {
		next, err := Transition(replayed[e.Tap], e)
		if err != nil {
			t.Fatalf("replay failed: %v", err)
		}
		replayed[e.Tap] = next
	}

	taps, err := board.Taps("krem")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for id, want := range replayed {
		if taps[id] != want {
			t.Errorf("tap %d: registry %+v diverged from replay %+v", id, taps[id], want)
		}
	}
}

func TestTapsSnapshotIsCopy(t *testing.T) {
	board := testBoard()

	taps, err := board.Taps("krem")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	taps[1] = TapState{State: Active, Product: "Bogus"}

	again, _ := board.Taps("krem")
	if again[1].State != Stopped {
		t.Error("mutating a snapshot leaked into the board")
	}
}

func mustApply(t *testing.T, b *Board, e Event) {
	t.Helper()
	if _, _, err := b.Apply(e); err != nil {
		t.Fatalf("apply %+v: %v", e, err)
	}
}
