/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package tap

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestHistoryActiveStopSplit(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 3, Kind: Start, Product: "IPA", Time: ts(0)})
	mustApply(t, board, Event{Location: "krem", Tap: 3, Kind: Change, Product: "Stout", Time: ts(600)})
	mustApply(t, board, Event{Location: "krem", Tap: 3, Kind: Stop, Time: ts(900)})

	report, err := board.History("krem", ts(0), ts(1200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	util := report.Report[3]
	if !almostEqual(util.ActivePct, 75) || !almostEqual(util.StopPct, 25) {
		t.Errorf("wanted {75 25}, got {%v %v}", util.ActivePct, util.StopPct)
	}
	if len(report.Events[3]) != 3 {
		t.Errorf("wanted all 3 events in the window, got %d", len(report.Events[3]))
	}
}

func TestHistoryNoEventsIsFullyStopped(t *testing.T) {
	board := testBoard()

	report, err := board.History("krem", ts(100), ts(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	util := report.Report[7]
	if !almostEqual(util.ActivePct, 0) || !almostEqual(util.StopPct, 100) {
		t.Errorf("wanted {0 100}, got {%v %v}", util.ActivePct, util.StopPct)
	}
	if len(report.Events[7]) != 0 {
		t.Errorf("wanted no events, got %d", len(report.Events[7]))
	}
}

func TestHistoryCarriesStateIntoWindow(t *testing.T) {
	board := testBoard()

	// Started before the window and never stopped: active the whole time.
	mustApply(t, board, Event{Location: "krem", Tap: 1, Kind: Start, Product: "IPA", Time: ts(50)})

	report, err := board.History("krem", ts(100), ts(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	util := report.Report[1]
	if !almostEqual(util.ActivePct, 100) || !almostEqual(util.StopPct, 0) {
		t.Errorf("wanted {100 0}, got {%v %v}", util.ActivePct, util.StopPct)
	}
	if len(report.Events[1]) != 0 {
		t.Errorf("pre-window event leaked into the window slice")
	}
}

func TestHistoryEventAtWindowStart(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 4, Kind: Start, Product: "IPA", Time: ts(100)})

	report, err := board.History("krem", ts(100), ts(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The boundary event is in the window slice and the tap counts as
	// active from that instant.
	if len(report.Events[4]) != 1 {
		t.Fatalf("wanted the boundary event included, got %d events", len(report.Events[4]))
	}
	util := report.Report[4]
	if !almostEqual(util.ActivePct, 100) || !almostEqual(util.StopPct, 0) {
		t.Errorf("wanted {100 0}, got {%v %v}", util.ActivePct, util.StopPct)
	}
}

func TestHistoryZeroDurationWindow(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 2, Kind: Start, Product: "IPA", Time: ts(100)})

	report, err := board.History("krem", ts(100), ts(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	util := report.Report[2]
	if util.ActivePct != 0 || util.StopPct != 0 {
		t.Errorf("wanted {0 0} on a zero-duration window, got {%v %v}", util.ActivePct, util.StopPct)
	}
}

func TestHistoryInvertedWindow(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 2, Kind: Start, Product: "IPA", Time: ts(100)})

	report, err := board.History("krem", ts(500), ts(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for id, util := range report.Report {
		if util.ActivePct != 0 || util.StopPct != 0 {
			t.Errorf("tap %d: wanted a zeroed report on from > to, got {%v %v}", id, util.ActivePct, util.StopPct)
		}
	}
	for id, events := range report.Events {
		if len(events) != 0 {
			t.Errorf("tap %d: wanted no events on from > to, got %d", id, len(events))
		}
	}
}

func TestHistoryRedundantStopContributesNothing(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "krem", Tap: 6, Kind: Stop, Time: ts(100)})
	mustApply(t, board, Event{Location: "krem", Tap: 6, Kind: Stop, Time: ts(150)})

	report, err := board.History("krem", ts(0), ts(200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	util := report.Report[6]
	if !almostEqual(util.ActivePct, 0) || !almostEqual(util.StopPct, 100) {
		t.Errorf("wanted {0 100}, got {%v %v}", util.ActivePct, util.StopPct)
	}
	if len(report.Events[6]) != 2 {
		t.Errorf("both STOP events should be in the window slice, got %d", len(report.Events[6]))
	}
}

func TestHistoryPercentagesSumTo100(t *testing.T) {
	board := testBoard()

	mustApply(t, board, Event{Location: "warsaw", Tap: 1, Kind: Start, Product: "IPA", Time: ts(7)})
	mustApply(t, board, Event{Location: "warsaw", Tap: 1, Kind: Stop, Time: ts(13)})
	mustApply(t, board, Event{Location: "warsaw", Tap: 1, Kind: Start, Product: "Lager", Time: ts(29)})

	report, err := board.History("warsaw", ts(0), ts(101))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for id, util := range report.Report {
		if !almostEqual(util.ActivePct+util.StopPct, 100) {
			t.Errorf("tap %d: percentages sum to %v, want 100", id, util.ActivePct+util.StopPct)
		}
	}
}

func TestHistoryUnknownLocation(t *testing.T) {
	board := testBoard()

	if _, err := board.History("lviv", ts(0), ts(100)); err == nil {
		t.Error("wanted an error for an unknown location")
	}
}
