/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/andreyvit/diff"

	"github.com/mpetrenko/taphouse/pkg/tap"
)

func TestParseCommandStart(t *testing.T) {
	cmd, err := ParseCommand("start krem 3 Session IPA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Name != "start" || cmd.Location != "krem" || cmd.Tap != 3 {
		t.Errorf("bad target: %+v", cmd)
	}
	if cmd.Product != "Session IPA" {
		t.Errorf("multi-word product lost: %q", cmd.Product)
	}
}

func TestParseCommandStop(t *testing.T) {
	cmd, err := ParseCommand("stop warsaw 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Location != "warsaw" || cmd.Tap != 7 {
		t.Errorf("bad target: %+v", cmd)
	}
}

func TestParseCommandHistory(t *testing.T) {
	cmd, err := ParseCommand("history krem 0 1200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.From != "0" || cmd.To != "1200" {
		t.Errorf("window lost: %+v", cmd)
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []string{
		"",
		"pour krem 3",
		"start krem 3",
		"stop krem three",
		"history krem 0",
		"taps",
	}

	for _, line := range tests {
		if _, err := ParseCommand(line); err == nil {
			t.Errorf("wanted an error for %q", line)
		}
	}
}

func TestCSVWriterOutput(t *testing.T) {
	taps := TapsResult{
		2: {State: tap.Active, Product: "IPA"},
		1: {State: tap.Stopped},
	}

	var buf bytes.Buffer
	NewOutputWriter(&buf, "csv").Write(taps)

	expected := strings.Join([]string{
		"tap,state,product",
		"1,STOPPED,",
		"2,ACTIVE,IPA",
		"",
	}, "\n")

	if actual := buf.String(); actual != expected {
		t.Errorf("unexpected csv output:\n%s", diff.LineDiff(expected, actual))
	}
}

func TestJSONWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	NewOutputWriter(&buf, "json").Write(ProductsResult{"Lager", "IPA"})

	if got := strings.TrimSpace(buf.String()); got != `["Lager","IPA"]` {
		t.Errorf("unexpected json output: %s", got)
	}
}

func TestHistoryResultOrdering(t *testing.T) {
	report := HistoryResult{
		Report: map[int]tap.Utilization{
			10: {ActivePct: 75, StopPct: 25},
			2:  {StopPct: 100},
		},
		Events: map[int][]tap.Event{
			10: {{Kind: tap.Start}, {Kind: tap.Stop}},
		},
	}

	values := report.Values()
	if len(values) != 2 || values[0][0] != "2" || values[1][0] != "10" {
		t.Errorf("taps should sort numerically, got %v", values)
	}
	if values[1][1] != "75" || values[1][3] != "2" {
		t.Errorf("unexpected row for tap 10: %v", values[1])
	}
}
