/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mpetrenko/taphouse/pkg/sales"
	"github.com/mpetrenko/taphouse/pkg/server"
	"github.com/mpetrenko/taphouse/pkg/tap"
)

// Printable is a result that the output writers can render.
type Printable interface {
	Headers() []string
	Values() [][]string
}

type LocationsResult []server.LocationInfo

func (r LocationsResult) Headers() []string {
	return []string{"code", "name", "taps"}
}

func (r LocationsResult) Values() [][]string {
	ret := make([][]string, 0, len(r))
	for _, loc := range r {
		ret = append(ret, []string{loc.Code, loc.Name, strconv.Itoa(loc.Taps)})
	}
	return ret
}

type TapsResult map[int]tap.TapState

func (r TapsResult) Headers() []string {
	return []string{"tap", "state", "product"}
}

func (r TapsResult) Values() [][]string {
	ids := make([]int, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	ret := make([][]string, 0, len(ids))
	for _, id := range ids {
		state := r[id]
		ret = append(ret, []string{strconv.Itoa(id), state.State.String(), state.Product})
	}
	return ret
}

type EventResult server.TapEventResponse

func (r EventResult) Headers() []string {
	return []string{"tap", "kind", "state", "product", "time"}
}

func (r EventResult) Values() [][]string {
	return [][]string{{
		strconv.Itoa(r.Event.Tap),
		string(r.Event.Kind),
		r.State.State.String(),
		r.State.Product,
		r.Event.Time.Format(time.RFC3339),
	}}
}

type HistoryResult tap.HistoryReport

func (r HistoryResult) Headers() []string {
	return []string{"tap", "active %", "stopped %", "events"}
}

func (r HistoryResult) Values() [][]string {
	ids := make([]int, 0, len(r.Report))
	for id := range r.Report {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	ret := make([][]string, 0, len(ids))
	for _, id := range ids {
		util := r.Report[id]
		ret = append(ret, []string{
			strconv.Itoa(id),
			humanize.FtoaWithDigits(util.ActivePct, 1),
			humanize.FtoaWithDigits(util.StopPct, 1),
			strconv.Itoa(len(r.Events[id])),
		})
	}
	return ret
}

type MetricsResult sales.Report

func (r MetricsResult) Headers() []string {
	return []string{"metric", "value"}
}

func (r MetricsResult) Values() [][]string {
	return [][]string{
		{"revenue", humanize.Commaf(r.Revenue)},
		{"margin", humanize.FtoaWithDigits(r.Margin, 1)},
		{"profit", humanize.Commaf(r.Profit)},
		{"checks", humanize.Comma(int64(r.Checks))},
		{"avg check", humanize.FtoaWithDigits(r.AvgCheck, 2)},
		{"tap status", r.TapStatus},
		{"tap share", humanize.FtoaWithDigits(r.TapShare, 1)},
		{"pack share", humanize.FtoaWithDigits(r.PackShare, 1)},
		{"kitchen share", humanize.FtoaWithDigits(r.KitchenShare, 1)},
	}
}

type ProductsResult []string

func (r ProductsResult) Headers() []string {
	return []string{"product"}
}

func (r ProductsResult) Values() [][]string {
	ret := make([][]string, 0, len(r))
	for _, name := range r {
		ret = append(ret, []string{name})
	}
	return ret
}
