/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sales

import (
	"context"

	"github.com/pkg/errors"
)

// defaultLocation is the entry an unknown location falls back to when the
// gateway is not strict. The first dashboard shipped with this behavior
// and the front-end relies on it; strict mode exists because the fallback
// also masks typoed location codes as valid ones.
const defaultLocation = "krem"

// seededReports carries the figures from the original dashboard.
var seededReports = map[string]Report{
	"krem": {
		Revenue:      1245000,
		Margin:       42.5,
		Profit:       529125,
		Checks:       3456,
		AvgCheck:     360,
		TapStatus:    "Работает",
		TapShare:     35.2,
		PackShare:    45.8,
		KitchenShare: 19.0,
	},
	"warsaw": {
		Revenue:      986000,
		Margin:       38.2,
		Profit:       376652,
		Checks:       2890,
		AvgCheck:     341,
		TapStatus:    "Остановлен",
		TapShare:     28.5,
		PackShare:    52.3,
		KitchenShare: 19.2,
	},
}

// Static serves the seeded metrics table.
type Static struct {
	reports map[string]Report
	strict  bool
}

func NewStatic(strict bool) *Static {
	reports := make(map[string]Report, len(seededReports))
	for k, v := range seededReports {
		reports[k] = v
	}
	return &Static{reports: reports, strict: strict}
}

func (g *Static) Metrics(_ context.Context, location string) (Report, error) {
	if report, ok := g.reports[location]; ok {
		return report, nil
	}
	if g.strict {
		return Report{}, errors.Wrapf(ErrUnknownLocation, "%q", location)
	}
	return g.reports[defaultLocation], nil
}
