/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

// Package sales produces the aggregate sales figures shown on the
// dashboard, either from a seeded table or from the external POS
// reporting API.
package sales

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
)

var ErrUnknownLocation = errors.New("unknown location")

// Report is the per-location metrics block the dashboard renders. Field
// names follow the front-end's JSON contract.
type Report struct {
	Revenue      float64 `json:"revenue"`
	Margin       float64 `json:"margin"`
	Profit       float64 `json:"profit"`
	Checks       int     `json:"checks"`
	AvgCheck     float64 `json:"avgCheck"`
	TapStatus    string  `json:"tapStatus"`
	TapShare     float64 `json:"tapShare"`
	PackShare    float64 `json:"packShare"`
	KitchenShare float64 `json:"kitchenShare"`
}

// Gateway resolves the metrics report for one location.
type Gateway interface {
	Metrics(ctx context.Context, location string) (Report, error)
}

// UpstreamError reports a failed call to the POS system. It carries the
// upstream's status code and message so the boundary can surface them.
type UpstreamError struct {
	Code    int
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("pos upstream unavailable (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("pos upstream unavailable: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
