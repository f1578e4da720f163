/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package sales

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Placeholder figures for the fields the POS sales feed cannot produce.
// The dashboard renders them until the POS reporting API grows margin and
// category breakdowns.
const (
	placeholderMargin       = 40.0
	placeholderTapShare     = 33.0
	placeholderPackShare    = 47.0
	placeholderKitchenShare = 20.0
	placeholderTapStatus    = "Работает"
)

// saleItem is one line of the POS sales report.
type saleItem struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type salesResponse struct {
	Items []saleItem `json:"items"`
}

// Live queries the POS reporting API for today's sales and reduces the
// per-item lines to the dashboard's aggregate figures. Failures surface
// as *UpstreamError; there is no fallback to seeded data and no retry.
type Live struct {
	log    zerolog.Logger
	base   string
	client *http.Client
	now    func() time.Time
}

func NewLive(log zerolog.Logger, baseURL string, timeout time.Duration) *Live {
	return &Live{
		log:    log,
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

func (g *Live) Metrics(ctx context.Context, location string) (Report, error) {
	items, err := g.fetchToday(ctx, location)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for _, item := range items {
		report.Revenue += item.Total
		report.Checks += item.Count
	}
	if report.Checks > 0 {
		report.AvgCheck = report.Revenue / float64(report.Checks)
	}

	report.Margin = placeholderMargin
	report.Profit = report.Revenue * placeholderMargin / 100
	report.TapStatus = placeholderTapStatus
	report.TapShare = placeholderTapShare
	report.PackShare = placeholderPackShare
	report.KitchenShare = placeholderKitchenShare

	return report, nil
}

// fetchToday pulls the per-item sales lines for the fixed "today" window,
// local midnight up to now.
func (g *Live) fetchToday(ctx context.Context, location string) ([]saleItem, error) {
	now := g.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	params := url.Values{}
	params.Set("location", location)
	params.Set("from", midnight.Format(time.RFC3339))
	params.Set("to", now.Format(time.RFC3339))

	target := g.base + "/v1/reports/sales?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &UpstreamError{Message: "building pos request", Err: err}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error().Err(err).Str("url", target).Msg("pos request failed")
		return nil, &UpstreamError{Message: err.Error(), Err: errors.Wrap(err, "pos request")}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &UpstreamError{Code: resp.StatusCode, Message: "reading pos response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.log.Error().Int("status", resp.StatusCode).Str("url", target).Msg("pos returned an error")
		return nil, &UpstreamError{Code: resp.StatusCode, Message: upstreamMessage(body)}
	}

	var parsed salesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamError{Code: resp.StatusCode, Message: "malformed pos payload", Err: err}
	}

	return parsed.Items, nil
}

// upstreamMessage extracts a message from a POS error body, falling back
// to the raw body.
func upstreamMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return parsed.Message
	}
	return strings.TrimSpace(string(body))
}
