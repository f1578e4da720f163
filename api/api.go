/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package taphouse

import (
	"github.com/mpetrenko/taphouse/pkg/sales"
	"github.com/mpetrenko/taphouse/pkg/server"
	"github.com/mpetrenko/taphouse/pkg/tap"
)

type Client interface {
	Locations() ([]server.LocationInfo, error)
	Taps(location string) (map[int]tap.TapState, error)
	PostEvent(req server.TapEventRequest) (server.TapEventResponse, error)
	History(location, from, to string) (*tap.HistoryReport, error)
	SalesMetrics(location string) (sales.Report, error)
	Products() ([]string, error)
	AddProduct(name string) ([]string, error)
}

// NewClient creates a Client for a taphouse server. The client is thread
// safe; net/http pools connections underneath it.
func NewClient(baseURL string) (Client, error) {
	return newRemoteClient(baseURL)
}
