/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package taphouse

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/mpetrenko/taphouse/pkg/sales"
	"github.com/mpetrenko/taphouse/pkg/server"
	"github.com/mpetrenko/taphouse/pkg/tap"
)

// A RemoteClient talks to a running taphouse server over its JSON API.
type RemoteClient struct {
	base   string
	client *http.Client
}

func newRemoteClient(baseURL string) (*RemoteClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing server URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("unsupported scheme %q", parsed.Scheme)
	}

	return &RemoteClient{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *RemoteClient) Locations() ([]server.LocationInfo, error) {
	var ret []server.LocationInfo
	err := c.get("/api/v1/locations", &ret)
	return ret, err
}

func (c *RemoteClient) Taps(location string) (map[int]tap.TapState, error) {
	var ret map[int]tap.TapState
	err := c.get("/api/v1/taps?location="+url.QueryEscape(location), &ret)
	return ret, err
}

func (c *RemoteClient) PostEvent(req server.TapEventRequest) (server.TapEventResponse, error) {
	var ret server.TapEventResponse
	err := c.post("/api/v1/taps/event", req, &ret)
	return ret, err
}

func (c *RemoteClient) History(location, from, to string) (*tap.HistoryReport, error) {
	params := url.Values{}
	params.Set("location", location)
	params.Set("from", from)
	params.Set("to", to)

	var ret tap.HistoryReport
	if err := c.get("/api/v1/taps/history?"+params.Encode(), &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

func (c *RemoteClient) SalesMetrics(location string) (sales.Report, error) {
	var ret sales.Report
	err := c.get("/api/v1/metrics/"+url.PathEscape(location), &ret)
	return ret, err
}

func (c *RemoteClient) Products() ([]string, error) {
	var ret []string
	err := c.get("/api/v1/products", &ret)
	return ret, err
}

func (c *RemoteClient) AddProduct(name string) ([]string, error) {
	var ret []string
	err := c.post("/api/v1/products", map[string]string{"name": name}, &ret)
	return ret, err
}

func (c *RemoteClient) get(path string, v interface{}) error {
	resp, err := c.client.Get(c.base + path)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	return c.decode(resp, v)
}

func (c *RemoteClient) post(path string, body, v interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "encoding request")
	}

	resp, err := c.client.Post(c.base+path, "application/json", bytes.NewReader(encoded))
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	return c.decode(resp, v)
}

// decode unpacks a response, turning the server's error envelope into an
// error value.
func (c *RemoteClient) decode(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}

	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Error server.APIError `json:"error"`
		}
		if err := json.Unmarshal(contents, &envelope); err == nil && envelope.Error.Message != "" {
			return errors.Errorf("%s: %s", envelope.Error.Code, envelope.Error.Message)
		}
		return errors.Errorf("server returned %d", resp.StatusCode)
	}

	if err := json.Unmarshal(contents, v); err != nil {
		return errors.Wrap(err, "unable to unmarshal response")
	}
	return nil
}
