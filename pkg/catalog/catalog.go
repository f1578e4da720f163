/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package catalog

import (
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var ErrEmptyName = errors.New("empty product name")

// Catalog is the ordered set of known product names, deduplicated
// case-insensitively and persisted as a JSON array. The file is
// best-effort: a failed write keeps the in-memory list and logs a
// warning, a missing or corrupt file loads as an empty catalog.
type Catalog struct {
	mu    sync.Mutex
	log   zerolog.Logger
	path  string
	names []string
	seen  map[string]struct{}
}

// Load reads the catalog file at path. Load never fails; anything
// unreadable degrades to an empty catalog.
func Load(log zerolog.Logger, path string) *Catalog {
	c := &Catalog{
		log:  log,
		path: path,
		seen: make(map[string]struct{}),
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Str("path", path).Msg("unable to read product catalog, starting empty")
		}
		return c
	}

	var names []string
	if err := json.Unmarshal(contents, &names); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("corrupt product catalog, starting empty")
		return c
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := c.seen[key]; dup {
			continue
		}
		c.seen[key] = struct{}{}
		c.names = append(c.names, name)
	}

	return c
}

// Names returns the catalog in insertion order.
func (c *Catalog) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	ret := make([]string, len(c.names))
	copy(ret, c.names)
	return ret
}

// Add appends name to the catalog unless an entry already exists under a
// case-insensitive comparison. The full updated list is returned either
// way. The only error is an empty trimmed name.
func (c *Catalog) Add(name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	key := strings.ToLower(name)
	if _, dup := c.seen[key]; !dup {
		c.seen[key] = struct{}{}
		c.names = append(c.names, name)
		c.save()
	}

	ret := make([]string, len(c.names))
	copy(ret, c.names)
	return ret, nil
}

// save writes the catalog through a tmp file and a rename. Failures are
// logged, not returned; the in-memory catalog stays authoritative.
// Callers must hold the lock.
func (c *Catalog) save() {
	contents, err := json.Marshal(c.names)
	if err != nil {
		c.log.Warn().Err(err).Msg("unable to encode product catalog")
		return
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, contents, 0600); err != nil {
		c.log.Warn().Err(err).Str("path", tmpPath).Msg("unable to write product catalog")
		return
	}

	if err := os.Rename(tmpPath, c.path); err != nil {
		c.log.Warn().Err(err).Str("path", c.path).Msg("unable to replace product catalog")
	}
}
