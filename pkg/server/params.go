/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var numberFormats = [...]string{
	time.RFC3339,
	time.RFC3339Nano,
	time.RFC822,
	time.RFC822Z,
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
}

var letterFormats = [...]string{
	"Jan 02, 2006",
	time.RFC850,
	time.UnixDate,
	time.RFC1123,
	time.RFC1123Z,
	time.Stamp,
}

// ParseTimestamp resolves a from/to query parameter. Plain integers are
// unix seconds; anything else is matched against the common timestamp
// layouts.
func ParseTimestamp(some string) (time.Time, error) {
	if some == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	if sec, err := strconv.ParseInt(some, 10, 64); err == nil {
		return time.Unix(sec, 0), nil
	}

	first, _ := utf8.DecodeRuneInString(some)
	var found time.Time

	switch {
	case unicode.IsDigit(first):
		for _, theFmt := range numberFormats {
			tm, err := time.Parse(theFmt, some)
			if err == nil {
				found = tm
				break
			}
		}
	default:
		for _, theFmt := range letterFormats {
			tm, err := time.Parse(theFmt, some)
			if err == nil {
				found = tm
				break
			}
		}
	}

	if found.IsZero() {
		return found, errors.Errorf("timestamp %q did not match a known layout", some)
	}

	return found, nil
}
