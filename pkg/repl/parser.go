/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package repl

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	taphouse "github.com/mpetrenko/taphouse/api"
	"github.com/mpetrenko/taphouse/pkg/server"
)

// Command is one parsed REPL line.
type Command struct {
	Name     string
	Location string
	Tap      int
	Product  string
	From     string
	To       string

	// Actor is attached by the REPL from its configuration, not parsed
	// from the line.
	Actor string
}

// ParseCommand parses input from the command line.
//
// This function assumes there is no '\n'.
func ParseCommand(line string) (*Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := &Command{Name: strings.ToLower(fields[0])}
	args := fields[1:]

	switch cmd.Name {
	case "locations", "products":
		return cmd, nil
	case "taps", "metrics":
		if len(args) != 1 {
			return nil, errors.Errorf("usage: %s <location>", cmd.Name)
		}
		cmd.Location = args[0]
		return cmd, nil
	case "stop":
		if len(args) != 2 {
			return nil, errors.New("usage: stop <location> <tap>")
		}
		return cmd, cmd.parseTarget(args)
	case "start", "change":
		if len(args) < 3 {
			return nil, errors.Errorf("usage: %s <location> <tap> <product>", cmd.Name)
		}
		if err := cmd.parseTarget(args[:2]); err != nil {
			return nil, err
		}
		cmd.Product = strings.Join(args[2:], " ")
		return cmd, nil
	case "history":
		if len(args) != 3 {
			return nil, errors.New("usage: history <location> <from> <to>")
		}
		cmd.Location, cmd.From, cmd.To = args[0], args[1], args[2]
		return cmd, nil
	case "add":
		if len(args) < 1 {
			return nil, errors.New("usage: add <product name>")
		}
		cmd.Product = strings.Join(args, " ")
		return cmd, nil
	}

	return nil, errors.Errorf("unknown command %q", cmd.Name)
}

func (cmd *Command) parseTarget(args []string) error {
	cmd.Location = args[0]
	tapID, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Errorf("tap must be a number, got %q", args[1])
	}
	cmd.Tap = tapID
	return nil
}

// Run executes the command against a taphouse server.
func (cmd *Command) Run(c taphouse.Client) (Printable, error) {
	switch cmd.Name {
	case "locations":
		locations, err := c.Locations()
		if err != nil {
			return nil, err
		}
		return LocationsResult(locations), nil
	case "taps":
		taps, err := c.Taps(cmd.Location)
		if err != nil {
			return nil, err
		}
		return TapsResult(taps), nil
	case "start", "stop", "change":
		resp, err := c.PostEvent(server.TapEventRequest{
			Location: cmd.Location,
			Tap:      cmd.Tap,
			Kind:     strings.ToUpper(cmd.Name),
			Product:  cmd.Product,
			Actor:    cmd.Actor,
		})
		if err != nil {
			return nil, err
		}
		return EventResult(resp), nil
	case "history":
		report, err := c.History(cmd.Location, cmd.From, cmd.To)
		if err != nil {
			return nil, err
		}
		return HistoryResult(*report), nil
	case "metrics":
		report, err := c.SalesMetrics(cmd.Location)
		if err != nil {
			return nil, err
		}
		return MetricsResult(report), nil
	case "products":
		names, err := c.Products()
		if err != nil {
			return nil, err
		}
		return ProductsResult(names), nil
	case "add":
		names, err := c.AddProduct(cmd.Product)
		if err != nil {
			return nil, err
		}
		return ProductsResult(names), nil
	}

	return nil, errors.Errorf("unknown command %q", cmd.Name)
}
