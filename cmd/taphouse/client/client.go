/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package client

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	taphouse "github.com/mpetrenko/taphouse/api"
	"github.com/mpetrenko/taphouse/pkg/repl"
)

var log zerolog.Logger

var (
	Command = &cobra.Command{
		Use:   "client",
		Short: "Interactive terminal for operating the dashboard server",

		Run: func(cmd *cobra.Command, args []string) {
			log := viper.Get("logger").(zerolog.Logger)
			output := viper.GetString("taphouse.output")
			if len(filterStringSlice([]string{"csv", "text", "json"}, output)) != 1 {
				log.Fatal().Msg("unsupported output format")
			}

			host := viper.GetString("taphouse.host")
			client, err := taphouse.NewClient(host)
			if err != nil {
				log.Fatal().Err(err).Str("host", host).Msg("unable to build a client")
			}

			readlinePrompt(client, output, viper.GetString("taphouse.actor"))
		},
	}
)

func init() {
	log = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).
		With().
		Timestamp().
		Caller().
		Logger()

	// Flags for this command
	Command.Flags().StringP("output", "o", "text", "Output format of results [csv, json, text]")
	Command.Flags().StringP("actor", "a", "", "Actor recorded on tap events issued from this session")

	// Bind flags to viper
	viper.BindPFlag("taphouse.output", Command.Flags().Lookup("output"))
	viper.BindPFlag("taphouse.actor", Command.Flags().Lookup("actor"))
}

func listLocations(c taphouse.Client) func(string) []string {
	locations, err := c.Locations()
	if err != nil {
		return func(string) []string { return []string{} }
	}

	codes := make([]string, 0, len(locations))
	for _, loc := range locations {
		codes = append(codes, loc.Code)
	}

	return func(line string) []string {
		fields := strings.Fields(line)
		prefix := ""
		if len(fields) > 1 {
			prefix = fields[1]
		}
		return filterStringSlice(codes, prefix)
	}
}

func listProducts(c taphouse.Client) func(string) []string {
	return func(line string) []string {
		names, err := c.Products()
		if err != nil {
			return []string{}
		}

		fields := strings.Fields(line)
		prefix := ""
		if len(fields) > 3 {
			prefix = fields[3]
		}
		return filterStringSlice(names, prefix)
	}
}

func filterStringSlice(s []string, prefix string) []string {
	retList := []string{}
	for i := range s {
		if strings.HasPrefix(s[i], prefix) {
			retList = append(retList, s[i])
		}
	}
	return retList
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func readlinePrompt(c taphouse.Client, output, actor string) {
	// Configure the completer
	locationItem := readline.PcItemDynamic(listLocations(c))
	productItem := readline.PcItemDynamic(listProducts(c))

	completer := readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("locations"),
		readline.PcItem("taps", locationItem),
		readline.PcItem("start", readline.PcItemDynamic(listLocations(c), productItem)),
		readline.PcItem("change", readline.PcItemDynamic(listLocations(c), productItem)),
		readline.PcItem("stop", locationItem),
		readline.PcItem("history", locationItem),
		readline.PcItem("metrics", locationItem),
		readline.PcItem("products"),
		readline.PcItem("add"),
		readline.PcItem("exit"),
	)

	// Setup the readline executor
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31m>\033[0m ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	// Configure output writer
	writer := repl.NewOutputWriter(os.Stdout, output)

	// Handle input
	for {
		ln := rl.Line()
		if ln.CanContinue() {
			continue
		} else if ln.CanBreak() {
			break
		}
		line := strings.TrimSpace(ln.Line)

		if strings.ToUpper(line) == "HELP" {
			fmt.Println("usage:")
			fmt.Println(completer.Tree("    "))
			continue
		}
		if strings.ToUpper(line) == "EXIT" {
			os.Exit(0)
		}

		cmd, err := repl.ParseCommand(line)
		if err != nil {
			log.Error().Err(err).Send()
			continue
		}
		cmd.Actor = actor

		result, err := cmd.Run(c)
		if err != nil {
			log.Error().Err(err).Send()
			continue
		}

		writer.Write(result)
		fmt.Println()
	}
	rl.Clean()
}
