/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mpetrenko/taphouse/pkg/catalog"
	"github.com/mpetrenko/taphouse/pkg/sales"
	"github.com/mpetrenko/taphouse/pkg/server"
	"github.com/mpetrenko/taphouse/pkg/tap"
)

var Command = &cobra.Command{
	Use:   "server",
	Short: "Dashboard server for tap state and sales metrics",

	Run: func(cmd *cobra.Command, args []string) {
		logger := viper.Get("logger").(zerolog.Logger)

		board := tap.NewBoard(logger, buildLocationConfigs())
		products := catalog.Load(logger, viper.GetString("taphouse.catalog"))

		srv := server.New(
			logger,
			board,
			products,
			buildSalesGateway(logger),
			viper.GetInt("taphouse.port"),
			viper.GetInt("taphouse.prom-port"),
			viper.GetString("taphouse.static"),
		)

		// Serve the metrics endpoint
		go srv.ServeMetrics()

		// Serve the dashboard
		if err := srv.ListenAndServe(); err != nil {
			logger.Fatal().Err(err).Msg("error listening and serving")
		}
	},
}

func buildLocationConfigs() []tap.LocationConfig {
	ret := []tap.LocationConfig{}

	for _, code := range viper.GetStringSlice("location.codes") {
		config := tap.LocationConfig{
			Code: code,
			Name: viper.GetString(strings.Join([]string{"location", code, "name"}, ".")),
			Taps: viper.GetInt(strings.Join([]string{"location", code, "taps"}, ".")),
		}

		if config.Name == "" {
			config.Name = code
		}
		if config.Taps == 0 {
			config.Taps = viper.GetInt("taphouse.taps")
		}

		ret = append(ret, config)
	}

	return ret
}

func buildSalesGateway(logger zerolog.Logger) sales.Gateway {
	if viper.GetString("taphouse.metrics-mode") == "live" {
		return sales.NewLive(
			logger,
			viper.GetString("taphouse.pos-url"),
			viper.GetDuration("taphouse.pos-timeout"),
		)
	}
	return sales.NewStatic(viper.GetBool("taphouse.metrics-strict"))
}

func init() {
	// Flags for this command
	Command.Flags().IntP("port", "p", 8000, "Dashboard server port")
	Command.Flags().Int("prom-port", 2112, "Set the port for /metrics")
	Command.Flags().String("static", "./public", "Path to the static dashboard bundle")
	Command.Flags().String("catalog", "./products.json", "Path to the product catalog file")
	Command.Flags().Int("taps", 12, "Default tap count for locations without an explicit one")
	Command.Flags().String("metrics-mode", "static", "Sales metrics source [static, live]")
	Command.Flags().Bool("metrics-strict", false, "Reject unknown locations instead of serving the default metrics entry")
	Command.Flags().String("pos-url", "", "Base URL of the POS reporting API")
	Command.Flags().Duration("pos-timeout", 5*time.Second, "Request timeout for the POS reporting API")

	// Bind flags to viper
	viper.BindPFlag("taphouse.port", Command.Flags().Lookup("port"))
	viper.BindPFlag("taphouse.prom-port", Command.Flags().Lookup("prom-port"))
	viper.BindPFlag("taphouse.static", Command.Flags().Lookup("static"))
	viper.BindPFlag("taphouse.catalog", Command.Flags().Lookup("catalog"))
	viper.BindPFlag("taphouse.taps", Command.Flags().Lookup("taps"))
	viper.BindPFlag("taphouse.metrics-mode", Command.Flags().Lookup("metrics-mode"))
	viper.BindPFlag("taphouse.metrics-strict", Command.Flags().Lookup("metrics-strict"))
	viper.BindPFlag("taphouse.pos-url", Command.Flags().Lookup("pos-url"))
	viper.BindPFlag("taphouse.pos-timeout", Command.Flags().Lookup("pos-timeout"))
}
