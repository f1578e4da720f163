/*
 * Copyright (c) 2026, Maksym Petrenko <maksym.petrenko@protonmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package taphouse

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

func initConfig(configFile string) {
	log := viper.Get("logger").(zerolog.Logger)

	// config Read
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath("/etc/taphouse")
	viper.AddConfigPath("/usr/local/etc/taphouse")
	viper.AddConfigPath("$HOME/.taphouse")
	viper.AddConfigPath(".")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	}

	err := viper.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		log.Debug().Msg("No config file found, using defaults as a base")
	} else if err != nil {
		log.Error().Msg("Error loading config file")
	}

	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config from file")

	locationConfigs := viper.GetStringMap("location")
	locations := []string{}

	// Range over the location blocks to set a list of location codes
	for k, v := range locationConfigs {
		if t := reflect.ValueOf(v); t.Kind() == reflect.Map {
			locations = append(locations, k)
			for lk, lv := range v.(map[string]interface{}) {
				log.Trace().Msgf("location.%s.%s = %v", k, lk, lv)
				viper.Set(fmt.Sprintf("location.%s.%s", k, lk), lv)
			}
		}
	}

	// Without configured locations, fall back to the chain's two bars.
	if len(locations) == 0 {
		for _, code := range []string{"krem", "warsaw"} {
			locations = append(locations, code)
		}
		viper.Set("location.krem.name", "Kremenchuk")
		viper.Set("location.warsaw.name", "Warsaw")
	}

	viper.Set("location.codes", locations)
}

func initLogLevel() {
	level := viper.GetInt("taphouse.verbose")
	switch clamp(2, level) {
	case 2:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case 1:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func initLogging() {
	var writer io.Writer

	writer = os.Stderr
	if viper.GetBool("taphouse.local") {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	logger := zerolog.New(writer).
		With().
		Timestamp().
		Caller().
		Logger()

	viper.Set("logger", logger)
}

func traceConfig() {
	log := viper.Get("logger").(zerolog.Logger)

	for _, v := range viper.AllKeys() {
		if v == "logger" {
			continue
		}
		log.Trace().Msgf("%s=%v", v, viper.Get(v))
	}
}

func clamp(clamp, a int) int {
	if a >= clamp {
		return clamp
	}
	return a
}
