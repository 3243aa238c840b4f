// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// o3mon periodically samples an MQ131 ozone sensor wired to an ADS1015 ADC
// and logs the concentration. An AHT20 on the same I²C bus, when present,
// provides the ambient temperature and humidity for the reading correction.
//
// Calibration survives restarts: -calibrate runs the clean-air procedure and
// stores R0 and the warm-up duration in a YAML file that is restored on the
// next start.
//
// Usage:
//
//	o3mon -heater GPIO24 -model low -unit ppb -interval 5m
//	o3mon -calibrate -calibration /var/lib/o3mon/mq131.yaml
package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/GermanBionicSystems/mq131"
	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
	"periph.io/x/devices/v3/aht20"
	"periph.io/x/host/v3"
)

func parseModel(s string) (mq131.Model, error) {
	switch strings.ToLower(s) {
	case "low":
		return mq131.LowConcentration, nil
	case "etc":
		return mq131.ETCConcentration, nil
	case "high":
		return mq131.HighConcentration, nil
	default:
		return 0, fmt.Errorf("unknown model %q (want low, etc or high)", s)
	}
}

func parseUnit(s string) (mq131.Unit, error) {
	switch strings.ToLower(s) {
	case "ppm":
		return mq131.PPM, nil
	case "ppb":
		return mq131.PPB, nil
	case "mg/m3":
		return mq131.MGM3, nil
	case "ug/m3":
		return mq131.UGM3, nil
	default:
		return 0, fmt.Errorf("unknown unit %q (want ppm, ppb, mg/m3 or ug/m3)", s)
	}
}

func main() {
	i2cName := flag.String("i2c", "", "I²C bus name (default: first available)")
	channel := flag.Int("channel", 0, "ADS1015 channel wired to the sensor divider")
	heaterName := flag.String("heater", "GPIO24", "heater GPIO pin name")
	modelName := flag.String("model", "low", "sensor variant: low, etc or high")
	unitName := flag.String("unit", "ppb", "reported unit: ppm, ppb, mg/m3 or ug/m3")
	interval := flag.Duration("interval", 5*time.Minute, "pause between samples")
	calibFile := flag.String("calibration", "mq131.yaml", "calibration file")
	calibrate := flag.Bool("calibrate", false, "run a clean-air calibration and store the result")
	calibLimit := flag.Int("calibration-limit", 900, "abort calibration after this many cycles (0 = never)")
	debug := flag.Bool("debug", false, "log driver diagnostics")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        colorable.NewColorableStdout(),
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()

	model, err := parseModel(*modelName)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad -model")
	}
	unit, err := parseUnit(*unitName)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad -unit")
	}

	if _, err := host.Init(); err != nil {
		logger.Fatal().Err(err).Msg("host init failed")
	}
	b, err := i2creg.Open(*i2cName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open I²C")
	}
	defer b.Close()

	adc, err := ads1x15.NewADS1015(b, &ads1x15.DefaultOpts)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize ADS1015")
	}
	channels := []ads1x15.Channel{ads1x15.Channel0, ads1x15.Channel1, ads1x15.Channel2, ads1x15.Channel3}
	if *channel < 0 || *channel >= len(channels) {
		logger.Fatal().Int("channel", *channel).Msg("bad -channel")
	}
	pin, err := adc.PinForChannel(channels[*channel], 5*physic.Volt, 1*physic.Hertz, ads1x15.BestQuality)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to acquire the ADC channel")
	}
	defer pin.Halt()

	heater := gpioreg.ByName(*heaterName)
	if heater == nil {
		logger.Fatal().Str("pin", *heaterName).Msg("failed to find the heater pin")
	}

	opts := mq131.DefaultOpts
	opts.Model = model
	opts.MaxCalibrationCycles = *calibLimit
	if *debug {
		opts.Debug = logger.With().Str("component", "mq131").Logger()
	}
	d, err := mq131.New(pin, heater, &opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize MQ131")
	}
	defer d.Halt()

	// Ambient conditions feed the Rs/R0 correction. The sensor is optional;
	// without it the driver keeps the 20°C/60%RH reference defaults.
	env, err := aht20.NewI2C(b, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("no AHT20 found, using reference ambient conditions")
		env = nil
	}

	if cal, err := loadCalibration(*calibFile); err != nil {
		logger.Fatal().Err(err).Msg("failed to load the calibration file")
	} else if cal != nil {
		if err := cal.apply(d); err != nil {
			logger.Fatal().Err(err).Msg("failed to restore calibration")
		}
		logger.Info().Float64("r0_ohms", cal.R0Ohms).Int("warmup_s", cal.WarmupSeconds).Msg("restored calibration")
	}

	if *calibrate {
		logger.Info().Msg("calibrating in clean air, this takes minutes")
		if err := d.Calibrate(); err != nil {
			logger.Fatal().Err(err).Msg("calibration failed")
		}
		cal := snapshot(d)
		if err := saveCalibration(*calibFile, cal); err != nil {
			logger.Fatal().Err(err).Msg("failed to store calibration")
		}
		logger.Info().Float64("r0_ohms", cal.R0Ohms).Int("warmup_s", cal.WarmupSeconds).Msg("calibration stored")
	}

	for {
		if env != nil {
			e := physic.Env{}
			if err := env.Sense(&e); err != nil {
				logger.Warn().Err(err).Msg("ambient reading failed")
			} else {
				d.SetEnvironment(e.Temperature, e.Humidity)
			}
		}
		if err := d.Sample(); err != nil {
			logger.Error().Err(err).Msg("sample failed")
		} else {
			logger.Info().Float64(unit.String(), d.Concentration(unit)).Msg("O3")
		}
		time.Sleep(*interval)
	}
}
