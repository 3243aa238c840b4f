// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mq131

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// Model is the MQ131 sensor variant. The variants share the same electrical
// interface but differ in sensing element, fit curve and native unit.
type Model int

const (
	// LowConcentration is the low concentration sensor in the black bakelite
	// package (SN-O3-02).
	LowConcentration Model = iota
	// ETCConcentration is the WinSen ETC low concentration sensor.
	ETCConcentration
	// HighConcentration is the high concentration sensor in the metal
	// package.
	HighConcentration
)

func (m Model) String() string {
	switch m {
	case LowConcentration:
		return "MQ131(low)"
	case ETCConcentration:
		return "MQ131(ETC)"
	case HighConcentration:
		return "MQ131(high)"
	default:
		return "unknown"
	}
}

// modelParams is one entry of the per-variant lookup table: the power-law fit
// concentration = scale * (Rs/R0)^exponent in the fit's native unit, plus the
// factory defaults used until the sensor is calibrated.
type modelParams struct {
	scale         float64
	exponent      float64
	unit          Unit
	defaultR0     physic.ElectricResistance
	defaultWarmup time.Duration
}

var models = [...]modelParams{
	LowConcentration: {
		scale:         9.4783, // R² = 0.9987
		exponent:      2.3348,
		unit:          PPB,
		defaultR0:     1104706 * physic.Ohm / 10, // 110470.6Ω
		defaultWarmup: 80 * time.Second,
	},
	ETCConcentration: {
		scale:         23.8887, // R² = 0.99
		exponent:      1.1101,
		unit:          PPB,
		defaultR0:     235 * physic.KiloOhm,
		defaultWarmup: 80 * time.Second,
	},
	HighConcentration: {
		scale:         8.1399, // R² = 0.99
		exponent:      2.3297,
		unit:          PPM,
		defaultR0:     3854 * physic.Ohm / 10, // 385.4Ω
		defaultWarmup: 80 * time.Second,
	},
}
