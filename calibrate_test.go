// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mq131

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// TestCalibrate feeds two drifting readings followed by a stable plateau.
// With a stability target of 3 the loop must take exactly 6 readings: the
// plateau value is recorded on the third cycle and confirmed by the next
// three.
func TestCalibrate(t *testing.T) {
	sleeps := fakeClock(t)
	heater := testPin()
	var debug bytes.Buffer
	adc := &adcPin{samples: []analog.Sample{
		sampleAt(40 * physic.KiloOhm),
		sampleAt(30 * physic.KiloOhm),
		sampleAt(10 * physic.KiloOhm), // repeats from here on
	}}
	d, err := New(adc, heater, &Opts{StableCycles: 3, Debug: &debug})
	if err != nil {
		t.Fatal(err)
	}

	if err := d.Calibrate(); err != nil {
		t.Fatal(err)
	}
	if got, want := d.R0(), 10*physic.KiloOhm; got != want {
		t.Errorf("R0 = %s, want %s", got, want)
	}
	if got, want := d.WarmupDuration(), 6*time.Second; got != want {
		t.Errorf("warm-up = %s, want %s", got, want)
	}
	if heater.L != gpio.Low {
		t.Error("heater must be off after calibration")
	}
	if *sleeps != 6 {
		t.Errorf("expected 6 calibration cycles, got %d", *sleeps)
	}
	if out := debug.String(); !strings.Contains(out, "stabilised after 6 cycles") {
		t.Errorf("unexpected diagnostics:\n%s", out)
	}
}

// TestCalibrate_interval checks that the warm-up duration scales with a
// non-default calibration interval.
func TestCalibrate_interval(t *testing.T) {
	fakeClock(t)
	adc := &adcPin{samples: []analog.Sample{sampleAt(20 * physic.KiloOhm)}}
	d, err := New(adc, testPin(), &Opts{StableCycles: 2, CalibrationInterval: 500 * time.Millisecond})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Calibrate(); err != nil {
		t.Fatal(err)
	}
	// One recording cycle plus two confirmations.
	if got, want := d.WarmupDuration(), 1500*time.Millisecond; got != want {
		t.Errorf("warm-up = %s, want %s", got, want)
	}
}

func TestCalibrate_neverStable(t *testing.T) {
	fakeClock(t)
	heater := testPin()
	// The readings flip between two plateaus and never settle.
	var seq []analog.Sample
	for i := 0; i < 8; i++ {
		seq = append(seq, sampleAt(40*physic.KiloOhm), sampleAt(30*physic.KiloOhm))
	}
	d, err := New(&adcPin{samples: seq}, heater, &Opts{StableCycles: 3, MaxCalibrationCycles: 5})
	if err != nil {
		t.Fatal(err)
	}

	err = d.Calibrate()
	var cte *CalibrationTimeoutError
	if !errors.As(err, &cte) {
		t.Fatalf("expected *CalibrationTimeoutError, got %v", err)
	}
	if cte.Cycles != 5 {
		t.Errorf("Cycles = %d, want 5", cte.Cycles)
	}
	if heater.L != gpio.Low {
		t.Error("heater must be off after aborted calibration")
	}
	// The previous baseline must survive an aborted run.
	if got, want := d.R0(), models[LowConcentration].defaultR0; got != want {
		t.Errorf("R0 = %s, want untouched default %s", got, want)
	}
}

func TestCalibrate_readError(t *testing.T) {
	fakeClock(t)
	heater := testPin()
	adc := &adcPin{err: errors.New("bus gone")}
	d, err := New(adc, heater, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Calibrate(); err == nil {
		t.Fatal("expected a read error")
	}
	if heater.L != gpio.Low {
		t.Error("heater must be off after a failed calibration")
	}
}
