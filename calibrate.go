// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mq131

import (
	"time"

	"periph.io/x/conn/v3/physic"
)

// Calibrate determines the clean-air baseline resistance R0 and the warm-up
// duration empirically. Run it with the sensor in clean reference air.
//
// The heater is switched on and the resistance is read once per
// Opts.CalibrationInterval. Readings are compared truncated to whole ohms: a
// repeat extends the current stable run, a change restarts it and becomes the
// provisional baseline. Once Opts.StableCycles consecutive readings match,
// the sensor is considered stabilised: R0 is set to the baseline and the
// warm-up duration to the total time spent.
//
// Calibrate blocks for the whole procedure. Unless Opts.MaxCalibrationCycles
// is set, a sensor that never stabilises keeps it blocked forever.
func (d *Dev) Calibrate() error {
	d.debugf("mq131: starting calibration, %d stable cycles required", d.opts.StableCycles)
	if err := d.StartHeater(); err != nil {
		return err
	}

	var baseline float64
	stable := 0
	cycles := 0
	for stable < d.opts.StableCycles {
		if d.opts.MaxCalibrationCycles > 0 && cycles >= d.opts.MaxCalibrationCycles {
			_ = d.StopHeater()
			return &CalibrationTimeoutError{Cycles: cycles}
		}
		rs, err := d.readRs()
		if err != nil {
			_ = d.StopHeater()
			return err
		}
		ohms := float64(rs) / float64(physic.Ohm)
		d.debugf("mq131: Rs read = %d ohms", uint32(ohms))
		if uint32(ohms) != uint32(baseline) {
			baseline = ohms
			stable = 0
		} else {
			stable++
		}
		cycles++
		sleep(d.opts.CalibrationInterval)
	}
	if err := d.StopHeater(); err != nil {
		return err
	}

	d.debugf("mq131: stabilised after %d cycles, R0 = %d ohms", cycles, uint32(baseline))
	d.r0 = physic.ElectricResistance(baseline * float64(physic.Ohm))
	d.warmup = time.Duration(cycles) * d.opts.CalibrationInterval
	return nil
}
