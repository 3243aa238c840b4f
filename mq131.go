// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mq131

import (
	"fmt"
	"io"
	"math"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// Interval between heater readiness checks inside Sample().
const pollInterval = time.Second

// Opts holds the configuration options for the device.
type Opts struct {
	// Model selects the sensor variant. Each variant has its own fit curve,
	// native unit and factory defaults for R0 and the warm-up duration.
	Model Model
	// LoadResistance is the load resistor RL of the voltage divider. Leave 0
	// to use the 10kΩ found on most breakout boards.
	LoadResistance physic.ElectricResistance
	// Supply is the voltage feeding the divider. Leave 0 for 5V.
	Supply physic.ElectricPotential
	// StableCycles is the number of consecutive identical resistance readings
	// (truncated to whole ohms) Calibrate() requires before it considers the
	// sensor stabilised. Leave 0 for the default of 15.
	StableCycles int
	// CalibrationInterval is the pause between calibration readings. Leave 0
	// for 1s.
	CalibrationInterval time.Duration
	// MaxCalibrationCycles bounds the calibration loop. 0 means no bound: a
	// sensor that never stabilises keeps Calibrate() blocked forever.
	MaxCalibrationCycles int
	// Debug receives human readable progress lines, mainly from Calibrate().
	// Nil disables diagnostics. Writes are best-effort; write errors are
	// ignored.
	Debug io.Writer
}

// DefaultOpts holds the default configuration options for the device.
var DefaultOpts = Opts{
	Model:               LowConcentration,
	LoadResistance:      10 * physic.KiloOhm,
	Supply:              5 * physic.Volt,
	StableCycles:        15,
	CalibrationInterval: time.Second,
}

// Dev is a handle to an MQ131 sensor: its divider output on an analog input
// pin and its heater supply on a GPIO pin.
//
// Dev is not safe for concurrent use. Sample() and Calibrate() block for
// seconds to minutes; the caller must ensure at most one operation is in
// flight at a time.
type Dev struct {
	adc    analog.PinADC
	heater gpio.PinOut
	opts   Opts

	r0       physic.ElectricResistance
	warmup   time.Duration
	lastRs   physic.ElectricResistance // 0 until the first completed Sample()
	heatedAt time.Time                 // zero while the heater is off

	temperature physic.Temperature
	humidity    physic.RelativeHumidity
}

// New returns an object that reads an MQ131 sensor through the given analog
// input and controls its heater through the given GPIO pin. The Opts can be
// nil. The heater is switched off as the initial state.
//
// The baseline resistance and warm-up duration start at the variant factory
// defaults; run Calibrate() once in clean air, or restore previously
// calibrated values with SetR0() and SetWarmupDuration().
func New(adc analog.PinADC, heater gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	o := *opts
	if o.Model < LowConcentration || o.Model > HighConcentration {
		return nil, fmt.Errorf("mq131: unknown model %d", o.Model)
	}
	if o.LoadResistance <= 0 {
		o.LoadResistance = DefaultOpts.LoadResistance
	}
	if o.Supply <= 0 {
		o.Supply = DefaultOpts.Supply
	}
	if o.StableCycles <= 0 {
		o.StableCycles = DefaultOpts.StableCycles
	}
	if o.CalibrationInterval <= 0 {
		o.CalibrationInterval = DefaultOpts.CalibrationInterval
	}

	p := &models[o.Model]
	d := &Dev{
		adc:         adc,
		heater:      heater,
		opts:        o,
		r0:          p.defaultR0,
		warmup:      p.defaultWarmup,
		temperature: physic.ZeroCelsius + 20*physic.Celsius,
		humidity:    60 * physic.PercentRH,
	}
	if err := d.heater.Out(gpio.Low); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("%s{%s, %s}", d.opts.Model, d.adc.Name(), d.heater.Name())
}

// Halt switches the heater off. Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.StopHeater()
}

// StartHeater powers the sensor heater and starts the warm-up timer. Calling
// it while the heater is already on restarts the timer.
func (d *Dev) StartHeater() error {
	if err := d.heater.Out(gpio.High); err != nil {
		return err
	}
	d.heatedAt = now()
	return nil
}

// StopHeater powers the heater off and invalidates the warm-up timer.
func (d *Dev) StopHeater() error {
	d.heatedAt = time.Time{}
	return d.heater.Out(gpio.Low)
}

// IsReady reports whether the heater has been on for at least the warm-up
// duration, i.e. whether a resistance reading would be valid. It returns
// false whenever the heater is off.
//
// Together with StartHeater and StopHeater this lets a caller run the
// measurement cycle from its own scheduler instead of blocking in Sample().
func (d *Dev) IsReady() bool {
	if d.heatedAt.IsZero() {
		return false
	}
	return now().Sub(d.heatedAt) >= d.warmup
}

// Sample runs one full measurement cycle: heater on, wait for the warm-up
// duration, read the sensor resistance, heater off. It blocks for the whole
// cycle, checking readiness once per second.
//
// The reading is stored in the device; retrieve it with Concentration().
func (d *Dev) Sample() error {
	if err := d.StartHeater(); err != nil {
		return err
	}
	for !d.IsReady() {
		sleep(pollInterval)
	}
	rs, err := d.readRs()
	if err != nil {
		_ = d.StopHeater()
		return err
	}
	d.lastRs = rs
	return d.StopHeater()
}

// SetEnvironment sets the ambient conditions used to correct the Rs/R0 ratio.
// The defaults are 20°C and 60%RH, the reference point the fit curves were
// characterised at.
func (d *Dev) SetEnvironment(t physic.Temperature, h physic.RelativeHumidity) {
	d.temperature = t
	d.humidity = h
}

// Concentration converts the resistance stored by the last Sample() into an
// O3 concentration expressed in unit. It returns 0 if no sample was ever
// taken.
func (d *Dev) Concentration(unit Unit) float64 {
	if d.lastRs == 0 {
		return 0
	}
	p := &models[d.opts.Model]
	t := d.temperature.Celsius()
	h := float64(d.humidity) / float64(physic.PercentRH)
	ratio := float64(d.lastRs) / float64(d.r0) * correctionRatio(t, h)
	return Convert(p.scale*math.Pow(ratio, p.exponent), p.unit, unit)
}

// R0 returns the clean-air baseline resistance in use.
func (d *Dev) R0() physic.ElectricResistance {
	return d.r0
}

// SetR0 restores a baseline resistance obtained from a previous Calibrate()
// run, typically read back from non-volatile storage.
func (d *Dev) SetR0(r physic.ElectricResistance) error {
	if r <= 0 {
		return fmt.Errorf("mq131: invalid baseline resistance %s", r)
	}
	d.r0 = r
	return nil
}

// WarmupDuration returns how long the heater must run before a reading.
func (d *Dev) WarmupDuration() time.Duration {
	return d.warmup
}

// SetWarmupDuration restores a warm-up duration obtained from a previous
// Calibrate() run.
func (d *Dev) SetWarmupDuration(w time.Duration) error {
	if w <= 0 {
		return fmt.Errorf("mq131: invalid warm-up duration %s", w)
	}
	d.warmup = w
	return nil
}

// readRs takes one analog sample and converts it to the sensor resistance
// through the divider equation Rs = (Vcc/Vout - 1) * RL.
//
// Vout comes from the interpreted potential of the sample; for ADC drivers
// that only fill in the raw count it is derived as Raw/fullScale * Vcc. A
// sample at either rail has no usable divider solution and is rejected as an
// *InvalidSampleError.
func (d *Dev) readRs() (physic.ElectricResistance, error) {
	s, err := d.adc.Read()
	if err != nil {
		return 0, err
	}
	vout := s.V
	if vout == 0 && s.Raw != 0 {
		if _, max := d.adc.Range(); max.Raw != 0 {
			vout = physic.ElectricPotential(int64(s.Raw) * int64(d.opts.Supply) / int64(max.Raw))
		}
	}
	if vout <= 0 || vout >= d.opts.Supply {
		return 0, &InvalidSampleError{Sample: s}
	}
	vcc := float64(d.opts.Supply) / float64(physic.Volt)
	v := float64(vout) / float64(physic.Volt)
	rl := float64(d.opts.LoadResistance) / float64(physic.Ohm)
	rs := (vcc/v - 1) * rl
	return physic.ElectricResistance(rs * float64(physic.Ohm)), nil
}

func (d *Dev) debugf(format string, args ...interface{}) {
	if d.opts.Debug == nil {
		return
	}
	fmt.Fprintf(d.opts.Debug, format+"\n", args...)
}

// Overridden in tests.
var (
	now   = time.Now
	sleep = time.Sleep
)

var _ conn.Resource = &Dev{}
