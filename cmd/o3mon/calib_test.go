// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/mq131"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
)

func TestLoadCalibration_missing(t *testing.T) {
	c, err := loadCalibration(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCalibration_roundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mq131.yaml")
	in := &calibration{R0Ohms: 110470.6, WarmupSeconds: 42}
	require.NoError(t, saveCalibration(path, in))

	out, err := loadCalibration(path)
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, out)
}

func TestLoadCalibration_invalid(t *testing.T) {
	tests := []string{
		"r0_ohms: -5\nwarmup_seconds: 10\n",
		"r0_ohms: 1000\nwarmup_seconds: 0\n",
		"{not yaml",
	}
	for _, body := range tests {
		path := filepath.Join(t.TempDir(), "mq131.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		_, err := loadCalibration(path)
		assert.Error(t, err, "content %q", body)
	}
}

// fakeADC satisfies analog.PinADC for driver construction in tests.
type fakeADC struct{}

func (*fakeADC) Name() string     { return "ADC0" }
func (*fakeADC) Number() int      { return 0 }
func (*fakeADC) Function() string { return "ADC" }
func (*fakeADC) Halt() error      { return nil }
func (*fakeADC) String() string   { return "ADC0" }
func (*fakeADC) Range() (analog.Sample, analog.Sample) {
	return analog.Sample{}, analog.Sample{Raw: 1023, V: 5 * physic.Volt}
}
func (*fakeADC) Read() (analog.Sample, error) {
	return analog.Sample{V: 2500 * physic.MilliVolt}, nil
}

func TestCalibration_applySnapshot(t *testing.T) {
	d, err := mq131.New(&fakeADC{}, &gpiotest.Pin{N: "GPIO24", Num: 24, Fn: "Out"}, nil)
	require.NoError(t, err)

	c := &calibration{R0Ohms: 123456, WarmupSeconds: 30}
	require.NoError(t, c.apply(d))
	assert.Equal(t, c, snapshot(d))
}
