// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mq131

import (
	"fmt"

	"periph.io/x/conn/v3/analog"
)

// InvalidSampleError is returned when the analog reading sits at one of the
// supply rails, where the voltage divider equation has no solution. It
// usually means the sensor is disconnected or shorted.
type InvalidSampleError struct {
	Sample analog.Sample
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("mq131: sample %s (raw %d) is outside the voltage divider range", e.Sample.V, e.Sample.Raw)
}

// CalibrationTimeoutError is returned when Calibrate() exhausts
// Opts.MaxCalibrationCycles without observing a stable resistance.
type CalibrationTimeoutError struct {
	// Cycles is the number of readings taken before giving up.
	Cycles int
}

func (e *CalibrationTimeoutError) Error() string {
	return fmt.Sprintf("mq131: sensor did not stabilise within %d calibration cycles", e.Cycles)
}
