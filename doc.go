// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package mq131 controls an MQ131 resistive ozone (O3) gas sensor wired as a
// voltage divider on an analog input, with the sensor heater switched through
// a GPIO pin.
//
// The sensing element only produces meaningful readings after its heater has
// been powered for the variant's warm-up duration, so a measurement is a full
// duty cycle: heater on, wait, read the divider, heater off. Dev exposes both
// the blocking Sample() cycle and the StartHeater/IsReady/StopHeater timing
// gate for callers that drive the cycle from their own scheduler.
//
// Readings are normalised against the clean-air baseline resistance R0 and
// corrected for ambient temperature and humidity before the per-variant
// power-law fit maps them to a concentration. Calibrate() discovers R0 and
// the warm-up duration empirically in clean air; both values can be saved and
// restored through R0/SetR0 and WarmupDuration/SetWarmupDuration.
//
// **Datasheet:** https://www.winsen-sensor.com/d/files/PDF/Semiconductor%20Gas%20Sensor/MQ131.pdf
package mq131
