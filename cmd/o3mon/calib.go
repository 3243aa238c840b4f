// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/GermanBionicSystems/mq131"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"
)

// calibration is the on-disk form of a Calibrate() result.
type calibration struct {
	R0Ohms        float64 `yaml:"r0_ohms"`
	WarmupSeconds int     `yaml:"warmup_seconds"`
}

// loadCalibration reads a stored calibration. A missing file is not an
// error: it returns nil to signal that the variant defaults should be kept.
func loadCalibration(path string) (*calibration, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var c calibration
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if c.R0Ohms <= 0 || c.WarmupSeconds <= 0 {
		return nil, fmt.Errorf("%s: calibration values must be positive", path)
	}
	return &c, nil
}

func saveCalibration(path string, c *calibration) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// apply restores the stored values into the driver.
func (c *calibration) apply(d *mq131.Dev) error {
	if err := d.SetR0(physic.ElectricResistance(c.R0Ohms * float64(physic.Ohm))); err != nil {
		return err
	}
	return d.SetWarmupDuration(time.Duration(c.WarmupSeconds) * time.Second)
}

// snapshot captures the driver's current calibration for storage.
func snapshot(d *mq131.Dev) *calibration {
	return &calibration{
		R0Ohms:        float64(d.R0()) / float64(physic.Ohm),
		WarmupSeconds: int(d.WarmupDuration() / time.Second),
	}
}
