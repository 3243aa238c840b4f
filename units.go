// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mq131

// Unit is a unit of measure for gas concentration.
type Unit int

const (
	// PPM is parts per million by volume.
	PPM Unit = iota
	// PPB is parts per billion by volume.
	PPB
	// MGM3 is milligrams per cubic metre.
	MGM3
	// UGM3 is micrograms per cubic metre.
	UGM3
)

func (u Unit) String() string {
	switch u {
	case PPM:
		return "ppm"
	case PPB:
		return "ppb"
	case MGM3:
		return "mg/m³"
	case UGM3:
		return "µg/m³"
	default:
		return "unknown"
	}
}

const (
	// Molar mass of O3 in g/mol.
	o3MolarMass = 48.0
	// Molar volume of an ideal gas in L/mol at 0°C and 100kPa.
	molarVolume = 22.71108
)

// Convert translates a concentration between units. Equal units are an
// identity.
//
// The fit curves only ever produce PPM or PPB, so the volumetric targets
// assume the input is the other volumetric unit: converting to PPM divides by
// 1000, converting to PPB multiplies by 1000, regardless of in. The mass
// targets normalise the input to the matching volumetric unit (PPM for MGM3,
// PPB for UGM3) before applying the molar mass over molar volume factor. An
// unknown target returns the input unchanged.
func Convert(value float64, in, out Unit) float64 {
	if in == out {
		return value
	}
	switch out {
	case PPM:
		return value / 1000
	case PPB:
		return value * 1000
	case MGM3:
		c := value
		if in != PPM {
			c = value / 1000
		}
		return c * o3MolarMass / molarVolume
	case UGM3:
		c := value
		if in != PPB {
			c = value * 1000
		}
		return c * o3MolarMass / molarVolume
	default:
		return value
	}
}
