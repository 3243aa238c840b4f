// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package mq131

// correctionRatio returns the factor applied to the Rs/R0 ratio to
// compensate for ambient temperature (°C) and relative humidity (%).
//
// The manufacturer characterised the ratio against temperature at three
// humidity tiers; readings between tiers are linearly interpolated. The
// blend factor is deliberately not clamped, so humidity outside 30..85%
// extrapolates along the same lines.
func correctionRatio(temperature, humidity float64) float64 {
	// The fit curves were derived at 20°C/60%RH where the correction is
	// exactly 1.06. The tier equations land slightly off that value, so the
	// reference point short-circuits them.
	if humidity == 60 && temperature == 20 {
		return 1.06
	}

	h30 := -0.0141*temperature + 1.5623 // R² = 0.9986
	h60 := -0.0119*temperature + 1.3261 // R² = 0.9976
	h85 := -0.0103*temperature + 1.1507 // R² = 0.996

	if humidity > 60 {
		return h60 + (h85-h60)*(humidity-60)/(85-60)
	}
	return h30 + (h60-h30)*(humidity-30)/(60-30)
}
