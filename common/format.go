// Copyright 2025-2026
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package common

import "fmt"

// FormatCompact renders a dollar value at trillion/billion/million scale
// with one decimal. Used for chart node labels. Tier thresholds are
// inclusive: exactly 1e9 formats as "$1.0B", not "$1000.0M". Values below
// one million (including negatives) render as whole dollars.
//
// FormatCompact and FormatSigned are deliberately separate policies; their
// tier sets and sign handling differ and call sites rely on both.
func FormatCompact(val float64) string {
	switch {
	case val >= 1e12:
		return fmt.Sprintf("$%.1fT", val/1e12)
	case val >= 1e9:
		return fmt.Sprintf("$%.1fB", val/1e9)
	case val >= 1e6:
		return fmt.Sprintf("$%.1fM", val/1e6)
	default:
		return fmt.Sprintf("$%.0f", val)
	}
}

// FormatSigned renders a dollar value for delta displays: the sign is
// pulled in front of the dollar symbol and the magnitude is scaled with a
// thousand tier that FormatCompact does not have.
func FormatSigned(val float64) string {
	sign := ""
	if val < 0 {
		sign = "-"
		val = -val
	}

	switch {
	case val >= 1e9:
		return fmt.Sprintf("%s$%.1fB", sign, val/1e9)
	case val >= 1e6:
		return fmt.Sprintf("%s$%.0fM", sign, val/1e6)
	case val >= 1e3:
		return fmt.Sprintf("%s$%.0fK", sign, val/1e3)
	default:
		return fmt.Sprintf("%s$%.0f", sign, val)
	}
}

// FormatSignedOrNA is FormatSigned for optional values; a nil value
// renders as "N/A".
func FormatSignedOrNA(val *float64) string {
	if val == nil {
		return "N/A"
	}
	return FormatSigned(*val)
}
