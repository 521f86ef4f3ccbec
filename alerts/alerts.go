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

// Package alerts stores per-user price alerts and evaluates them against
// live quotes.
package alerts

import (
	"errors"
	"math"
	"time"

	"github.com/fundflow/ff-api/data"
	"github.com/google/uuid"
)

// Condition names what an alert compares.
type Condition string

const (
	// PriceAbove triggers when the last price rises to the threshold.
	PriceAbove Condition = "above"
	// PriceBelow triggers when the last price falls to the threshold.
	PriceBelow Condition = "below"
	// PctMove triggers when the move versus the previous close reaches
	// the threshold percentage in either direction.
	PctMove Condition = "pct_move"
)

var ErrUnknownCondition = errors.New("unknown alert condition")

// Alert is one user-configured price watch.
type Alert struct {
	ID          uuid.UUID  `json:"id"`
	UserID      string     `json:"-"`
	Ticker      string     `json:"ticker"`
	Condition   Condition  `json:"condition"`
	Threshold   float64    `json:"threshold"`
	Triggered   bool       `json:"triggered"`
	CreatedAt   time.Time  `json:"createdAt"`
	TriggeredAt *time.Time `json:"triggeredAt,omitempty"`
}

// Valid reports whether the alert can be evaluated.
func (a *Alert) Valid() bool {
	switch a.Condition {
	case PriceAbove, PriceBelow:
		return a.Ticker != "" && a.Threshold > 0
	case PctMove:
		return a.Ticker != "" && a.Threshold > 0
	}
	return false
}

// CheckTriggered evaluates the alert against a quote. Pure; persistence
// of the trigger state is the store's concern.
func (a *Alert) CheckTriggered(quote *data.Quote) bool {
	if quote == nil {
		return false
	}

	switch a.Condition {
	case PriceAbove:
		return quote.Price >= a.Threshold
	case PriceBelow:
		return quote.Price <= a.Threshold
	case PctMove:
		if quote.PreviousClose == 0 {
			return false
		}
		move := math.Abs(quote.Price-quote.PreviousClose) / math.Abs(quote.PreviousClose) * 100
		return move >= a.Threshold
	}
	return false
}
