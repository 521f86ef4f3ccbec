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

package indicators

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientHistory indicates too few closes for the signal window.
var ErrInsufficientHistory = errors.New("insufficient price history for technical signals")

// minSignalCloses covers the longest lookback (MACD slow EMA) with room
// for the signal line to settle.
const minSignalCloses = 30

// Outlook classifies the combined read of the indicator snapshot.
type Outlook string

const (
	Bullish Outlook = "bullish"
	Bearish Outlook = "bearish"
	Neutral Outlook = "neutral"
)

// Signals is a snapshot of the standard technical indicators computed
// from a chronological close series.
type Signals struct {
	Close         float64 `json:"close"`
	SMA20         float64 `json:"sma20"`
	EMA12         float64 `json:"ema12"`
	EMA26         float64 `json:"ema26"`
	RSI14         float64 `json:"rsi14"`
	MACD          float64 `json:"macd"`
	MACDSignal    float64 `json:"macdSignal"`
	BollingerUp   float64 `json:"bollingerUp"`
	BollingerDown float64 `json:"bollingerDown"`
	Summary       Outlook `json:"summary"`
}

// summary votes across the three primary reads: price vs SMA20, the MACD
// crossover, and RSI extremes. Two agreeing votes decide; otherwise the
// read is neutral.
func (s *Signals) summary() Outlook {
	votes := 0
	if s.Close > s.SMA20 {
		votes++
	} else if s.Close < s.SMA20 {
		votes--
	}
	if s.MACD > s.MACDSignal {
		votes++
	} else if s.MACD < s.MACDSignal {
		votes--
	}
	if s.RSI14 > 70 {
		votes--
	} else if s.RSI14 < 30 {
		votes++
	}

	switch {
	case votes >= 2:
		return Bullish
	case votes <= -2:
		return Bearish
	default:
		return Neutral
	}
}

// SMA returns the simple moving average of the final window closes.
func SMA(closes []float64, window int) float64 {
	if window <= 0 || len(closes) < window {
		return 0
	}
	return stat.Mean(closes[len(closes)-window:], nil)
}

// EMA returns the exponential moving average series over closes, seeded
// with the first close.
func EMA(closes []float64, window int) []float64 {
	if window <= 0 || len(closes) == 0 {
		return nil
	}

	alpha := 2.0 / (float64(window) + 1.0)
	ema := make([]float64, len(closes))
	ema[0] = closes[0]
	for ii := 1; ii < len(closes); ii++ {
		ema[ii] = alpha*closes[ii] + (1-alpha)*ema[ii-1]
	}
	return ema
}

// RSI returns the relative strength index over the final window using
// Wilder smoothing.
func RSI(closes []float64, window int) float64 {
	if window <= 0 || len(closes) <= window {
		return 0
	}

	var avgGain, avgLoss float64
	for ii := 1; ii <= window; ii++ {
		change := closes[ii] - closes[ii-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(window)
	avgLoss /= float64(window)

	for ii := window + 1; ii < len(closes); ii++ {
		change := closes[ii] - closes[ii-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(window-1) + gain) / float64(window)
		avgLoss = (avgLoss*float64(window-1) + loss) / float64(window)
	}

	if avgLoss == 0 {
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD returns the MACD line and its 9-period signal line.
func MACD(closes []float64) (macd float64, signal float64) {
	if len(closes) == 0 {
		return 0, 0
	}

	fast := EMA(closes, 12)
	slow := EMA(closes, 26)
	line := make([]float64, len(closes))
	for ii := range closes {
		line[ii] = fast[ii] - slow[ii]
	}
	signalLine := EMA(line, 9)
	return line[len(line)-1], signalLine[len(signalLine)-1]
}

// Bollinger returns the upper and lower bands: the window SMA plus and
// minus two population standard deviations.
func Bollinger(closes []float64, window int) (upper float64, lower float64) {
	if window <= 0 || len(closes) < window {
		return 0, 0
	}

	tail := closes[len(closes)-window:]
	mean := stat.Mean(tail, nil)
	dev := stat.PopStdDev(tail, nil)
	return mean + 2*dev, mean - 2*dev
}

// ComputeSignals derives the indicator snapshot from a chronological
// close series.
func ComputeSignals(closes []float64) (*Signals, error) {
	if len(closes) < minSignalCloses {
		return nil, ErrInsufficientHistory
	}

	ema12 := EMA(closes, 12)
	ema26 := EMA(closes, 26)
	macd, macdSignal := MACD(closes)
	upper, lower := Bollinger(closes, 20)

	signals := &Signals{
		Close:         closes[len(closes)-1],
		SMA20:         SMA(closes, 20),
		EMA12:         ema12[len(ema12)-1],
		EMA26:         ema26[len(ema26)-1],
		RSI14:         RSI(closes, 14),
		MACD:          macd,
		MACDSignal:    macdSignal,
		BollingerUp:   upper,
		BollingerDown: lower,
	}
	signals.Summary = signals.summary()
	return signals, nil
}
