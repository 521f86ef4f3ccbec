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

package data

import (
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryPolicy retries a call with exponential backoff when the upstream
// signals throttling. The retry loop is synchronous: the calling goroutine
// blocks for the full backoff duration and a started sequence runs to
// completion or success.
type RetryPolicy struct {
	// MaxAttempts is the total number of invocations, including the first.
	MaxAttempts int

	// BaseDelay is doubled on every attempt: baseDelay * 2^attempt.
	BaseDelay time.Duration

	// Jitter adds a random extra delay of up to 50% of the backoff.
	Jitter bool

	// sleep is swapped out in tests
	sleep func(time.Duration)
}

// NewRetryPolicy returns the default policy: five attempts starting at a
// three second delay with jitter.
func NewRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 5,
		BaseDelay:   3 * time.Second,
		Jitter:      true,
		sleep:       time.Sleep,
	}
}

// IsThrottle reports whether an error looks like an upstream rate limit.
// Providers don't share a typed error for this, so the check sniffs the
// message the same way across all of them.
func IsThrottle(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "rate") ||
		strings.Contains(msg, "429")
}

// Do invokes fn, retrying on throttle errors until MaxAttempts is
// exhausted. Any other error propagates immediately without retry; the
// last throttle error is returned when attempts run out.
func (rp RetryPolicy) Do(fn func() error) error {
	sleep := rp.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 0; attempt < rp.MaxAttempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		if !IsThrottle(err) {
			return err
		}

		if attempt < rp.MaxAttempts-1 {
			delay := rp.BaseDelay * (1 << attempt)
			if rp.Jitter {
				delay += time.Duration(rand.Int63n(int64(delay)/2 + 1))
			}
			log.Warn().Err(err).Int("Attempt", attempt).Dur("Delay", delay).Msg("throttled by upstream; backing off")
			sleep(delay)
		}
	}

	return err
}
