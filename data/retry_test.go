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

package data_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundflow/ff-api/data"
)

var _ = Describe("Retry policy", func() {
	var policy data.RetryPolicy

	BeforeEach(func() {
		policy = data.NewRetryPolicy()
		policy.MaxAttempts = 3
		policy.BaseDelay = 0
		policy.Jitter = false
	})

	When("the call is throttled then recovers", func() {
		It("retries until it succeeds", func() {
			calls := 0
			err := policy.Do(func() error {
				calls++
				if calls < 3 {
					return fmt.Errorf("HTTP request returned invalid status code: 429 Too Many Requests")
				}
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(calls).To(Equal(3))
		})
	})

	When("the call is throttled on every attempt", func() {
		It("returns the last error after exhausting attempts", func() {
			calls := 0
			err := policy.Do(func() error {
				calls++
				return errors.New("too many requests")
			})
			Expect(err).To(HaveOccurred())
			Expect(calls).To(Equal(3))
		})
	})

	When("the error is not a throttle", func() {
		It("propagates immediately without retrying", func() {
			calls := 0
			boom := errors.New("malformed payload")
			err := policy.Do(func() error {
				calls++
				return boom
			})
			Expect(err).To(MatchError(boom))
			Expect(calls).To(Equal(1))
		})
	})

	When("the first attempt succeeds", func() {
		It("calls the function exactly once", func() {
			calls := 0
			Expect(policy.Do(func() error {
				calls++
				return nil
			})).To(Succeed())
			Expect(calls).To(Equal(1))
		})
	})
})

var _ = Describe("Throttle detection", func() {
	It("recognizes rate limit phrasings", func() {
		Expect(data.IsThrottle(errors.New("too many requests"))).To(BeTrue())
		Expect(data.IsThrottle(errors.New("Rate limit exceeded"))).To(BeTrue())
		Expect(data.IsThrottle(errors.New("status code: 429"))).To(BeTrue())
	})

	It("ignores other failures", func() {
		Expect(data.IsThrottle(nil)).To(BeFalse())
		Expect(data.IsThrottle(errors.New("connection refused"))).To(BeFalse())
	})
})
