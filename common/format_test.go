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

package common_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundflow/ff-api/common"
)

var _ = Describe("FormatCompact", func() {
	It("formats trillions with one decimal", func() {
		Expect(common.FormatCompact(2.5e12)).To(Equal("$2.5T"))
	})

	It("formats billions with one decimal", func() {
		Expect(common.FormatCompact(40e9)).To(Equal("$40.0B"))
	})

	It("uses the billion tier exactly at the boundary", func() {
		Expect(common.FormatCompact(1_000_000_000)).To(Equal("$1.0B"))
	})

	It("stays in the million tier just below one billion", func() {
		Expect(common.FormatCompact(999_999_999)).To(Equal("$1000.0M"))
	})

	It("formats millions with one decimal", func() {
		Expect(common.FormatCompact(3_400_000)).To(Equal("$3.4M"))
	})

	It("renders small values as whole dollars", func() {
		Expect(common.FormatCompact(950)).To(Equal("$950"))
	})

	It("has no thousand tier", func() {
		Expect(common.FormatCompact(25_000)).To(Equal("$25000"))
	})
})

var _ = Describe("FormatSigned", func() {
	It("prepends the sign before the dollar symbol", func() {
		Expect(common.FormatSigned(-1.5e9)).To(Equal("-$1.5B"))
	})

	It("formats millions with no decimals", func() {
		Expect(common.FormatSigned(250e6)).To(Equal("$250M"))
	})

	It("has a thousand tier", func() {
		Expect(common.FormatSigned(-42_000)).To(Equal("-$42K"))
	})

	It("renders sub-thousand values as whole dollars", func() {
		Expect(common.FormatSigned(999)).To(Equal("$999"))
	})

	It("renders nil as N/A", func() {
		Expect(common.FormatSignedOrNA(nil)).To(Equal("N/A"))
	})
})

var _ = Describe("CacheKey", func() {
	It("is stable for the same parts", func() {
		Expect(common.CacheKey("AAPL", "statement")).To(Equal(common.CacheKey("AAPL", "statement")))
	})

	It("differs when parts shift across boundaries", func() {
		Expect(common.CacheKey("AA", "PL")).NotTo(Equal(common.CacheKey("A", "APL")))
	})
})
