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

import "context"

// FundamentalsProvider serves statement tables and company profiles.
type FundamentalsProvider interface {
	IncomeStatement(ctx context.Context, ticker string) (*Statement, error)
	CompanyProfile(ctx context.Context, ticker string) (*CompanyInfo, error)
}

// MarketDataProvider serves live prices, price history, and headlines.
type MarketDataProvider interface {
	Quote(ctx context.Context, ticker string) (*Quote, error)
	History(ctx context.Context, ticker string, days int) ([]float64, error)
	News(ctx context.Context, ticker string, maxItems int) ([]NewsItem, error)
}
