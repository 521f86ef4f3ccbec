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

package reports

import (
	"context"
	"time"

	"github.com/fundflow/ff-api/data"
	"github.com/fundflow/ff-api/decompose"
	"github.com/fundflow/ff-api/indicators"
	"github.com/rs/zerolog/log"
)

// Get returns the research note for a ticker, serving from the disk cache
// unless force is set. Generation pulls the statement and profile through
// the data manager, decomposes the most recent period, and feeds the
// numbers to the generator.
func Get(ctx context.Context, manager *data.Manager, generator Generator, ticker string, force bool) (*Report, error) {
	if !force {
		if report, ok := CachedReport(ticker); ok {
			return report, nil
		}
	}

	stmt, err := manager.GetIncomeStatement(ctx, ticker)
	if err != nil {
		return nil, err
	}

	info, err := manager.GetCompanyProfile(ctx, ticker)
	if err != nil {
		// the note is still useful without scalar attributes
		log.Warn().Err(err).Str("Ticker", ticker).Msg("generating report without company profile")
		info = nil
	}

	d := decompose.Decompose(stmt, 0, decompose.NewScenario())
	deltas := indicators.YoY(stmt, nil)

	prompt := BuildPrompt(info, d, deltas)
	text, model, err := generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Ticker:      ticker,
		Text:        text,
		Model:       model,
		GeneratedAt: time.Now().UTC(),
	}
	StoreReport(report)
	return report, nil
}
