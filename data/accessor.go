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
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog/log"
)

// Concept names a line-item concept the decomposition engine needs.
type Concept string

const (
	ConceptRevenue  Concept = "revenue"
	ConceptCOGS     Concept = "cogs"
	ConceptOpEx     Concept = "opex"
	ConceptRnD      Concept = "rnd"
	ConceptSGA      Concept = "sga"
	ConceptTaxes    Concept = "taxes"
	ConceptInterest Concept = "interest"
)

// defaultAliases maps each concept to its candidate line-item names.
// Order matters: different data-source schema versions sometimes populate
// only one of two aliases for the same concept, so candidates are tried
// in the order given and the first match wins.
var defaultAliases = map[Concept][]string{
	ConceptRevenue:  {"Total Revenue", "Revenue"},
	ConceptCOGS:     {"Cost Of Revenue", "Cost of Goods Sold"},
	ConceptOpEx:     {"Operating Expense", "Total Operating Expenses"},
	ConceptRnD:      {"Research And Development"},
	ConceptSGA:      {"Selling General And Administration"},
	ConceptTaxes:    {"Tax Provision", "Income Tax Expense"},
	ConceptInterest: {"Interest Expense", "Interest Income Expense Net"},
}

var aliasOverrides = map[Concept][]string{}

// Aliases returns the candidate line-item names for a concept, honoring
// any override loaded from an aliases file.
func Aliases(concept Concept) []string {
	if names, ok := aliasOverrides[concept]; ok {
		return names
	}
	return defaultAliases[concept]
}

// LoadAliases reads a TOML file mapping concept names to candidate
// line-item lists and installs them as overrides. Concepts absent from
// the file keep their defaults.
func LoadAliases(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	parsed := map[string][]string{}
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		log.Error().Err(err).Str("Path", path).Msg("could not parse aliases file")
		return err
	}

	for concept, names := range parsed {
		if len(names) > 0 {
			aliasOverrides[Concept(concept)] = names
		}
	}

	log.Info().Str("Path", path).Int("NumOverrides", len(parsed)).Msg("loaded line-item alias overrides")
	return nil
}

// Lookup tries each candidate name in order against the period's line
// items and returns the first match's value. A null cell counts as "no
// match, keep trying". Missing data never fails: if no candidate matches,
// or the period carries no items at all, the result is 0.0 — not every
// company reports every line item every period.
func (p *Period) Lookup(candidates []string) float64 {
	if p == nil {
		return 0.0
	}

	for _, name := range candidates {
		for ii := range p.Items {
			if p.Items[ii].Name == name && p.Items[ii].Value != nil {
				return *p.Items[ii].Value
			}
		}
	}

	return 0.0
}
