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

import "errors"

var (
	// ErrMalformedStatement indicates the provider payload violated the
	// statement contract (wrong shape or non-numeric cells). This is the
	// only condition that stops the pipeline; ordinary missing line items
	// are substituted with zero instead.
	ErrMalformedStatement = errors.New("statement payload is malformed")

	ErrNotFound      = errors.New("security not found")
	ErrNoQuote       = errors.New("no quote returned")
	ErrEmptyUniverse = errors.New("no ticker listings available")
)
