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
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"google.golang.org/genai"
)

// ErrNoAPIKey indicates report generation is not configured.
var ErrNoAPIKey = errors.New("gemini api key is not configured")

// Report is one generated research note.
type Report struct {
	Ticker      string    `json:"ticker"`
	Text        string    `json:"text"`
	Model       string    `json:"model"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Generator drafts report text from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, string, error)
}

// geminiGenerator calls the hosted Gemini API.
type geminiGenerator struct{}

// NewGemini returns the production generator, configured from
// gemini.token and gemini.model.
func NewGemini() Generator {
	return &geminiGenerator{}
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, string, error) {
	apiKey := viper.GetString("gemini.token")
	if apiKey == "" {
		return "", "", ErrNoAPIKey
	}

	model := viper.GetString("gemini.model")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Error().Err(err).Msg("could not create genai client")
		return "", "", err
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		},
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		log.Error().Err(err).Str("Model", model).Msg("report generation failed")
		return "", "", err
	}

	return result.Text(), model, nil
}
