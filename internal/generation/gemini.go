// gemini.go
//
// Learning-content backend for the studyhub application
// Copyright (c) 2026 Edukita <dev@edukita.io> (https://edukita.io)
//
// This file is part of studyhub.
// studyhub is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// studyhub is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with studyhub.
// If not, see <https://www.gnu.org/licenses/>.

package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"

	"github.com/edukita/studyhub/internal/logger"
	"github.com/edukita/studyhub/internal/types"
)

const maxRetries = 3

// Gemini implements Generator over the google.golang.org/genai client.
type Gemini struct {
	log    *logger.Logger
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, log *logger.Logger, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{
		log:    log.With("service", "gemini", "model", model),
		client: client,
		model:  model,
	}, nil
}

// Generate performs a single blocking generation call. Rate-limit and
// unavailable-class responses are retried with exponential backoff, at most
// maxRetries times; all other failures surface immediately.
func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	prompt := buildPrompt(req)

	text, err := backoff.RetryWithData(func() (string, error) {
		result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
		if err != nil {
			if !retryable(err) {
				return "", backoff.Permanent(err)
			}
			g.log.Warn("generation call retried", "kind", req.Kind, "error", err)
			return "", err
		}
		out := result.Text()
		if out == "" {
			return "", backoff.Permanent(fmt.Errorf("empty response from model"))
		}
		return out, nil
	}, backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx))

	if err != nil {
		return "", fmt.Errorf("%w: %v", types.ErrUpstream, err)
	}
	return text, nil
}

// GenerateStream forwards upstream text fragments to emit as they arrive.
// Streaming calls are not retried: a fragment may already have been forwarded.
func (g *Gemini) GenerateStream(ctx context.Context, req Request, emit func(chunk string) error) error {
	prompt := buildPrompt(req)

	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), nil) {
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrUpstream, err)
		}
		chunk := resp.Text()
		if chunk == "" {
			continue
		}
		if err := emit(chunk); err != nil {
			return err
		}
	}
	return nil
}

// retryable reports whether an upstream error is in the rate-limit or
// unavailable class. The genai SDK does not export stable error types for
// these, so this matches on status text.
func retryable(err error) bool {
	msg := err.Error()
	for _, marker := range []string{"429", "RESOURCE_EXHAUSTED", "503", "UNAVAILABLE", "DEADLINE_EXCEEDED"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
