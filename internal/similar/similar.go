// Package similar generates variations of a user question with a
// single model call. The model is asked to answer with a JSON object
// carrying a "list" array; output parts that do not decode are skipped.
package similar

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"aide/internal/openai"
)

// DefaultTopN is the number of questions requested when the caller
// does not specify one.
const DefaultTopN = 5

const promptFormat = `You are an experienced AI trainer. Generalize the user's question into at most %d similar questions.

Answer strictly as a JSON object with the generated questions in a "list" array, for example {"list": ["..."]}. Return nothing but that object.`

// Generator produces similar questions through a Responses API client.
type Generator struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewGenerator creates a generator using client and model.
func NewGenerator(client *openai.Client, model string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, model: model, logger: logger}
}

// Generate asks the model for up to topn questions similar to query.
// A nil slice with a nil error means the model produced no decodable
// JSON output.
func (g *Generator) Generate(ctx context.Context, query string, topn int) ([]string, error) {
	if topn <= 0 {
		topn = DefaultTopN
	}

	resp, err := g.client.Responses(ctx, &openai.Request{
		Model: g.model,
		Input: []openai.Message{
			{Role: "system", Content: fmt.Sprintf(promptFormat, topn)},
			{Role: "user", Content: query},
		},
	})
	if err != nil {
		return nil, err
	}

	for _, text := range resp.TextParts() {
		var payload struct {
			List []string `json:"list"`
		}
		if err := json.Unmarshal([]byte(text), &payload); err != nil {
			g.logger.Debug("skipping undecodable output part", "error", err)
			continue
		}
		if payload.List == nil {
			continue
		}
		if len(payload.List) > topn {
			payload.List = payload.List[:topn]
		}
		return payload.List, nil
	}

	g.logger.Warn("model returned no decodable question list", "response_id", resp.ID)
	return nil, nil
}
