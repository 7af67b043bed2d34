package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"github.com/nvasani/inspectapi/internal/pipeline/extract"
	"github.com/nvasani/inspectapi/pkg/logx"
)

type generator struct {
	client    *genai.Client
	modelName string
	logger    *logx.Logger
}

// NewGenerator builds a Gemini-backed text generator. The client is tied
// to ctx and released when it is cancelled.
func NewGenerator(ctx context.Context, apiKey string, modelName string) (extract.Generator, error) {
	logger := logx.NewLogger("llm_gemini")

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
		return nil, err
	}

	logger.Info("Gemini client created", "model", modelName)
	return &generator{client: c, modelName: modelName, logger: logger}, nil
}

func (g *generator) Generate(ctx context.Context, systemInstruction string, userPrompt string) (string, error) {
	log := g.logger.With("traceId", ctx.Value("traceId"))

	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: systemInstruction},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(
		ctx,
		g.modelName,
		genai.Text(userPrompt),
		contentConfig,
	)
	if err != nil {
		log.Error("Gemini generation failed", "error", err)
		return "", err
	}
	if result == nil {
		return "", errors.New("gemini: empty generation result")
	}
	return result.Text(), nil
}
