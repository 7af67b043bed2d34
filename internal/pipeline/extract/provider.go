package extract

import "context"

// Generator is the minimal contract the extraction stage has on a
// text-generation service.
type Generator interface {
	Generate(ctx context.Context, systemInstruction string, userPrompt string) (string, error)
}
