package generate

import (
	"context"

	"github.com/ytget/ai-generator/internal/model"
)

// Generator defines the interface for the generation service.
type Generator interface {
	// Generate submits prompt for kind and returns the produced asset URL.
	Generate(ctx context.Context, kind model.MediaKind, prompt string) (string, error)
}
