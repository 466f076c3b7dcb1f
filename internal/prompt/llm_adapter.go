package prompt

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/longregen/pipegen/internal/ports"
)

// ModelClientAdapter adapts the pipegen model client to dspy-go's LLM
// interface. Only plain text generation is wired; the other capabilities are
// not needed for signature execution or few-shot bootstrapping and return
// explicit errors.
type ModelClientAdapter struct {
	client ports.ModelClient
}

// NewModelClientAdapter creates a new model client adapter
func NewModelClientAdapter(client ports.ModelClient) *ModelClientAdapter {
	return &ModelClientAdapter{client: client}
}

// Generate implements the dspy-go LLM interface
func (a *ModelClientAdapter) Generate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	text, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("model completion failed: %w", err)
	}

	return &core.LLMResponse{
		Content: text,
	}, nil
}

// GenerateWithJSON is not needed for chain-of-thought pipelines or
// BootstrapFewShot, which only use Generate().
func (a *ModelClientAdapter) GenerateWithJSON(ctx context.Context, prompt string, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithJSON not implemented: not required for pipeline generation")
}

// GenerateWithFunctions is not needed: generated pipelines do no tool calling.
func (a *ModelClientAdapter) GenerateWithFunctions(ctx context.Context, prompt string, functions []map[string]interface{}, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithFunctions not implemented: not required for pipeline generation")
}

// CreateEmbedding is not needed: no retrieval or similarity scoring here.
func (a *ModelClientAdapter) CreateEmbedding(ctx context.Context, input string, opts ...core.EmbeddingOption) (*core.EmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbedding not implemented: not required for pipeline generation")
}

// CreateEmbeddings is not needed: no retrieval or similarity scoring here.
func (a *ModelClientAdapter) CreateEmbeddings(ctx context.Context, inputs []string, opts ...core.EmbeddingOption) (*core.BatchEmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbeddings not implemented: not required for pipeline generation")
}

// StreamGenerate is not needed: generation and optimization run in blocking
// batch mode.
func (a *ModelClientAdapter) StreamGenerate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerate not implemented: not required for pipeline generation")
}

// GenerateWithContent is not needed: pipelines are text only.
func (a *ModelClientAdapter) GenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	return nil, fmt.Errorf("GenerateWithContent not implemented: not required for pipeline generation")
}

// StreamGenerateWithContent is not needed: pipelines are text only and run in
// batch mode.
func (a *ModelClientAdapter) StreamGenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerateWithContent not implemented: not required for pipeline generation")
}

// ProviderName returns the provider name
func (a *ModelClientAdapter) ProviderName() string {
	return "ollama"
}

// ModelID returns the model identifier
func (a *ModelClientAdapter) ModelID() string {
	return a.client.Model()
}

// Capabilities returns the capabilities of this LLM
func (a *ModelClientAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapabilityChat, core.CapabilityCompletion}
}
