package dto

// ExampleDTO is one input/output training example on the wire.
type ExampleDTO struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Description string `json:"description,omitempty"`
}

// GeneratePipelineRequest is the body of POST /api/generate-pipeline.
type GeneratePipelineRequest struct {
	TaskDescription string       `json:"taskDescription"`
	InputType       string       `json:"inputType,omitempty"`
	OutputType      string       `json:"outputType,omitempty"`
	OllamaModel     string       `json:"ollamaModel,omitempty"`
	Examples        []ExampleDTO `json:"examples"`
}

// GeneratePipelineResponse reports a finished generation run. Optimization
// failure is not an error at this layer: OptimizationSuccess false with a
// message means the unoptimized pipeline is being served.
type GeneratePipelineResponse struct {
	SessionID           string   `json:"sessionId"`
	PipelineCode        string   `json:"pipelineCode"`
	OptimizationSuccess bool     `json:"optimizationSuccess"`
	OptimizationMessage string   `json:"optimizationMessage"`
	SyntheticPrompt     string   `json:"syntheticPrompt"`
	FilesGenerated      []string `json:"filesGenerated"`
}

// TestPipelineRequest is the body of POST /api/test-pipeline.
type TestPipelineRequest struct {
	SessionID string `json:"sessionId"`
	TestInput string `json:"testInput"`
}

// TestPipelineResponse carries one inference result.
type TestPipelineResponse struct {
	SessionID string `json:"sessionId"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Optimized bool   `json:"optimized"`
}

// HealthResponse reports service status and model-service reachability.
type HealthResponse struct {
	Status       string `json:"status"`
	Model        string `json:"model"`
	BaseURL      string `json:"baseUrl"`
	ModelService string `json:"modelService"`
}
