package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/longregen/pipegen/internal/domain"
	"github.com/longregen/pipegen/internal/domain/models"
)

// Artifact filenames written by a generation run. These four names are also
// the download allow-list of the HTTP front end.
const (
	PipelineCodeFile    = "generated_pipeline.go"
	TaskConfigFile      = "task_config.json"
	OptimizedFile       = "optimized_pipeline.json"
	SyntheticPromptFile = "synthetic_data_prompt.txt"
)

// AllowedArtifacts returns the fixed download allow-list.
func AllowedArtifacts() []string {
	return []string{PipelineCodeFile, TaskConfigFile, OptimizedFile, SyntheticPromptFile}
}

// IsAllowedArtifact reports whether a filename is in the allow-list. The
// check is exact; path traversal never reaches the filesystem.
func IsAllowedArtifact(name string) bool {
	for _, allowed := range AllowedArtifacts() {
		if name == allowed {
			return true
		}
	}
	return false
}

// TaskConfig is the persisted task-configuration document.
type TaskConfig struct {
	TaskInfo                models.TaskSpec  `json:"task_info"`
	Examples                []models.Example `json:"examples"`
	PipelineFile            string           `json:"pipeline_file"`
	SyntheticDataPromptFile string           `json:"synthetic_data_prompt_file"`
}

// PersistenceService writes and reads generation artifacts under a single
// output directory. Write failures are recoverable for the overall session:
// callers log and continue without the artifact.
type PersistenceService struct {
	dir string
}

// NewPersistenceService creates a persistence service rooted at dir.
func NewPersistenceService(dir string) *PersistenceService {
	return &PersistenceService{dir: dir}
}

// Path resolves an artifact filename inside the output directory.
func (s *PersistenceService) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// SavePipeline serializes a pipeline's field descriptions and, when
// optimized, its demonstration set to a JSON document.
func (s *PersistenceService) SavePipeline(pipeline *models.Pipeline, name string) error {
	data, err := json.MarshalIndent(pipeline, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArtifactWrite, err)
	}
	return s.writeFile(name, data)
}

// LoadPipeline reads a pipeline document back from disk. Field-description
// metadata round-trips exactly.
func (s *PersistenceService) LoadPipeline(name string) (*models.Pipeline, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline: %w", err)
	}
	var pipeline models.Pipeline
	if err := json.Unmarshal(data, &pipeline); err != nil {
		return nil, fmt.Errorf("failed to decode pipeline: %w", err)
	}
	return &pipeline, nil
}

// SaveTaskConfig writes the task-configuration document.
func (s *PersistenceService) SaveTaskConfig(task models.TaskSpec, examples []models.Example) error {
	cfg := TaskConfig{
		TaskInfo:                task,
		Examples:                examples,
		PipelineFile:            PipelineCodeFile,
		SyntheticDataPromptFile: SyntheticPromptFile,
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArtifactWrite, err)
	}
	return s.writeFile(TaskConfigFile, data)
}

// LoadTaskConfig reads the task-configuration document back from disk.
func (s *PersistenceService) LoadTaskConfig() (*TaskConfig, error) {
	data, err := os.ReadFile(s.Path(TaskConfigFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read task config: %w", err)
	}
	var cfg TaskConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode task config: %w", err)
	}
	return &cfg, nil
}

// SavePipelineCode writes the generated pipeline source file.
func (s *PersistenceService) SavePipelineCode(code string) error {
	return s.writeFile(PipelineCodeFile, []byte(code))
}

// SaveSyntheticPrompt writes the synthetic-data-generation prompt file.
func (s *PersistenceService) SaveSyntheticPrompt(prompt string) error {
	return s.writeFile(SyntheticPromptFile, []byte(prompt))
}

func (s *PersistenceService) writeFile(name string, data []byte) error {
	if err := os.WriteFile(s.Path(name), data, 0644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrArtifactWrite, err)
	}
	return nil
}
