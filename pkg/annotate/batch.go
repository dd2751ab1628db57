package annotate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ImageCommand is the per-image annotation command consumed by the
// external renderer. Field names are a fixed contract.
type ImageCommand struct {
	Tool        string    `json:"tool"`
	InputPath   string    `json:"input_path"`
	OutputPath  string    `json:"output_path"`
	Theme       string    `json:"theme"`
	Annotations []Command `json:"annotations"`
}

// NewImageCommand builds a renderer command for one captured image.
func NewImageCommand(inputPath, outputPath string, annotations []Command) ImageCommand {
	return ImageCommand{
		Tool:        "annotate_screenshot",
		InputPath:   inputPath,
		OutputPath:  outputPath,
		Theme:       "documentation",
		Annotations: annotations,
	}
}

// BatchEntry is one image's worth of annotation commands inside the
// aggregate batch file.
type BatchEntry struct {
	InputPath   string    `json:"input_path"`
	OutputPath  string    `json:"output_path"`
	Annotations []Command `json:"annotations"`
}

// Batch aggregates every annotated capture of a session for a single bulk
// invocation of the external renderer.
type Batch struct {
	Description string       `json:"description"`
	OutputDir   string       `json:"output_dir"`
	Commands    []BatchEntry `json:"commands"`
}

// NewBatch creates a batch targeting the given annotated-output directory.
func NewBatch(outputDir string, entries []BatchEntry) Batch {
	return Batch{
		Description: "Batch annotation commands for the image annotator",
		OutputDir:   outputDir,
		Commands:    entries,
	}
}

// WriteJSON writes v as indented JSON to path, creating parent directories
// as needed.
func WriteJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	return nil
}
