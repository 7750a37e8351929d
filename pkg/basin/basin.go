package basin

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectFile is the scenario file name looked up inside a project directory.
const ProjectFile = "basin.yaml"

// Load reads a basin scenario from a YAML file. Fields absent from the file
// stay unset.
func Load(path string) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading basin file: %w", err)
	}

	var in Input
	if err := yaml.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parsing basin YAML: %w", err)
	}

	return &in, nil
}

// LoadProject loads a basin scenario from a project directory.
// It looks for basin.yaml in the given directory.
func LoadProject(projectDir string) (*Input, error) {
	return Load(filepath.Join(projectDir, ProjectFile))
}

// Save writes a scenario as YAML, omitting nothing: unset fields are
// written as null.
func Save(path string, in *Input) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding basin YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing basin file: %w", err)
	}
	return nil
}
