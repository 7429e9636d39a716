package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Threads []threadSchema `toml:"threads"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported threads schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type threadSchema struct {
	ID          string            `toml:"id"`
	Name        string            `toml:"name"`
	Description string            `toml:"description,omitempty"`
	WorkingOn   workingOnSchema   `toml:"working_on"`
	Todo        []string          `toml:"todo,omitempty"`
	Upcoming    []string          `toml:"upcoming,omitempty"`
	Done        []completedSchema `toml:"done,omitempty"`
	LastTouched string            `toml:"last_touched"`
	CreatedAt   string            `toml:"created_at"`
	Status      string            `toml:"status"`
}

type workingOnSchema struct {
	Task         string   `toml:"task"`
	CriticalPath string   `toml:"critical_path,omitempty"`
	Bumps        []string `toml:"bumps,omitempty"`
}

type completedSchema struct {
	Task        string `toml:"task"`
	Test        string `toml:"test,omitempty"`
	CompletedAt string `toml:"completed_at,omitempty"`
}
