package config

import (
	"context"

	"github.com/secmon-lab/preparedness/pkg/domain/interfaces"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
)

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend string) *Repository {
	return &Repository{backend: backend}
}

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// LoadIntoRepository exposes loadIntoRepository for testing
func LoadIntoRepository(ctx context.Context, repo interfaces.Repository, catalog *model.Catalog) error {
	return loadIntoRepository(ctx, repo, catalog)
}
