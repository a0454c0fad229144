package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrMissingID       = goerr.New("id is required")
	ErrCatalogRequired = goerr.New("catalog file is required for memory backend")
	ErrInvalidBackend  = goerr.New("invalid repository backend")
	ErrInvalidLogLevel = goerr.New("invalid log level")
	ErrInvalidFormat   = goerr.New("invalid log format")
)

// Context keys for error values
const (
	CatalogPathKey = "catalog_path"
	SectionKey     = "section"
	IndexKey       = "index"
)
