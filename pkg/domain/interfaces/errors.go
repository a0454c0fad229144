package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is wrapped by every Repository implementation when a record does not exist
var ErrNotFound = goerr.New("not found")
