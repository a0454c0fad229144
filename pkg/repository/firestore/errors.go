package firestore

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/interfaces"
)

var (
	// ErrNotFound is returned when the requested document does not exist
	ErrNotFound = interfaces.ErrNotFound

	// ErrInvalidArgument is returned when a record cannot be stored as given
	ErrInvalidArgument = goerr.New("invalid argument")
)
