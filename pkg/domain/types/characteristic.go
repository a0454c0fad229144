package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// CharacteristicType identifies a business characteristic collected by the
// wizard, e.g. "tourism_share" or "export_dependency"
type CharacteristicType string

// Validate checks that the characteristic type is well-formed
func (c CharacteristicType) Validate() error {
	if c == "" {
		return goerr.New("characteristic type cannot be empty")
	}
	if !keyPattern.MatchString(string(c)) {
		return goerr.New("characteristic type must start with a letter and contain only letters, digits or underscores", goerr.V("characteristic_type", c))
	}
	return nil
}

// String returns the string representation of CharacteristicType
func (c CharacteristicType) String() string {
	return string(c)
}
