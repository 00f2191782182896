package service

import (
	"errors"
	"fmt"
)

// EntityName identifies internship records in validation failures and alerts
const EntityName = "stageRadiologie"

// Error keys carried by ValidationError
const (
	ErrorKeyIDExists   = "idexists"
	ErrorKeyIDNull     = "idnull"
	ErrorKeyIDInvalid  = "idinvalid"
	ErrorKeyIDNotFound = "idnotfound"
)

// ValidationError reports a request that is well-formed but violates an
// identifier rule. It is rendered as a 400 by the API layer.
type ValidationError struct {
	Message    string
	EntityName string
	ErrorKey   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s (%s.%s)", e.Message, e.EntityName, e.ErrorKey)
}

func newValidationError(message, key string) *ValidationError {
	return &ValidationError{Message: message, EntityName: EntityName, ErrorKey: key}
}

// IsValidationError reports whether err is a ValidationError with the given key.
// An empty key matches any ValidationError.
func IsValidationError(err error, key string) bool {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return false
	}
	return key == "" || verr.ErrorKey == key
}
