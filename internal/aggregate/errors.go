package aggregate

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped to HTTP status codes by the handler layer.
var (
	ErrRoomNotFound         = errors.New("room not found")
	ErrCatalogItemNotFound  = errors.New("catalog item not found")
	ErrLineItemNotFound     = errors.New("line item not found")
	ErrDuplicateCatalogItem = errors.New("catalog item already added to this room")
)

// ValidationError reports invalid line-item input detected before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
