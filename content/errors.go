package content

import (
	"errors"
	"fmt"
)

var (
	ErrItemRemoteIDRequired = errors.New("content: item remote id is required")
	ErrItemTitleRequired    = errors.New("content: item title is required")
	ErrItemStatusInvalid    = errors.New("content: item status is invalid")
	ErrPoolPayloadInvalid   = errors.New("content: pool payload failed schema validation")
	ErrTargetNameRequired   = errors.New("content: target name is required")
)

// NotFoundError reports a missing record in the local cache.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
