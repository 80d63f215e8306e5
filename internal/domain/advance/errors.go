package advance

import "errors"

var (
	ErrAdvanceNotFound  = errors.New("advance not found")
	ErrAdvanceNotActive = errors.New("advance is not active")
)
