package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee code already exists")
	ErrDuplicateWeekday   = errors.New("working days contain the same weekday twice")
	ErrInvalidCredentials = errors.New("invalid employee code or password")
)
