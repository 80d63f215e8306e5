package hierarchy

import "errors"

var (
	ErrBranchNotFound     = errors.New("branch not found")
	ErrDepartmentNotFound = errors.New("department not found")
	ErrPositionNotFound   = errors.New("position not found")
	ErrPositionExists     = errors.New("position already exists in this department")
)
