package evaluation

import "errors"

var (
	ErrCriteriaNotFound   = errors.New("evaluation criteria not found")
	ErrEvaluationNotFound = errors.New("evaluation not found")
)
