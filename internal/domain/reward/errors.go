package reward

import "errors"

var (
	ErrRewardNotFound         = errors.New("reward record not found")
	ErrRewardAlreadyCancelled = errors.New("reward record already cancelled")
	ErrAutomaticReadOnly      = errors.New("automatic records follow attendance and cannot be cancelled manually")
)
