package insight

import "github.com/madar-hris/hrms-backend-go/internal/pkg/validator"

type AskRequest struct {
	Prompt string `json:"prompt" validate:"required,max=4000"`
}

func (r *AskRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type InsightResponse struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}
