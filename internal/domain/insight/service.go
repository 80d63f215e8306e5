package insight

import (
	"context"
	"errors"
)

// FallbackMessage is shown whenever the text provider is missing or fails.
const FallbackMessage = "عذراً، حدث خطأ أثناء معالجة طلبك الذكي."

// SystemInstruction frames every request as an HR assistant for the Madar system.
const SystemInstruction = "أنت مساعد ذكي متخصص في الموارد البشرية لنظام المدار في العراق. أجب باللغة العربية بأسلوب احترافي."

var ErrProviderUnavailable = errors.New("text generation provider is not configured")

// TextGenerator produces free text for a prompt under a fixed system instruction.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type InsightService interface {
	// PayrollInsight summarises a payroll month for the dashboard banner
	PayrollInsight(ctx context.Context, month string) (InsightResponse, error)

	// Ask forwards a free-form question to the assistant
	Ask(ctx context.Context, req AskRequest) (InsightResponse, error)
}
