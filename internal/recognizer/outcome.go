package recognizer

import (
	"strings"

	"imgtext/internal/domain"
)

// Classify turns the capability's raw answer into a structured outcome.
// Blank answers become the fixed no-detection placeholder; answers starting
// with the sentinel prefix become NotDetected with the stated reason.
func Classify(raw string) domain.RecognitionOutcome {
	text := strings.TrimSpace(raw)
	if text == "" {
		return domain.RecognitionOutcome{
			Kind:   domain.OutcomeNotDetected,
			Text:   domain.EmptyRecognitionText,
			Reason: domain.ReasonUnknown,
		}
	}

	// Models sometimes wrap the sentinel in the quotes used by the instruction.
	unquoted := strings.Trim(text, "\"「」")
	if reason, ok := strings.CutPrefix(unquoted, domain.NoTextSentinelPrefix); ok {
		reason = strings.TrimSpace(reason)
		if reason == "" {
			reason = domain.ReasonUnknown
		}
		return domain.RecognitionOutcome{
			Kind:   domain.OutcomeNotDetected,
			Text:   text,
			Reason: reason,
		}
	}

	return domain.RecognitionOutcome{Kind: domain.OutcomeRecognized, Text: text}
}
