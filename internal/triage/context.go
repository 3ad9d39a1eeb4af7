package triage

import (
	"strings"

	"github.com/codezero-health/er-intake/internal/domain/entities"
)

// DeriveContext computes the clinical context flags from the chief
// complaint. It depends only on the complaint text and is evaluated
// exactly once per triage cycle, so answering a FAST question can
// never flip a cardiac flag mid-assessment.
func DeriveContext(chiefComplaint string) entities.ClinicalContext {
	lower := strings.ToLower(chiefComplaint)
	return entities.ClinicalContext{
		IsCardiac:     matchesAny(lower, contextKeywords["cardiac"]),
		IsStroke:      matchesAny(lower, contextKeywords["stroke"]),
		IsRespiratory: matchesAny(lower, contextKeywords["respiratory"]),
		IsAbdominal:   matchesAny(lower, contextKeywords["abdominal"]),
		IsDiabetic:    matchesAny(lower, contextKeywords["diabetic"]),
	}
}

func matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
