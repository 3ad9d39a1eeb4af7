package triage

import "github.com/codezero-health/er-intake/internal/domain/entities"

// AdviceForLevel returns the per-level DO / DON'T pre-arrival guidance.
// Advice is merged into an assessment additively and never touches the
// classification fields.
func AdviceForLevel(level entities.TriageLevel) entities.Advice {
	switch level {
	case entities.TriageEmergency:
		return entities.Advice{
			Do: []string{
				"Stay calm and sit or lie down",
				"Unlock your front door if someone is coming to you",
				"Keep your phone charged and nearby",
				"Have your medication list ready",
			},
			Dont: []string{
				"Do not drive yourself if symptoms are severe",
				"Do not eat or drink anything",
				"Do not take additional medication unless instructed",
			},
		}
	case entities.TriageUrgent:
		return entities.Advice{
			Do: []string{
				"Arrange transport to the ER or urgent care",
				"Bring a list of current medications",
				"Note when symptoms started",
			},
			Dont: []string{
				"Do not ignore worsening symptoms",
				"Do not take pain medication that masks symptoms before evaluation",
			},
		}
	default:
		return entities.Advice{
			Do: []string{
				"Monitor your symptoms",
				"Rest and stay hydrated",
				"Book an appointment with your primary care physician",
			},
			Dont: []string{
				"Do not hesitate to return if symptoms worsen suddenly",
			},
		}
	}
}
