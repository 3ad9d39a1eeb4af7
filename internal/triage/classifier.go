package triage

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/codezero-health/er-intake/internal/domain/entities"
)

// Classifier is the deterministic triage pipeline. It is pure and
// stateless: the same complaint and answers always produce the same
// assessment, which is what makes it both the fallback and the ground
// truth for any AI-augmented path.
type Classifier struct {
	extractor *RedFlagExtractor
}

// NewClassifier creates a new classifier
func NewClassifier() *Classifier {
	return &Classifier{extractor: NewRedFlagExtractor()}
}

// Classify runs the full pipeline: derive context, interpret each
// answer, aggregate flags, classify, derive conditions and actions.
// It never fails; an unexpected internal error resolves to URGENT
// because under-triage is the costlier failure mode.
func (c *Classifier) Classify(chiefComplaint string, answers []entities.Answer) (assessment entities.Assessment) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("complaint", truncate(chiefComplaint, 50)).
				Msg("classification failed, defaulting to URGENT")
			assessment = safeDefaultAssessment()
		}
	}()

	clinical := DeriveContext(chiefComplaint)
	complaintLower := strings.ToLower(chiefComplaint)

	var (
		flags            []entities.RedFlag
		positiveFindings []string
		negativeFindings []string
		severity         int
	)

	for _, answer := range answers {
		finding := c.extractor.Extract(clinical, answer)
		flags = append(flags, finding.Flags...)
		positiveFindings = append(positiveFindings, finding.PositiveFindings...)
		negativeFindings = append(negativeFindings, finding.NegativeFindings...)
		severity += finding.Severity
	}

	flags = dedupeFlags(flags)

	fastPositive := containsFlag(flags, entities.FlagFacialAsymmetry) ||
		containsFlag(flags, entities.FlagArmWeakness)
	strokeEmergency := clinical.IsStroke &&
		(containsFlag(flags, entities.FlagSuddenOnset) || fastPositive)

	level, riskScore := classify(flags, severity, complaintLower, fastPositive, strokeEmergency)

	assessment = entities.Assessment{
		TriageLevel:         level,
		RiskScore:           riskScore,
		RedFlags:            flagsOrSentinel(flags),
		SuspectedConditions: suspectedConditions(clinical, flags),
		RecommendedAction:   recommendedAction(level),
		TimeSensitivity:     timeSensitivity(level),
		AssessmentText:      buildAssessmentText(positiveFindings, negativeFindings, flags, level),
	}

	log.Info().
		Str("triage_level", string(level)).
		Int("risk_score", riskScore).
		Int("red_flags", len(flags)).
		Str("complaint", truncate(chiefComplaint, 50)).
		Msg("triage assessment")

	return assessment
}

func classify(flags []entities.RedFlag, severity int, complaintLower string, fastPositive, strokeEmergency bool) (entities.TriageLevel, int) {
	switch {
	case fastPositive || strokeEmergency || len(flags) >= 3 ||
		matchesAny(complaintLower, emergencyComplaintKeywords):
		return entities.TriageEmergency, min(10, 7+len(flags))
	case len(flags) >= 1 || severity >= 3 ||
		matchesAny(complaintLower, urgentComplaintKeywords):
		return entities.TriageUrgent, min(8, 4+len(flags))
	default:
		return entities.TriageRoutine, clamp(severity, 1, 4)
	}
}

func suspectedConditions(clinical entities.ClinicalContext, flags []entities.RedFlag) []string {
	var suspected []string
	if clinical.IsCardiac {
		if containsFlag(flags, entities.FlagPainRadiation) || containsFlag(flags, entities.FlagDiaphoresis) {
			suspected = append(suspected, "Acute Coronary Syndrome")
		} else {
			suspected = append(suspected, "Chest Pain - requires evaluation")
		}
	}
	if clinical.IsStroke {
		if containsFlag(flags, entities.FlagFacialAsymmetry) || containsFlag(flags, entities.FlagArmWeakness) {
			suspected = append(suspected, "Possible Stroke (FAST positive)")
		} else {
			suspected = append(suspected, "Neurological symptoms - requires evaluation")
		}
	}
	if clinical.IsAbdominal {
		suspected = append(suspected, "Abdominal Pain - requires evaluation")
	}
	if clinical.IsRespiratory {
		suspected = append(suspected, "Respiratory Distress")
	}
	if clinical.IsDiabetic {
		suspected = append(suspected, "Glycemic emergency - requires evaluation")
	}
	if len(suspected) == 0 {
		suspected = append(suspected, "Requires clinical evaluation")
	}
	return suspected
}

func recommendedAction(level entities.TriageLevel) string {
	switch level {
	case entities.TriageEmergency:
		return "Proceed to nearest ER immediately. Call emergency services if unable to travel."
	case entities.TriageUrgent:
		return "Visit ER or urgent care within 2 hours."
	default:
		return "Schedule a visit with your primary care physician. Self-care as needed."
	}
}

func timeSensitivity(level entities.TriageLevel) string {
	switch level {
	case entities.TriageEmergency:
		return "Seek ER within 10 minutes"
	case entities.TriageUrgent:
		return "Seek medical care within 2 hours"
	default:
		return "Schedule appointment within 48 hours"
	}
}

func buildAssessmentText(positive, negative []string, flags []entities.RedFlag, level entities.TriageLevel) string {
	var parts []string
	if len(positive) > 0 {
		parts = append(parts, "Findings: "+strings.Join(head(positive, 5), "; ")+".")
	}
	if len(negative) > 0 {
		parts = append(parts, "Negative: "+strings.Join(head(negative, 3), "; ")+".")
	}
	if len(flags) > 0 {
		parts = append(parts, pluralFlags(len(flags)))
	}

	text := "Assessment based on reported symptoms."
	if len(parts) > 0 {
		text = strings.Join(parts, " ")
	}
	return text + " Triage level: " + string(level) + "."
}

func safeDefaultAssessment() entities.Assessment {
	return entities.Assessment{
		TriageLevel:         entities.TriageUrgent,
		RiskScore:           5,
		RedFlags:            []entities.RedFlag{entities.FlagNoneIdentified},
		SuspectedConditions: []string{"Requires clinical evaluation"},
		RecommendedAction:   recommendedAction(entities.TriageUrgent),
		TimeSensitivity:     timeSensitivity(entities.TriageUrgent),
		AssessmentText:      "Automatic classification unavailable. Triage level: URGENT.",
	}
}

func dedupeFlags(flags []entities.RedFlag) []entities.RedFlag {
	seen := make(map[entities.RedFlag]struct{}, len(flags))
	out := flags[:0]
	for _, flag := range flags {
		if _, ok := seen[flag]; ok {
			continue
		}
		seen[flag] = struct{}{}
		out = append(out, flag)
	}
	return out
}

func flagsOrSentinel(flags []entities.RedFlag) []entities.RedFlag {
	if len(flags) == 0 {
		return []entities.RedFlag{entities.FlagNoneIdentified}
	}
	return flags
}

func containsFlag(flags []entities.RedFlag, flag entities.RedFlag) bool {
	for _, f := range flags {
		if f == flag {
			return true
		}
	}
	return false
}

func pluralFlags(n int) string {
	if n == 1 {
		return "1 red flag identified."
	}
	return strconv.Itoa(n) + " red flags identified."
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
