package triage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codezero-health/er-intake/internal/domain/entities"
)

// Finding accumulates what a single answer contributed to the
// assessment: zero or more red flags, human-readable findings, and a
// severity counter contribution.
type Finding struct {
	Flags            []entities.RedFlag
	PositiveFindings []string
	NegativeFindings []string
	Severity         int
}

// RedFlagExtractor interprets one answer at a time against the derived
// clinical context. It is stateless; the context is passed in because
// it must come from the complaint, never from the answers.
type RedFlagExtractor struct{}

// NewRedFlagExtractor creates a new extractor
func NewRedFlagExtractor() *RedFlagExtractor {
	return &RedFlagExtractor{}
}

// Extract interprets a single question/answer pair. Malformed answers
// yield an empty finding.
func (e *RedFlagExtractor) Extract(clinical entities.ClinicalContext, answer entities.Answer) Finding {
	var f Finding
	if !answer.IsValid() {
		return f
	}

	question := strings.ToLower(answer.Question)
	text := strings.ToLower(strings.TrimSpace(answer.Answer))

	if val, err := strconv.Atoi(text); err == nil {
		e.extractNumeric(&f, val)
	} else if _, ok := affirmativeTokens[text]; ok {
		e.extractAffirmative(&f, clinical, question)
	} else if _, ok := negativeTokens[text]; ok {
		e.extractNegative(&f, question)
	}

	// Symptom keyword families apply to every answer shape: a
	// multi-select value like "Sweating, Nausea" carries findings
	// regardless of how the question was phrased.
	e.extractSymptoms(&f, text)

	return f
}

func (e *RedFlagExtractor) extractNumeric(f *Finding, val int) {
	switch {
	case val >= 7:
		f.Severity += 3
		f.PositiveFindings = append(f.PositiveFindings, fmt.Sprintf("Pain severity %d/10", val))
	case val >= 4:
		f.Severity++
	}
}

func (e *RedFlagExtractor) extractAffirmative(f *Finding, clinical entities.ClinicalContext, question string) {
	// Cardiac radiation fires only in cardiac context and only for
	// questions about radiation to jaw/back, so a "yes" to the FAST
	// arm-raise question never reads as a cardiac red flag.
	if clinical.IsCardiac && matchesAny(question, radiationQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagPainRadiation)
		f.PositiveFindings = append(f.PositiveFindings, "Pain radiates to arm/jaw/back")
	}
	if matchesAny(question, suddenQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagSuddenOnset)
		f.PositiveFindings = append(f.PositiveFindings, "Sudden onset of symptoms")
	}
	if matchesAny(question, cardiacHxQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagCardiacHistory)
		f.PositiveFindings = append(f.PositiveFindings, "History of heart disease")
	}
	if matchesAny(question, speechQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagSpeechImpairment)
		f.PositiveFindings = append(f.PositiveFindings, "Speech is slurred")
	}
	if matchesAny(question, faceQuestionTokens) {
		f.PositiveFindings = append(f.PositiveFindings, "Facial symmetry normal")
	}
	if matchesAny(question, armQuestionTokens) {
		f.PositiveFindings = append(f.PositiveFindings, "Can raise arms normally")
	}
	if matchesAny(question, feverQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagFever)
		f.PositiveFindings = append(f.PositiveFindings, "Has fever")
	}
	if matchesAny(question, bloodQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagBleeding)
		f.PositiveFindings = append(f.PositiveFindings, "Blood present")
	}
	if matchesAny(question, chronicQuestionTokens) {
		f.PositiveFindings = append(f.PositiveFindings, "Has chronic medical conditions")
	}
	if matchesAny(question, confusionQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagAlteredMentalStatus)
		f.PositiveFindings = append(f.PositiveFindings, "Confusion or drowsiness reported")
	}
	f.Severity++
}

// extractNegative handles the checks that invert polarity: failing a
// FAST face or arm check means answering "no", while "no" to a history
// question is a benign negative finding.
func (e *RedFlagExtractor) extractNegative(f *Finding, question string) {
	if matchesAny(question, speechQuestionTokens) {
		f.NegativeFindings = append(f.NegativeFindings, "Speech is NOT slurred")
	}
	if matchesAny(question, faceQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagFacialAsymmetry)
		f.PositiveFindings = append(f.PositiveFindings, "Cannot smile symmetrically (facial droop)")
	}
	if matchesAny(question, armQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagArmWeakness)
		f.PositiveFindings = append(f.PositiveFindings, "Cannot raise both arms equally")
	}
	if matchesAny(question, dyspneaQuestionTokens) {
		f.Flags = append(f.Flags, entities.FlagSevereDyspnea)
		f.PositiveFindings = append(f.PositiveFindings, "Cannot complete a sentence (severe breathing difficulty)")
	}
	if matchesAny(question, cardiacHxQuestionTokens) {
		f.NegativeFindings = append(f.NegativeFindings, "No history of heart disease")
	}
	if matchesAny(question, chronicQuestionTokens) {
		f.NegativeFindings = append(f.NegativeFindings, "No chronic conditions reported")
	}
}

func (e *RedFlagExtractor) extractSymptoms(f *Finding, text string) {
	for _, family := range symptomFamilies {
		if matchesAny(text, family.tokens) {
			f.Flags = append(f.Flags, family.flag)
			f.PositiveFindings = append(f.PositiveFindings, family.finding)
		}
	}

	if strings.Contains(text, "lower right") {
		f.PositiveFindings = append(f.PositiveFindings, "Lower right quadrant pain (possible appendicitis)")
	}
	if strings.Contains(text, "all over") || strings.Contains(text, "diffuse") {
		f.Flags = append(f.Flags, entities.FlagDiffusePain)
		f.PositiveFindings = append(f.PositiveFindings, "Diffuse abdominal pain")
	}
}
