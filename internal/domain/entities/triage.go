package entities

// TriageLevel is the coarse urgency classification of an assessment
type TriageLevel string

const (
	TriageEmergency TriageLevel = "EMERGENCY"
	TriageUrgent    TriageLevel = "URGENT"
	TriageRoutine   TriageLevel = "ROUTINE"
)

// IsValid reports whether the level is one of the three known levels
func (l TriageLevel) IsValid() bool {
	switch l {
	case TriageEmergency, TriageUrgent, TriageRoutine:
		return true
	}
	return false
}

// PriorityRank maps a triage level to its queue ordering rank.
// Lower rank sorts first; unknown levels sort last.
func (l TriageLevel) PriorityRank() int {
	switch l {
	case TriageEmergency:
		return 0
	case TriageUrgent:
		return 1
	case TriageRoutine:
		return 2
	default:
		return 3
	}
}

// Description returns a short human-readable description of the level
func (l TriageLevel) Description() string {
	switch l {
	case TriageEmergency:
		return "Immediate medical attention required"
	case TriageUrgent:
		return "Needs medical attention soon"
	case TriageRoutine:
		return "Non-urgent, can wait or self-care"
	default:
		return "Unknown"
	}
}

// RedFlag is a discrete clinical warning tag indicating an emergent finding
type RedFlag string

const (
	FlagPainRadiation       RedFlag = "pain_radiation"
	FlagSuddenOnset         RedFlag = "sudden_onset"
	FlagCardiacHistory      RedFlag = "cardiac_history"
	FlagSpeechImpairment    RedFlag = "speech_impairment"
	FlagFacialAsymmetry     RedFlag = "facial_asymmetry"
	FlagArmWeakness         RedFlag = "arm_weakness"
	FlagSevereDyspnea       RedFlag = "severe_dyspnea"
	FlagAlteredMentalStatus RedFlag = "altered_mental_status"
	FlagDiaphoresis         RedFlag = "diaphoresis"
	FlagDyspnea             RedFlag = "dyspnea"
	FlagNausea              RedFlag = "nausea"
	FlagDizziness           RedFlag = "dizziness"
	FlagVomiting            RedFlag = "vomiting"
	FlagFever               RedFlag = "fever"
	FlagBleeding            RedFlag = "bleeding"
	FlagBleedingSign        RedFlag = "bleeding_sign"
	FlagDiffusePain         RedFlag = "diffuse_pain"

	// FlagNoneIdentified is the sentinel for an assessment without findings
	FlagNoneIdentified RedFlag = "none_identified"
)

// Answer is one question/answer pair collected during intake.
// Text is expected to be language-normalized to English for the
// question; the answer may still be in the patient's language.
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// IsValid reports whether the answer carries both a question and an answer
func (a Answer) IsValid() bool {
	return a.Question != "" && a.Answer != ""
}

// ClinicalContext holds the context flags derived once from the chief
// complaint. Flags are not mutually exclusive and never re-derived per
// answer, so a FAST question cannot leak flags into a cardiac protocol.
type ClinicalContext struct {
	IsCardiac     bool `json:"is_cardiac"`
	IsStroke      bool `json:"is_stroke"`
	IsRespiratory bool `json:"is_respiratory"`
	IsAbdominal   bool `json:"is_abdominal"`
	IsDiabetic    bool `json:"is_diabetic"`
}

// Assessment is the structured output of a triage cycle. Classification
// fields are immutable once produced; pre-arrival advice is merged
// additively via WithAdvice.
type Assessment struct {
	TriageLevel         TriageLevel `json:"triage_level"`
	RiskScore           int         `json:"risk_score"`
	RedFlags            []RedFlag   `json:"red_flags"`
	SuspectedConditions []string    `json:"suspected_conditions"`
	RecommendedAction   string      `json:"recommended_action"`
	TimeSensitivity     string      `json:"time_sensitivity"`
	AssessmentText      string      `json:"assessment"`
	Advice              *Advice     `json:"advice,omitempty"`
}

// Advice is the DO / DON'T pre-arrival guidance for a triage level
type Advice struct {
	Do   []string `json:"do"`
	Dont []string `json:"dont"`
}

// WithAdvice returns a copy of the assessment enriched with advice.
// Classification fields are untouched.
func (a Assessment) WithAdvice(advice Advice) Assessment {
	a.Advice = &advice
	return a
}

// HasFlag reports whether the given red flag is present
func (a Assessment) HasFlag(flag RedFlag) bool {
	for _, f := range a.RedFlags {
		if f == flag {
			return true
		}
	}
	return false
}

// FASTPositive reports whether the face or arm stroke check failed
func (a Assessment) FASTPositive() bool {
	return a.HasFlag(FlagFacialAsymmetry) || a.HasFlag(FlagArmWeakness)
}
