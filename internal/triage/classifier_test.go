package triage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/triage"
)

func TestClassifier_Classify_ChestPainEmergency(t *testing.T) {
	classifier := triage.NewClassifier()

	assessment := classifier.Classify("severe chest pain radiating to left arm", []entities.Answer{
		{Question: "Does the pain radiate to your jaw, back, or shoulder?", Answer: "yes"},
		{Question: "Which associated symptoms do you have?", Answer: "Sweating, Nausea"},
		{Question: "On a scale of 1-10, how severe is the pain?", Answer: "8"},
	})

	assert.Equal(t, entities.TriageEmergency, assessment.TriageLevel)
	assert.Equal(t, 10, assessment.RiskScore)
	assert.True(t, assessment.HasFlag(entities.FlagPainRadiation))
	assert.True(t, assessment.HasFlag(entities.FlagDiaphoresis))
	assert.True(t, assessment.HasFlag(entities.FlagNausea))
	assert.Contains(t, assessment.SuspectedConditions, "Acute Coronary Syndrome")
	assert.Contains(t, assessment.AssessmentText, "Pain severity 8/10")
	assert.False(t, assessment.FASTPositive())
}

func TestClassifier_Classify_MildHeadacheRoutine(t *testing.T) {
	classifier := triage.NewClassifier()

	assessment := classifier.Classify("mild headache", nil)

	assert.Equal(t, entities.TriageRoutine, assessment.TriageLevel)
	assert.Equal(t, 1, assessment.RiskScore)
	assert.Equal(t, []entities.RedFlag{entities.FlagNoneIdentified}, assessment.RedFlags)
	assert.Contains(t, assessment.SuspectedConditions, "Neurological symptoms - requires evaluation")
}

func TestClassifier_Classify_FailedFaceCheckIsEmergency(t *testing.T) {
	classifier := triage.NewClassifier()

	// "No" to the FAST smile check means facial droop.
	assessment := classifier.Classify("facial numbness on one side", []entities.Answer{
		{Question: "Can you smile symmetrically?", Answer: "no"},
	})

	assert.Equal(t, entities.TriageEmergency, assessment.TriageLevel)
	assert.Equal(t, 8, assessment.RiskScore)
	assert.True(t, assessment.HasFlag(entities.FlagFacialAsymmetry))
	assert.True(t, assessment.FASTPositive())
	assert.Contains(t, assessment.SuspectedConditions, "Possible Stroke (FAST positive)")
}

func TestClassifier_Classify_FailedArmCheckIsEmergency(t *testing.T) {
	classifier := triage.NewClassifier()

	assessment := classifier.Classify("numbness in left arm", []entities.Answer{
		{Question: "Can you raise both arms and keep them there?", Answer: "no"},
	})

	assert.Equal(t, entities.TriageEmergency, assessment.TriageLevel)
	assert.True(t, assessment.HasFlag(entities.FlagArmWeakness))
	assert.True(t, assessment.FASTPositive())
}

func TestClassifier_Classify_PassedFASTChecksAreBenign(t *testing.T) {
	classifier := triage.NewClassifier()

	// Affirmative FAST answers are reassuring findings, not flags.
	assessment := classifier.Classify("facial numbness on one side", []entities.Answer{
		{Question: "Can you smile symmetrically?", Answer: "yes"},
		{Question: "Can you raise both arms and keep them there?", Answer: "yes"},
	})

	assert.False(t, assessment.HasFlag(entities.FlagFacialAsymmetry))
	assert.False(t, assessment.HasFlag(entities.FlagArmWeakness))
	assert.False(t, assessment.FASTPositive())
	assert.NotEqual(t, entities.TriageEmergency, assessment.TriageLevel)
}

func TestClassifier_Classify_RadiationRequiresCardiacContext(t *testing.T) {
	classifier := triage.NewClassifier()

	// Same radiation question, non-cardiac complaint: no cardiac flag.
	assessment := classifier.Classify("leg injury after a fall", []entities.Answer{
		{Question: "Does the pain radiate to your jaw or back?", Answer: "yes"},
	})

	assert.False(t, assessment.HasFlag(entities.FlagPainRadiation))
	assert.Equal(t, entities.TriageUrgent, assessment.TriageLevel)
}

func TestClassifier_Classify_ArmRaiseNeverReadsAsRadiation(t *testing.T) {
	classifier := triage.NewClassifier()

	// Cardiac context plus a yes to the FAST arm question: radiation
	// triggers are jaw/back/radiate only, so no flag fires.
	assessment := classifier.Classify("chest tightness", []entities.Answer{
		{Question: "Can you raise both arms and keep them there?", Answer: "yes"},
	})

	assert.False(t, assessment.HasFlag(entities.FlagPainRadiation))
}

func TestClassifier_Classify_SeverityAloneEscalatesToUrgent(t *testing.T) {
	classifier := triage.NewClassifier()

	// Three affirmatives with no flag triggers still accumulate severity.
	assessment := classifier.Classify("general malaise", []entities.Answer{
		{Question: "Have you felt unwell for more than a day?", Answer: "yes"},
		{Question: "Is it worse than yesterday?", Answer: "yes"},
		{Question: "Did you sleep poorly?", Answer: "yes"},
	})

	assert.Equal(t, entities.TriageUrgent, assessment.TriageLevel)
	assert.Equal(t, 4, assessment.RiskScore)
	assert.Equal(t, []entities.RedFlag{entities.FlagNoneIdentified}, assessment.RedFlags)
}

func TestClassifier_Classify_HighPainScoreAlone(t *testing.T) {
	classifier := triage.NewClassifier()

	assessment := classifier.Classify("sore shoulder", []entities.Answer{
		{Question: "On a scale of 1-10, how severe is it?", Answer: "9"},
	})

	// Severity 3 with no flags and no urgent complaint keyword.
	assert.Equal(t, entities.TriageUrgent, assessment.TriageLevel)
	assert.Equal(t, 4, assessment.RiskScore)
}

func TestClassifier_Classify_RiskScoreCappedAtTen(t *testing.T) {
	classifier := triage.NewClassifier()

	assessment := classifier.Classify("chest pain and trouble breathing", []entities.Answer{
		{Question: "Does the pain radiate to your jaw or back?", Answer: "yes"},
		{Question: "Did the symptoms start suddenly?", Answer: "yes"},
		{Question: "Do you have a history of heart disease?", Answer: "yes"},
		{Question: "Which associated symptoms do you have?", Answer: "Sweating, Nausea, Dizziness"},
	})

	assert.Equal(t, entities.TriageEmergency, assessment.TriageLevel)
	assert.Equal(t, 10, assessment.RiskScore)
	assert.GreaterOrEqual(t, len(assessment.RedFlags), 3)
}

func TestClassifier_Classify_DuplicateFlagsCountOnce(t *testing.T) {
	classifier := triage.NewClassifier()

	assessment := classifier.Classify("high fever", []entities.Answer{
		{Question: "Do you have a fever?", Answer: "yes"},
		{Question: "Any other symptoms?", Answer: "fever and chills"},
	})

	count := 0
	for _, flag := range assessment.RedFlags {
		if flag == entities.FlagFever {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestClassifier_Classify_MultilingualAffirmatives(t *testing.T) {
	classifier := triage.NewClassifier()

	for _, answer := range []string{"ja", "evet", "oui", "да"} {
		assessment := classifier.Classify("chest pressure", []entities.Answer{
			{Question: "Does the pain radiate to your jaw or back?", Answer: answer},
		})
		assert.True(t, assessment.HasFlag(entities.FlagPainRadiation), "answer %q", answer)
	}
}

func TestClassifier_Classify_MultilingualNegatives(t *testing.T) {
	classifier := triage.NewClassifier()

	for _, answer := range []string{"nein", "hayır", "non", "нет"} {
		assessment := classifier.Classify("facial numbness", []entities.Answer{
			{Question: "Can you smile symmetrically?", Answer: answer},
		})
		assert.True(t, assessment.HasFlag(entities.FlagFacialAsymmetry), "answer %q", answer)
	}
}

func TestClassifier_Classify_BlankAnswersIgnored(t *testing.T) {
	classifier := triage.NewClassifier()

	assessment := classifier.Classify("mild cold symptoms", []entities.Answer{
		{Question: "Do you have a fever?", Answer: ""},
		{Question: "", Answer: "yes"},
	})

	assert.Equal(t, []entities.RedFlag{entities.FlagNoneIdentified}, assessment.RedFlags)
}

func TestClassifier_Classify_Deterministic(t *testing.T) {
	classifier := triage.NewClassifier()

	complaint := "stomach pain in the lower right"
	answers := []entities.Answer{
		{Question: "Where exactly is the pain?", Answer: "lower right side"},
		{Question: "On a scale of 1-10, how severe is it?", Answer: "6"},
	}

	first := classifier.Classify(complaint, answers)
	second := classifier.Classify(complaint, answers)

	assert.Equal(t, first, second)
}

func TestAdviceForLevel_AllLevelsHaveAdvice(t *testing.T) {
	for _, level := range []entities.TriageLevel{entities.TriageEmergency, entities.TriageUrgent, entities.TriageRoutine} {
		advice := triage.AdviceForLevel(level)
		assert.NotEmpty(t, advice.Do, "level %s", level)
		assert.NotEmpty(t, advice.Dont, "level %s", level)
	}
}

func TestAssessment_WithAdviceLeavesClassificationUntouched(t *testing.T) {
	classifier := triage.NewClassifier()

	base := classifier.Classify("chest pain", nil)
	enriched := base.WithAdvice(triage.AdviceForLevel(base.TriageLevel))

	assert.Equal(t, base.TriageLevel, enriched.TriageLevel)
	assert.Equal(t, base.RiskScore, enriched.RiskScore)
	assert.Equal(t, base.RedFlags, enriched.RedFlags)
	assert.Nil(t, base.Advice)
	assert.NotNil(t, enriched.Advice)
}
