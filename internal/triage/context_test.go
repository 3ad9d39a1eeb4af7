package triage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codezero-health/er-intake/internal/domain/entities"
	"github.com/codezero-health/er-intake/internal/triage"
)

func TestDeriveContext(t *testing.T) {
	tests := []struct {
		name      string
		complaint string
		want      entities.ClinicalContext
	}{
		{
			name:      "chest pain is cardiac",
			complaint: "Crushing chest pain",
			want:      entities.ClinicalContext{IsCardiac: true},
		},
		{
			name:      "slurred speech is stroke",
			complaint: "sudden slurred speech",
			want:      entities.ClinicalContext{IsStroke: true},
		},
		{
			name:      "headache maps to stroke protocol",
			complaint: "terrible headache",
			want:      entities.ClinicalContext{IsStroke: true},
		},
		{
			name:      "breathing trouble is respiratory",
			complaint: "short of breath since morning",
			want:      entities.ClinicalContext{IsRespiratory: true},
		},
		{
			name:      "stomach complaint is abdominal",
			complaint: "stomach cramps",
			want:      entities.ClinicalContext{IsAbdominal: true},
		},
		{
			name:      "blood sugar complaint is diabetic",
			complaint: "my blood sugar is very high",
			want:      entities.ClinicalContext{IsDiabetic: true},
		},
		{
			name:      "contexts are not mutually exclusive",
			complaint: "chest pain and trouble breathing",
			want:      entities.ClinicalContext{IsCardiac: true, IsRespiratory: true},
		},
		{
			name:      "unrelated complaint has no context",
			complaint: "twisted ankle",
			want:      entities.ClinicalContext{},
		},
		{
			name:      "matching is case-insensitive",
			complaint: "CHEST PAIN",
			want:      entities.ClinicalContext{IsCardiac: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, triage.DeriveContext(tt.complaint))
		})
	}
}

func TestRedFlagExtractor_NumericSeverity(t *testing.T) {
	extractor := triage.NewRedFlagExtractor()

	high := extractor.Extract(entities.ClinicalContext{}, entities.Answer{
		Question: "How severe is the pain from 1 to 10?", Answer: "8",
	})
	assert.Equal(t, 3, high.Severity)
	assert.Contains(t, high.PositiveFindings, "Pain severity 8/10")

	moderate := extractor.Extract(entities.ClinicalContext{}, entities.Answer{
		Question: "How severe is the pain from 1 to 10?", Answer: "5",
	})
	assert.Equal(t, 1, moderate.Severity)
	assert.Empty(t, moderate.PositiveFindings)

	low := extractor.Extract(entities.ClinicalContext{}, entities.Answer{
		Question: "How severe is the pain from 1 to 10?", Answer: "2",
	})
	assert.Zero(t, low.Severity)
}

func TestRedFlagExtractor_DyspneaOnFailedSentenceCheck(t *testing.T) {
	extractor := triage.NewRedFlagExtractor()

	finding := extractor.Extract(entities.ClinicalContext{IsRespiratory: true}, entities.Answer{
		Question: "Can you finish a full sentence without pausing?", Answer: "no",
	})

	assert.Contains(t, finding.Flags, entities.FlagSevereDyspnea)
}

func TestRedFlagExtractor_BenignNegatives(t *testing.T) {
	extractor := triage.NewRedFlagExtractor()

	finding := extractor.Extract(entities.ClinicalContext{IsCardiac: true}, entities.Answer{
		Question: "Do you have a history of heart disease?", Answer: "no",
	})

	assert.Empty(t, finding.Flags)
	assert.Contains(t, finding.NegativeFindings, "No history of heart disease")
}

func TestRedFlagExtractor_MultiSelectSymptoms(t *testing.T) {
	extractor := triage.NewRedFlagExtractor()

	finding := extractor.Extract(entities.ClinicalContext{}, entities.Answer{
		Question: "Which symptoms apply?", Answer: "Sweating, shortness of breath, vomiting",
	})

	assert.Contains(t, finding.Flags, entities.FlagDiaphoresis)
	assert.Contains(t, finding.Flags, entities.FlagDyspnea)
	assert.Contains(t, finding.Flags, entities.FlagVomiting)
}

func TestRedFlagExtractor_LocalizedSymptomTokens(t *testing.T) {
	extractor := triage.NewRedFlagExtractor()

	finding := extractor.Extract(entities.ClinicalContext{}, entities.Answer{
		Question: "Welche Symptome haben Sie?", Answer: "Schwitzen und Übelkeit",
	})

	assert.Contains(t, finding.Flags, entities.FlagDiaphoresis)
	assert.Contains(t, finding.Flags, entities.FlagNausea)
}

func TestRedFlagExtractor_AppendicitisHint(t *testing.T) {
	extractor := triage.NewRedFlagExtractor()

	finding := extractor.Extract(entities.ClinicalContext{IsAbdominal: true}, entities.Answer{
		Question: "Where exactly is the pain?", Answer: "lower right side of my belly",
	})

	assert.Contains(t, finding.PositiveFindings, "Lower right quadrant pain (possible appendicitis)")
}

func TestRedFlagExtractor_DiffusePain(t *testing.T) {
	extractor := triage.NewRedFlagExtractor()

	finding := extractor.Extract(entities.ClinicalContext{IsAbdominal: true}, entities.Answer{
		Question: "Where exactly is the pain?", Answer: "all over",
	})

	assert.Contains(t, finding.Flags, entities.FlagDiffusePain)
}

func TestRedFlagExtractor_MalformedAnswer(t *testing.T) {
	extractor := triage.NewRedFlagExtractor()

	finding := extractor.Extract(entities.ClinicalContext{IsCardiac: true}, entities.Answer{
		Question: "Does the pain radiate to your jaw or back?",
	})

	assert.Empty(t, finding.Flags)
	assert.Zero(t, finding.Severity)
}
