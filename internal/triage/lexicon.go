package triage

import "github.com/codezero-health/er-intake/internal/domain/entities"

// The token tables below are data, not code: interpretation of an
// answer is a normalized-lowercase containment check against these
// sets, so new locales are additive. Covered locales: en, de, tr, fr,
// es, it, pt, ru, ar, zh.
//
// Question-text triggers assume questions reach the classifier in
// English with stable phrasing (they are generated or statically
// defined upstream). The trigger keywords are intentionally narrow;
// changing question wording upstream requires revisiting this table.

// affirmativeTokens match a whole normalized answer meaning "yes"
var affirmativeTokens = map[string]struct{}{
	"yes": {}, "ja": {}, "evet": {}, "oui": {}, "sí": {}, "si": {},
	"sì": {}, "sim": {}, "да": {}, "نعم": {}, "是": {},
}

// negativeTokens match a whole normalized answer meaning "no"
var negativeTokens = map[string]struct{}{
	"no": {}, "nein": {}, "hayır": {}, "non": {}, "não": {},
	"нет": {}, "لا": {}, "否": {},
}

// symptomFamily is one multilingual keyword family scanned in
// free-text and multi-select answers
type symptomFamily struct {
	flag    entities.RedFlag
	finding string
	tokens  []string
}

var symptomFamilies = []symptomFamily{
	{
		flag:    entities.FlagDiaphoresis,
		finding: "Sweating",
		tokens:  []string{"sweating", "schwitzen", "terleme", "transpiration", "sudoración", "sudorazione", "suor", "потоотделение", "تعرق"},
	},
	{
		flag:    entities.FlagDyspnea,
		finding: "Shortness of breath",
		tokens:  []string{"shortness", "breath", "atemnot", "nefes", "essoufflement", "dificultad respirar", "mancanza di fiato", "falta de ar", "одышка", "ضيق التنفس"},
	},
	{
		flag:    entities.FlagNausea,
		finding: "Nausea",
		tokens:  []string{"nausea", "übelkeit", "bulantı", "nausée", "náuseas", "náusea", "тошнота", "غثيان"},
	},
	{
		flag:    entities.FlagDizziness,
		finding: "Dizziness",
		tokens:  []string{"dizz", "schwindel", "baş dönmesi", "vertige", "mareo", "vertigine", "tontura", "головокружение", "دوار"},
	},
	{
		flag:    entities.FlagVomiting,
		finding: "Vomiting",
		tokens:  []string{"vomit", "erbrechen", "kusma", "vomissement", "vómito", "vomito", "vômito", "рвота", "قيء"},
	},
	{
		flag:    entities.FlagFever,
		finding: "Fever",
		tokens:  []string{"fever", "fieber", "ateş", "fièvre", "fiebre", "febbre", "febre", "лихорадка", "حمى"},
	},
	{
		flag:    entities.FlagBleedingSign,
		finding: "Blood reported",
		tokens:  []string{"blood", "blut", "kan", "sang", "sangre", "sangue", "кровь", "دم"},
	},
}

// contextKeywords derive the clinical context flags from the chief
// complaint, once per triage cycle
var contextKeywords = map[string][]string{
	"cardiac":     {"chest", "heart", "cardiac"},
	"stroke":      {"stroke", "face", "speech", "slur", "droop", "head", "numb"},
	"respiratory": {"breath", "asthma", "wheez", "cough", "lung"},
	"abdominal":   {"stomach", "abdom", "belly", "vomit", "nausea"},
	"diabetic":    {"diabet", "sugar", "insulin", "glucose"},
}

// emergencyComplaintKeywords force EMERGENCY when present in the
// chief complaint
var emergencyComplaintKeywords = []string{
	"chest pain", "heart attack", "stroke", "unconscious",
	"can't breathe", "cannot breathe", "seizure", "arm weakness",
	"face droop", "can't move", "cannot move", "slurred",
}

// urgentComplaintKeywords force at least URGENT when present in the
// chief complaint
var urgentComplaintKeywords = []string{
	"pain", "fever", "vomiting", "broken", "injury", "fall",
	"cough", "stomach",
}

// Question-text trigger keyword groups, inspected only on the question
// belonging to the answer being interpreted.
var (
	radiationQuestionTokens = []string{"radiat", "jaw", "back"}
	suddenQuestionTokens    = []string{"sudden", "plötzlich"}
	cardiacHxQuestionTokens = []string{"heart disease", "cardiac"}
	speechQuestionTokens    = []string{"slur", "speech"}
	faceQuestionTokens      = []string{"smile", "face"}
	armQuestionTokens       = []string{"raise", "arm"}
	dyspneaQuestionTokens   = []string{"sentence", "breathe"}
	feverQuestionTokens     = []string{"fever", "fieber"}
	bloodQuestionTokens     = []string{"blood", "blut"}
	chronicQuestionTokens   = []string{"chronic", "condition"}
	confusionQuestionTokens = []string{"confused", "drowsy"}
)
