package assistant

import "strings"

// DialogueAct is the coarse intent of one user message.
type DialogueAct string

const (
	ActQuestion  DialogueAct = "question"
	ActFarewell  DialogueAct = "farewell"
	ActStatement DialogueAct = "statement"
)

var questionWords = map[string]bool{
	"what": true, "which": true, "who": true, "whom": true, "whose": true,
	"when": true, "where": true, "why": true, "how": true,
	"is": true, "are": true, "was": true, "were": true,
	"do": true, "does": true, "did": true,
	"can": true, "could": true, "should": true, "would": true, "will": true,
}

var farewellPhrases = []string{
	"bye", "goodbye", "good bye", "see you", "see ya", "cya",
	"good night", "farewell", "take care", "talk later", "gotta go",
}

// Classify assigns a dialogue act to text using keyword heuristics.
// Question marks and leading interrogatives mark questions; common
// closing phrases mark farewells; everything else is a statement.
func Classify(text string) DialogueAct {
	t := strings.ToLower(strings.TrimSpace(text))
	if t == "" {
		return ActStatement
	}

	for _, phrase := range farewellPhrases {
		if t == phrase || strings.HasPrefix(t, phrase+" ") || strings.HasPrefix(t, phrase+"!") ||
			strings.HasSuffix(t, " "+phrase) || strings.HasSuffix(t, " "+phrase+"!") {
			return ActFarewell
		}
	}

	if strings.Contains(t, "?") {
		return ActQuestion
	}
	fields := strings.Fields(t)
	if len(fields) > 0 && questionWords[strings.Trim(fields[0], ".,!")] {
		return ActQuestion
	}
	return ActStatement
}
