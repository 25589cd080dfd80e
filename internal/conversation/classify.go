package conversation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type PromptKind int

const (
	Normal PromptKind = iota
	Reset
)

func (k PromptKind) String() string {
	if k == Reset {
		return "reset"
	}
	return "normal"
}

// resetPhrases restart the conversation when found anywhere in a prompt.
var resetPhrases = []string{
	"reinicia la conversación",
	"vamos a hablar de otra cosa",
	"reinicia",
	"abre otra conversación",
	"nueva conversación",
}

var canonicalResetPhrases = func() []string {
	ret := make([]string, 0, len(resetPhrases))
	for _, p := range resetPhrases {
		ret = append(ret, canonical(p))
	}
	return ret
}()

// canonical case folds and composes s, so that 'CONVERSACIÓN' and a
// decomposed 'conversación' both compare equal to the phrase.
func canonical(s string) string {
	return norm.NFC.String(cases.Fold().String(norm.NFC.String(s)))
}

// Classify the prompt as a Reset if it contains any of the reset phrases,
// regardless of case or what else it contains.
func Classify(prompt string) PromptKind {
	p := canonical(prompt)
	for _, phrase := range canonicalResetPhrases {
		if strings.Contains(p, phrase) {
			return Reset
		}
	}
	return Normal
}
