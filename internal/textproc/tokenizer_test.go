package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsAccentsAndPunctuation(t *testing.T) {
	assert.Equal(t, "resume please", Normalize("Résumé, please!"))
	assert.Equal(t, "drop cs 101", Normalize("  Drop   CS-101?? "))
	assert.Equal(t, "", Normalize("!!! ... ---"))
}

func TestTokenize_DropsStopwords(t *testing.T) {
	// "i", "to", "my" are stopwords.
	tokens := Tokenize("I want to drop my class.")
	assert.Equal(t, []string{"want", "drop", "class"}, tokens)
}

func TestTokenize_PreservesOrderAndDuplicates(t *testing.T) {
	tokens := Tokenize("drop drop class drop")
	assert.Equal(t, []string{"drop", "drop", "class", "drop"}, tokens)
}

func TestTokenize_EmptyInput(t *testing.T) {
	assert.Nil(t, Tokenize(""))
	assert.Nil(t, Tokenize("   "))
	assert.Empty(t, Tokenize("the a an"))
}

func TestSplitSentences_TerminalPunctuation(t *testing.T) {
	sentences := SplitSentences("One. Two! Three?")
	assert.Equal(t, []string{"One", "Two", "Three"}, sentences)
}

func TestSplitSentences_CollapsesRunsAndDropsEmpty(t *testing.T) {
	sentences := SplitSentences("Wait... what?! ")
	assert.Equal(t, []string{"Wait", "what"}, sentences)

	assert.Empty(t, SplitSentences("...!!!"))
}
