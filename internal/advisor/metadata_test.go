package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findFact(facts []Fact, key string) (Fact, bool) {
	for _, f := range facts {
		if f.Key == key {
			return f, true
		}
	}
	return Fact{}, false
}

func TestPatternExtractor_Extract_Term(t *testing.T) {
	e := NewPatternExtractor()

	facts := e.Extract("I plan to register for fall 2026 courses.")

	fact, ok := findFact(facts, "term")
	require.True(t, ok)
	assert.Equal(t, "Fall 2026", fact.Value)
	assert.Equal(t, `Detected term "Fall 2026" in the message.`, fact.Reason)
}

func TestPatternExtractor_Extract_StudentName(t *testing.T) {
	e := NewPatternExtractor()

	facts := e.Extract("Hello, my name is Jordan Lee and I have a question.")

	fact, ok := findFact(facts, "student_name")
	require.True(t, ok)
	assert.Equal(t, "Jordan Lee", fact.Value)
}

func TestPatternExtractor_Extract_ThisIsIntroduction(t *testing.T) {
	e := NewPatternExtractor()

	facts := e.Extract("Hi, this is Sam, from the biology program.")

	fact, ok := findFact(facts, "student_name")
	require.True(t, ok)
	assert.Equal(t, "Sam", fact.Value)
}

func TestPatternExtractor_Extract_FirstMatchPerKeyWins(t *testing.T) {
	e := NewPatternExtractor()

	facts := e.Extract("My name is Ana. This is Beatriz, by the way. Spring 2027 or fall 2027?")

	name, ok := findFact(facts, "student_name")
	require.True(t, ok)
	assert.Equal(t, "Ana", name.Value)

	term, ok := findFact(facts, "term")
	require.True(t, ok)
	assert.Equal(t, "Spring 2027", term.Value)
}

func TestPatternExtractor_Extract_NoMatches(t *testing.T) {
	e := NewPatternExtractor()
	assert.Empty(t, e.Extract("When is the drop deadline?"))
}
