package pipeline

import (
	"sort"
	"strings"
	"unicode"
)

// Short stop-word set for guest message text. Deliberately small: the goal
// is to keep "the sink is leaking" from ranking "the" first, not to do NLP.
var stopWords = map[string]bool{
	"the": true, "is": true, "a": true, "an": true, "and": true,
	"or": true, "to": true, "of": true, "in": true, "on": true,
	"at": true, "for": true, "it": true, "my": true, "me": true,
	"we": true, "i": true, "you": true, "our": true, "this": true,
	"that": true, "with": true, "can": true, "could": true,
	"please": true, "thanks": true, "thank": true, "hi": true,
	"hello": true,
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopWords tokenizes messages on non-alphanumeric boundaries, lower-cases,
// drops stop words, and returns the n most frequent terms. Ties break
// alphabetically so the result is deterministic.
func TopWords(messages []string, n int) []WordCount {
	counts := make(map[string]int)
	for _, msg := range messages {
		tokens := strings.FieldsFunc(msg, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		for _, tok := range tokens {
			word := strings.ToLower(tok)
			if word == "" || stopWords[word] {
				continue
			}
			counts[word]++
		}
	}

	out := make([]WordCount, 0, len(counts))
	for word, count := range counts {
		out = append(out, WordCount{Word: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
