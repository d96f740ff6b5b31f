package main

import "strings"

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// isCorrectGuess reports whether guess identifies answer. Matching is
// case-insensitive and ignores surrounding whitespace; an absent side
// never matches, which also keeps the two timeout sentinels from
// scoring against each other.
func isCorrectGuess(guess, answer string) bool {
	if guess == "" || answer == "" {
		return false
	}
	return normalizeAnswer(guess) == normalizeAnswer(answer)
}
