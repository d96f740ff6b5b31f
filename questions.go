package main

import (
	"math/rand"
	"strings"
)

// category selects which decoy pool a question draws from. It is
// assigned when the question is written, never inferred from the
// prompt text at runtime.
type category string

const (
	catGeneric     category = "generic"
	catMovie       category = "movie"
	catDestination category = "destination"
	catFood        category = "food"
	catFear        category = "fear"
	catSuperpower  category = "superpower"
)

// Question pairs the prompt shown to the answering player with the
// rephrased prompt shown to their guessing partner.
type Question struct {
	ForPlayer  string
	ForGuesser string
	Category   category
}

var questionPool = []Question{
	{"What's your favorite movie?", "What's their favorite movie?", catMovie},
	{"What's your dream vacation destination?", "What's their dream vacation destination?", catDestination},
	{"What's your favorite food?", "What's their favorite food?", catFood},
	{"What's your biggest fear?", "What's their biggest fear?", catFear},
	{"What's your favorite song right now?", "What's their favorite song right now?", catGeneric},
	{"If you could have any superpower, what would it be?", "What superpower would they want?", catSuperpower},
	{"What's your favorite memory of us?", "What's their favorite memory of you two?", catGeneric},
	{"What's something you've always wanted to try?", "What's something they've always wanted to try?", catGeneric},
	{"What's your comfort show?", "What's their comfort show?", catGeneric},
	{"What makes you happiest?", "What makes them happiest?", catGeneric},
	{"What's your favorite season?", "What's their favorite season?", catGeneric},
	{"What's your love language?", "What's their love language?", catGeneric},
	{"What's your ideal date night?", "What's their ideal date night?", catGeneric},
	{"What's a song that reminds you of us?", "What song reminds them of you two?", catGeneric},
	{"What's your guilty pleasure?", "What's their guilty pleasure?", catGeneric},
}

var decoyPools = map[category][]string{
	catMovie:       {"The Notebook", "Titanic", "Inception", "Avengers", "Harry Potter", "The Lion King", "Frozen", "Interstellar"},
	catDestination: {"Paris", "Tokyo", "Maldives", "New York", "Bali", "Iceland", "Hawaii", "Italy"},
	catFood:        {"Pizza", "Sushi", "Pasta", "Tacos", "Ice Cream", "Chocolate", "Burgers", "Thai Food"},
	catFear:        {"Spiders", "Heights", "Dark", "Failure", "Being alone", "Public speaking", "Deep water", "Losing loved ones"},
	catSuperpower:  {"Flying", "Invisibility", "Time travel", "Mind reading", "Super strength", "Teleportation", "Healing", "Super speed"},
	catGeneric:     {"Something sweet", "Quality time", "Adventures", "Cozy nights in", "Music", "Nature", "Art", "Movies", "Reading", "Traveling", "Cooking", "Dancing", "Gaming", "Photography"},
}

// decoyAnswers samples up to count wrong answers from the category's
// pool in random order. The true answer is filtered out
// case-insensitively; a pool left smaller than count simply yields
// fewer decoys.
func decoyAnswers(cat category, correct string, count int, rng *rand.Rand) []string {
	pool, ok := decoyPools[cat]
	if !ok {
		pool = decoyPools[catGeneric]
	}

	filtered := make([]string, 0, len(pool))
	for _, candidate := range pool {
		if !strings.EqualFold(candidate, correct) {
			filtered = append(filtered, candidate)
		}
	}

	rng.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})

	if len(filtered) > count {
		filtered = filtered[:count]
	}

	return filtered
}
