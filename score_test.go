package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCorrectGuess(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		answer string
		want   bool
	}{
		{"exact match", "Pizza", "Pizza", true},
		{"case differs", "pIZZA", "Pizza", true},
		{"surrounding whitespace", "  Pizza\t", "Pizza ", true},
		{"different answers", "Sushi", "Pizza", false},
		{"empty guess", "", "Pizza", false},
		{"empty answer", "Pizza", "", false},
		{"both empty", "", "", false},
		{"sentinels never match each other", noGuessSentinel, noAnswerSentinel, false},
		{"inner whitespace is significant", "Ice Cream", "IceCream", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isCorrectGuess(tt.guess, tt.answer))
		})
	}
}
