package moves

import (
	"strings"
)

// Assemble writes every move followed by a space, then drops the last character.
func Assemble(moves []Move) string {
	var builder strings.Builder

	builder.Grow(len(moves) * 2)

	for _, move := range moves {
		builder.WriteByte(byte(move))
		builder.WriteByte(' ')
	}

	res := builder.String()
	if res == "" {
		return res
	}

	return res[:len(res)-1]
}

// CountMoves counts the space separated tokens of an assembled sequence.
// An empty sequence counts as one move.
func CountMoves(sequence string) int {
	return len(strings.Split(sequence, " "))
}
