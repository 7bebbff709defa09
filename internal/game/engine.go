// internal/game/engine.go
//
// Turn-based guessing engines.
// Responsibilities:
//   - Narrower: binary search over an inclusive integer range, one comparison per turn.
//   - Eliminator: filter a fixed vocabulary with yes/no/maybe attribute questions,
//     one question per turn, then commit to a guess.
//
// Notes:
//   - Engines hold no I/O and no clock; the session package drives them.
//   - Engines are not safe for concurrent use. A session has exactly one writer.
//   - MaxQuestions caps a word round regardless of the table size.
package game

import "strings"

// MaxQuestions is the hard cap on attribute questions per word round.
const MaxQuestions = 5

// Normalize lowercases and trims a word the way the vocabulary stores it.
func Normalize(s string) string { return normalize(s) }

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
