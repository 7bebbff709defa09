package words

import (
	"errors"
	"strings"
	"testing"

	"github.com/robalobadob/guessbot/internal/game"
)

func TestDefaultTable(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatalf("default table: %v", err)
	}
	vocab, questions := tbl.Stats()
	if vocab != 8 || questions != 19 {
		t.Fatalf("stats = (%d, %d), want (8, 19)", vocab, questions)
	}
	qs := tbl.Questions()
	if qs[0].Text != "Is it a living thing?" || qs[len(qs)-1].Text != "Is it commonly found in a classroom?" {
		t.Fatalf("question order not preserved: first=%q last=%q", qs[0].Text, qs[len(qs)-1].Text)
	}
	if !tbl.IsKnown("  Pizza ") || tbl.IsKnown("banana") {
		t.Fatal("IsKnown mismatch")
	}
}

func TestDefaultPredicates(t *testing.T) {
	tbl, err := Default()
	if err != nil {
		t.Fatalf("default table: %v", err)
	}
	byID := map[string]game.Question{}
	for _, q := range tbl.Questions() {
		byID[q.ID] = q
	}

	tests := []struct {
		id   string
		word string
		want bool
	}{
		{"edible", "apple", true},
		{"edible", "chair", false},
		{"four-legs", "chair", true},
		{"flies", "rocket", true},
		{"big", "tiger", false},
	}
	for _, tt := range tests {
		got, err := byID[tt.id].Predicate(tt.word)
		if err != nil || got != tt.want {
			t.Fatalf("%s(%s) = %v, %v; want %v", tt.id, tt.word, got, err, tt.want)
		}
	}

	if _, err := byID["edible"].Predicate("banana"); !errors.Is(err, ErrUnknownWord) {
		t.Fatalf("expected ErrUnknownWord, got %v", err)
	}
}

func TestParseRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty vocabulary", "vocabulary: []\nquestions: [{text: x}]", "vocabulary is empty"},
		{"duplicate word", "vocabulary: [a, A]\nquestions: [{text: x}]", "duplicate vocabulary"},
		{"unknown word", "vocabulary: [a]\nquestions: [{id: q, text: x, words: [b]}]", "unknown word"},
		{"no questions", "vocabulary: [a]\nquestions: []", "question table is empty"},
		{"missing text", "vocabulary: [a]\nquestions: [{id: q}]", "has no text"},
		{"duplicate id", "vocabulary: [a]\nquestions: [{id: q, text: x}, {id: q, text: y}]", "duplicate question id"},
		{"bad yaml", "vocabulary: [", "parse table"},
	}
	for _, tt := range tests {
		_, err := Parse([]byte(tt.yaml))
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: got %v, want error containing %q", tt.name, err, tt.want)
		}
	}
}

func TestParseNormalizesAndNumbersQuestions(t *testing.T) {
	tbl, err := Parse([]byte("vocabulary: [' Apple ', Chair]\nquestions: [{text: 'Is it edible?', words: [APPLE]}]"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if v := tbl.Vocabulary(); v[0] != "apple" || v[1] != "chair" {
		t.Fatalf("vocabulary = %v", v)
	}
	q := tbl.Questions()[0]
	if q.ID != "q1" {
		t.Fatalf("id = %q, want q1", q.ID)
	}
	if ok, _ := q.Predicate("apple"); !ok {
		t.Fatal("predicate should hold for apple")
	}
}
