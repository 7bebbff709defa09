// internal/words/words.go
//
// Provides the fixed vocabulary and question table for the word round.
//
// Responsibilities:
//   - Parse the embedded questions.yaml into an ordered vocabulary and question table.
//   - Validate the table (non-empty, unique words and ids, every listed word known).
//   - Turn each question's word list into a game.Predicate.
//   - Supply lookups like Vocabulary, Questions, IsKnown and Stats.
//
// Constraints:
//   • Words are normalized to lowercase.
//   • The table is immutable after Init; callers get copies of the slices.
//   • Initialization is run once (sync.Once).

package words

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/guessbot/internal/game"
)

//go:embed questions.yaml
var embeddedTable []byte

// tableFile is the on-disk shape of questions.yaml.
type tableFile struct {
	Vocabulary []string `yaml:"vocabulary"`
	Questions  []struct {
		ID    string   `yaml:"id"`
		Text  string   `yaml:"text"`
		Words []string `yaml:"words"`
	} `yaml:"questions"`
}

// Table is a parsed vocabulary plus its ordered questions.
type Table struct {
	vocab     []string
	known     map[string]struct{}
	questions []game.Question
}

var (
	initOnce   sync.Once
	defaults   *Table
	initialErr error
)

// Init parses the embedded table exactly once.
func Init() error {
	initOnce.Do(func() {
		defaults, initialErr = Parse(embeddedTable)
	})
	return initialErr
}

// Default returns the embedded table, initializing it on first use.
func Default() (*Table, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return defaults, nil
}

// Parse reads a YAML table and validates it.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("words: parse table: %w", err)
	}

	t := &Table{known: make(map[string]struct{}, len(f.Vocabulary))}
	for _, w := range f.Vocabulary {
		w = game.Normalize(w)
		if w == "" {
			return nil, errors.New("words: empty vocabulary entry")
		}
		if _, dup := t.known[w]; dup {
			return nil, fmt.Errorf("words: duplicate vocabulary entry %q", w)
		}
		t.known[w] = struct{}{}
		t.vocab = append(t.vocab, w)
	}
	if len(t.vocab) == 0 {
		return nil, errors.New("words: vocabulary is empty")
	}

	ids := make(map[string]struct{}, len(f.Questions))
	for i, q := range f.Questions {
		if q.Text == "" {
			return nil, fmt.Errorf("words: question %d has no text", i+1)
		}
		id := q.ID
		if id == "" {
			id = fmt.Sprintf("q%d", i+1)
		}
		if _, dup := ids[id]; dup {
			return nil, fmt.Errorf("words: duplicate question id %q", id)
		}
		ids[id] = struct{}{}

		set := make(map[string]struct{}, len(q.Words))
		for _, w := range q.Words {
			w = game.Normalize(w)
			if _, ok := t.known[w]; !ok {
				return nil, fmt.Errorf("words: question %q lists unknown word %q", id, w)
			}
			set[w] = struct{}{}
		}
		t.questions = append(t.questions, game.Question{ID: id, Text: q.Text, Predicate: t.memberOf(set)})
	}
	if len(t.questions) == 0 {
		return nil, errors.New("words: question table is empty")
	}
	return t, nil
}

// ErrUnknownWord is returned by table predicates for words outside the vocabulary.
var ErrUnknownWord = errors.New("words: unknown word")

// memberOf builds a predicate that holds for the words in set.
func (t *Table) memberOf(set map[string]struct{}) game.Predicate {
	return func(word string) (bool, error) {
		if _, ok := t.known[word]; !ok {
			return false, fmt.Errorf("%w %q", ErrUnknownWord, word)
		}
		_, yes := set[word]
		return yes, nil
	}
}

// Vocabulary returns the words in table order.
func (t *Table) Vocabulary() []string { return slices.Clone(t.vocab) }

// Questions returns the question table in order.
func (t *Table) Questions() []game.Question { return slices.Clone(t.questions) }

// IsKnown reports whether w (any case) is in the vocabulary.
func (t *Table) IsKnown(w string) bool {
	_, ok := t.known[game.Normalize(w)]
	return ok
}

// Stats returns counts of loaded entries: (vocabulary, questions).
func (t *Table) Stats() (vocabCount int, questionCount int) {
	return len(t.vocab), len(t.questions)
}
