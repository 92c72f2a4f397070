package wordpiece

import (
	"sort"
	"strings"

	"github.com/kiteco/deepset/kite-golib/tokenize"
)

// Specials are the reserved tokens placed at the start of a built vocab, [PAD] is id 0
var Specials = []string{tokenize.Pad, tokenize.Unknown, tokenize.Classification, tokenize.Separator, tokenize.Mask}

// WordCount is a word of the corpus with its number of occurrences
type WordCount struct {
	Word  string
	Count int
}

// SortPopularity sorts by descending count, then lexicographically
type SortPopularity []WordCount

// Len implements sort.Interface
func (b SortPopularity) Len() int { return len(b) }

// Less implements sort.Interface
func (b SortPopularity) Less(i, j int) bool {
	if b[i].Count == b[j].Count {
		return b[i].Word < b[j].Word
	}
	return b[i].Count > b[j].Count
}

// Swap implements sort.Interface
func (b SortPopularity) Swap(i, j int) {
	b[i], b[j] = b[j], b[i]
}

// Builder accumulates word counts from a corpus to build a vocab
type Builder struct {
	lowercase bool
	words     map[string]int
	chars     map[string]struct{}
}

// NewBuilder ...
func NewBuilder(lowercase bool) *Builder {
	return &Builder{
		lowercase: lowercase,
		words:     make(map[string]int),
		chars:     make(map[string]struct{}),
	}
}

// Add counts the words of text
func (b *Builder) Add(text string) {
	if b.lowercase {
		text = strings.ToLower(text)
	}
	for _, w := range strings.Fields(text) {
		b.words[w]++
		for _, r := range w {
			b.chars[string(r)] = struct{}{}
		}
	}
}

// Words returns the counted words, most popular first
func (b *Builder) Words() []WordCount {
	words := make([]WordCount, 0, len(b.words))
	for w, c := range b.words {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Sort(SortPopularity(words))
	return words
}

// Vocab returns the specials, every seen character both as a word start and as a continuation,
// and then the most popular words until size entries are reached. The character entries are
// always included, so the vocab may exceed size; they guarantee every added word can be encoded.
func (b *Builder) Vocab(size int) []string {
	chars := make([]string, 0, len(b.chars))
	for c := range b.chars {
		chars = append(chars, c)
	}
	sort.Strings(chars)

	vocab := append([]string(nil), Specials...)
	seen := make(map[string]struct{})
	for _, s := range Specials {
		seen[s] = struct{}{}
	}
	add := func(tok string) {
		if _, ok := seen[tok]; ok {
			return
		}
		seen[tok] = struct{}{}
		vocab = append(vocab, tok)
	}
	for _, c := range chars {
		add(c)
	}
	for _, c := range chars {
		add(ContinuationPrefix + c)
	}
	for _, wc := range b.Words() {
		if len(vocab) >= size {
			break
		}
		add(wc.Word)
	}
	return vocab
}

// BuildEncoder builds a vocab of about size entries from texts and returns its encoder
func BuildEncoder(texts []string, size int, lowercase bool) (*Encoder, error) {
	b := NewBuilder(lowercase)
	for _, t := range texts {
		b.Add(t)
	}
	return NewEncoderFromVocab(b.Vocab(size), lowercase)
}
