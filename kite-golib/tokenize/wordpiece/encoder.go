package wordpiece

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/kiteco/deepset/kite-golib/errors"
	"github.com/kiteco/deepset/kite-golib/tokenize"
)

// ContinuationPrefix marks pieces that continue the previous piece of the same word
const ContinuationPrefix = "##"

// words longer than this are encoded as the unknown token
const maxWordLength = 100

// Encoder splits whitespace separated words into the fewest pieces of a vocabulary
type Encoder struct {
	vocab     []string
	vocabMap  map[string]int
	lowercase bool

	pad, unk, cls, sep int
}

var _ tokenize.Tokenizer = (*Encoder)(nil)

// NewEncoder reads a vocab.txt file, one token per line, the line number being the token id
func NewEncoder(path string, lowercase bool) (*Encoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open vocab")
	}
	defer f.Close()

	var vocab []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for s.Scan() {
		vocab = append(vocab, strings.TrimRight(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading vocab %s", path)
	}
	return NewEncoderFromVocab(vocab, lowercase)
}

// NewEncoderFromVocab builds an encoder whose token ids are the indices of vocab.
// The vocab must contain the [PAD], [UNK], [CLS] and [SEP] tokens.
func NewEncoderFromVocab(vocab []string, lowercase bool) (*Encoder, error) {
	vocabMap := make(map[string]int, len(vocab))
	for idx, v := range vocab {
		if _, ok := vocabMap[v]; !ok {
			vocabMap[v] = idx
		}
	}

	e := &Encoder{
		vocab:     vocab,
		vocabMap:  vocabMap,
		lowercase: lowercase,
	}
	for _, special := range []struct {
		token string
		id    *int
	}{
		{tokenize.Pad, &e.pad},
		{tokenize.Unknown, &e.unk},
		{tokenize.Classification, &e.cls},
		{tokenize.Separator, &e.sep},
	} {
		id, ok := vocabMap[special.token]
		if !ok {
			return nil, errors.InvalidArgumentf("vocab is missing special token %s", special.token)
		}
		*special.id = id
	}
	return e, nil
}

// Vocab returns the list of vocabulary of the encoder
func (e *Encoder) Vocab() []string {
	return e.vocab
}

// VocabSize ...
func (e *Encoder) VocabSize() int {
	return len(e.vocab)
}

// PadID ...
func (e *Encoder) PadID() int64 {
	return int64(e.pad)
}

// Tokens returns the pieces of text without boundary tokens or truncation
func (e *Encoder) Tokens(text string) []string {
	if e.lowercase {
		text = strings.ToLower(text)
	}
	var tokens []string
	for _, w := range strings.Fields(text) {
		pieces := e.encodeWord(w)
		if pieces == nil {
			pieces = []string{tokenize.Unknown}
		}
		tokens = append(tokens, pieces...)
	}
	return tokens
}

// Encode implements tokenize.Tokenizer
func (e *Encoder) Encode(text string, maxLength int) ([]int64, []int64, error) {
	if maxLength < 2 {
		return nil, nil, errors.InvalidArgumentf("max length %d cannot hold the boundary tokens", maxLength)
	}

	tokens := e.Tokens(text)
	if len(tokens) > maxLength-2 {
		tokens = tokens[:maxLength-2]
	}

	ids := make([]int64, 0, len(tokens)+2)
	ids = append(ids, int64(e.cls))
	for _, tok := range tokens {
		ids = append(ids, int64(e.vocabMap[tok]))
	}
	ids = append(ids, int64(e.sep))

	return ids, tokenize.AttentionMask(len(ids)), nil
}

// Decode implements tokenize.Tokenizer
func (e *Encoder) Decode(ids []int64) string {
	var words []string
	for _, id := range ids {
		switch int(id) {
		case e.cls, e.sep, e.pad:
			continue
		}
		if id < 0 || int(id) >= len(e.vocab) {
			words = append(words, tokenize.Unknown)
			continue
		}
		tok := e.vocab[id]
		if strings.HasPrefix(tok, ContinuationPrefix) && len(words) > 0 {
			words[len(words)-1] += strings.TrimPrefix(tok, ContinuationPrefix)
			continue
		}
		words = append(words, tok)
	}
	return strings.Join(words, " ")
}

// SaveVocabulary writes the vocab in vocab.txt format
func (e *Encoder) SaveVocabulary(path string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, f.Close)

	w := bufio.NewWriter(f)
	for _, v := range e.vocab {
		if _, err := w.WriteString(v + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// --

type subSolution struct {
	encodingLength int
	// length of the left part when the span is more than one piece
	split int
}

func (e *Encoder) piece(word string, i, j int) string {
	if i == 0 {
		return word[i:j]
	}
	return ContinuationPrefix + word[i:j]
}

// encodeWord returns the shortest segmentation of word into vocab pieces,
// or nil if no segmentation exists.
func (e *Encoder) encodeWord(word string) []string {
	if len(word) > maxWordLength {
		return nil
	}
	if _, ok := e.vocabMap[word]; ok {
		return []string{word}
	}

	// subs[i][j] is the best encoding of word[i:j]
	impossible := len(word) + 1
	subs := make([][]subSolution, len(word))
	for i := range subs {
		subs[i] = make([]subSolution, len(word)+1)
	}
	for k := 1; k <= len(word); k++ {
		for i := 0; i+k <= len(word); i++ {
			if _, ok := e.vocabMap[e.piece(word, i, i+k)]; ok {
				subs[i][i+k] = subSolution{encodingLength: 1}
				continue
			}
			sol := subSolution{encodingLength: impossible}
			for j := 1; j < k; j++ {
				left := subs[i][i+j].encodingLength
				right := subs[i+j][i+k].encodingLength
				if left == impossible || right == impossible {
					continue
				}
				if left+right < sol.encodingLength {
					sol = subSolution{encodingLength: left + right, split: j}
				}
			}
			subs[i][i+k] = sol
		}
	}
	if subs[0][len(word)].encodingLength == impossible {
		return nil
	}

	var sol []string
	var collect func(i, j int)
	collect = func(i, j int) {
		s := subs[i][j]
		if s.encodingLength == 1 {
			sol = append(sol, e.piece(word, i, j))
			return
		}
		collect(i, i+s.split)
		collect(i+s.split, j)
	}
	collect(0, len(word))
	return sol
}
