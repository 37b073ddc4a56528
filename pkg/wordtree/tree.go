// Package wordtree implements the dictionary prefix tree and its depth-first
// binary encoding.
//
// The encoding after the header is a byte stream read until EOF. A symbol
// adds a child to the node on top of a stack and descends into it, 0x01 marks
// the top node as a word end and 0x00 pops the stack. Branches left open at
// EOF are accepted as they are.
//
// A Tree is not modified by lookups, so a fully loaded Tree may be shared by
// any number of goroutines.
package wordtree

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/langstats/pkg/statfile"
	"github.com/charmbracelet/log"
)

// Tree is a dictionary of words stored as a prefix tree.
type Tree struct {
	Root         *Node
	LanguageCode string
	Alphabet     string
	// HeaderWords is the word count stored in the file header, MarkedWords the
	// number of word end markers met while decoding. StoredWords is their sum.
	HeaderWords int
	MarkedWords int
	StoredWords int
}

// New returns an empty tree.
func New(languageCode, alphabet string) *Tree {
	return &Tree{Root: &Node{}, LanguageCode: languageCode, Alphabet: alphabet}
}

func formatErr(err error) error {
	return &statfile.FormatError{Format: statfile.DictionaryMagic, Err: err}
}

func readFailure(err error, what string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return formatErr(fmt.Errorf("%w while reading %s", statfile.ErrTruncated, what))
	}
	return formatErr(fmt.Errorf("reading %s: %w", what, err))
}

func readRune(br *bufio.Reader, what string) (rune, error) {
	r, size, err := br.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == utf8.RuneError && size == 1 {
		return 0, formatErr(fmt.Errorf("%w in %s", statfile.ErrInvalidEncoding, what))
	}
	return r, nil
}

func readCString(br *bufio.Reader, what string) (string, error) {
	var sb strings.Builder
	for {
		r, err := readRune(br, what)
		if err != nil {
			var fe *statfile.FormatError
			if errors.As(err, &fe) {
				return "", err
			}
			return "", readFailure(err, what)
		}
		if r == TerminationSymbol {
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

// Deserialize decodes an uncompressed dictionary stream.
func Deserialize(r io.Reader) (*Tree, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(statfile.DictionaryMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, readFailure(err, "magic number")
	}
	if string(magic) != statfile.DictionaryMagic {
		return nil, formatErr(fmt.Errorf("%w: got %q", statfile.ErrBadMagic, magic))
	}

	languageCode, err := readCString(br, "language code")
	if err != nil {
		return nil, err
	}
	alphabet, err := readCString(br, "alphabet")
	if err != nil {
		return nil, err
	}
	var headerWords uint32
	if err := binary.Read(br, binary.LittleEndian, &headerWords); err != nil {
		return nil, readFailure(err, "word count")
	}

	tree := New(languageCode, alphabet)
	tree.HeaderWords = int(headerWords)

	stack := []*Node{tree.Root}
	for offset := 0; ; offset++ {
		symbol, err := readRune(br, "tree data")
		if err == io.EOF {
			break
		}
		if err != nil {
			var fe *statfile.FormatError
			if errors.As(err, &fe) {
				return nil, err
			}
			return nil, readFailure(err, "tree data")
		}
		if len(stack) == 0 {
			return nil, formatErr(fmt.Errorf("%w: data after the root was closed (symbol %d)", statfile.ErrUnbalanced, offset))
		}

		top := stack[len(stack)-1]
		switch symbol {
		case WordEndSymbol:
			top.WordEndsHere = true
			tree.MarkedWords++
		case TerminationSymbol:
			stack = stack[:len(stack)-1]
		default:
			child := &Node{Value: symbol}
			top.Children = append(top.Children, child)
			stack = append(stack, child)
		}
	}
	tree.StoredWords = tree.HeaderWords + tree.MarkedWords

	return tree, nil
}

// Load opens a gzip compressed dictionary file and decodes it.
func Load(path string) (*Tree, error) {
	start := time.Now()
	rc, err := statfile.OpenGzip(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	tree, err := Deserialize(rc)
	if err != nil {
		return nil, statfile.WithPath(err, path)
	}
	log.Debugf("Loaded dictionary %s (%s) in %v: %d words", path, tree.LanguageCode, time.Since(start), tree.MarkedWords)
	return tree, nil
}

// ContainsWord reports whether the upper-cased word is a path from the root.
// Any stored prefix matches, not only complete words, and the empty word
// always matches.
func (t *Tree) ContainsWord(word string) bool {
	node := t.Root
	for _, r := range strings.ToUpper(word) {
		node = node.Child(r)
		if node == nil {
			return false
		}
	}
	return true
}

// ContainsCompleteWord is ContainsWord restricted to paths ending at a word end.
func (t *Tree) ContainsCompleteWord(word string) bool {
	node := t.Root
	for _, r := range strings.ToUpper(word) {
		node = node.Child(r)
		if node == nil {
			return false
		}
	}
	return node.WordEndsHere
}

type pathFrame struct {
	node *Node
	path []rune
}

// ToList returns every word of the tree in depth-first, insertion order.
func (t *Tree) ToList() []string {
	var words []string
	stack := make([]pathFrame, 0, len(t.Root.Children))
	for i := len(t.Root.Children) - 1; i >= 0; i-- {
		stack = append(stack, pathFrame{node: t.Root.Children[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		path := make([]rune, len(f.path)+1)
		copy(path, f.path)
		path[len(f.path)] = f.node.Value

		if f.node.WordEndsHere {
			words = append(words, string(path))
		}
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, pathFrame{node: f.node.Children[i], path: path})
		}
	}
	return words
}
