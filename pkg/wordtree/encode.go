package wordtree

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/bastiangx/langstats/pkg/statfile"
)

// AddWord inserts the upper-cased word. It reports whether the word was new.
func (t *Tree) AddWord(word string) (bool, error) {
	if word == "" {
		return false, nil
	}
	upper := strings.ToUpper(word)
	if strings.ContainsRune(upper, TerminationSymbol) || strings.ContainsRune(upper, WordEndSymbol) {
		return false, fmt.Errorf("word %q contains a reserved symbol", word)
	}

	node := t.Root
	for _, r := range upper {
		child := node.Child(r)
		if child == nil {
			child = &Node{Value: r}
			node.Children = append(node.Children, child)
		}
		node = child
	}
	if node.WordEndsHere {
		return false, nil
	}
	node.WordEndsHere = true
	t.MarkedWords++
	t.StoredWords = t.HeaderWords + t.MarkedWords
	return true, nil
}

// countWords counts word end markers below the root.
func (t *Tree) countWords() int {
	count := 0
	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.WordEndsHere {
			count++
		}
		stack = append(stack, n.Children...)
	}
	return count
}

type cursor struct {
	node *Node
	next int
}

// Serialize writes the tree in the uncompressed dictionary format. The
// header word count is the number of words in the tree.
func (t *Tree) Serialize(w io.Writer) error {
	words := t.countWords()
	if uint64(words) > math.MaxUint32 {
		return fmt.Errorf("tree holds %d words, more than a header can record", words)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(statfile.DictionaryMagic)
	bw.WriteString(t.LanguageCode)
	bw.WriteRune(TerminationSymbol)
	bw.WriteString(t.Alphabet)
	bw.WriteRune(TerminationSymbol)
	binary.Write(bw, binary.LittleEndian, uint32(words))

	if t.Root.WordEndsHere {
		bw.WriteRune(WordEndSymbol)
	}
	stack := []cursor{{node: t.Root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.Children) {
			child := top.node.Children[top.next]
			top.next++
			bw.WriteRune(child.Value)
			if child.WordEndsHere {
				bw.WriteRune(WordEndSymbol)
			}
			stack = append(stack, cursor{node: child})
			continue
		}
		// the root itself is never closed
		if len(stack) > 1 {
			bw.WriteRune(TerminationSymbol)
		}
		stack = stack[:len(stack)-1]
	}
	return bw.Flush()
}

// Save writes the tree gzip compressed to path.
func (t *Tree) Save(path string) error {
	wc, err := statfile.CreateGzip(path)
	if err != nil {
		return err
	}
	if err := t.Serialize(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
