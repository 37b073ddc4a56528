package langstats

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/bastiangx/langstats/internal/utils"
	"github.com/bastiangx/langstats/pkg/grams"
	"github.com/bastiangx/langstats/pkg/statfile"
	"github.com/bastiangx/langstats/pkg/wordtree"
)

// CreateGrams loads the gram model of the given order for language from dir.
func CreateGrams(language, dir string, order grams.Order, useSpaces bool) (*grams.Model, error) {
	if !order.Valid() {
		return nil, &grams.UnsupportedOrderError{Order: int(order)}
	}
	return grams.Open(language, order, dir, useSpaces)
}

// CreateGramsBySize is CreateGrams with the order given as a gram size.
func CreateGramsBySize(size int, language, dir string, useSpaces bool) (*grams.Model, error) {
	order, err := grams.OrderFromSize(size)
	if err != nil {
		return nil, err
	}
	return CreateGrams(language, dir, order, useSpaces)
}

// DictionaryFileName returns the dictionary file name for language.
func DictionaryFileName(language string) string {
	return fmt.Sprintf("Dictionary_%s.dic", language)
}

// LoadWordTree loads the dictionary of language from dir.
func LoadWordTree(language, dir string) (*wordtree.Tree, error) {
	path := filepath.Join(dir, DictionaryFileName(language))
	tree, err := wordtree.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &statfile.MissingResourceError{
				Kind:     statfile.KindDictionary,
				Language: language,
				Path:     path,
				Err:      err,
			}
		}
		return nil, err
	}
	return tree, nil
}

// Availability lists the files of one language present in a data directory.
type Availability struct {
	Language    string
	Orders      []grams.Order
	SpaceOrders []grams.Order
	Dictionary  bool
}

// Inventory checks dir for every gram table and the dictionary of language.
// Files are only stat'ed, not loaded.
func Inventory(dir, language string) Availability {
	a := Availability{Language: language}
	for o := grams.Unigrams; o <= grams.MaxOrder; o++ {
		if utils.FileExists(filepath.Join(dir, grams.FileName(language, o, false))) {
			a.Orders = append(a.Orders, o)
		}
		if utils.FileExists(filepath.Join(dir, grams.FileName(language, o, true))) {
			a.SpaceOrders = append(a.SpaceOrders, o)
		}
	}
	a.Dictionary = utils.FileExists(filepath.Join(dir, DictionaryFileName(language)))
	return a
}
