package grams

import "fmt"

// Order is the number of consecutive symbols a frequency table is indexed by.
type Order int

const (
	Undefined Order = iota
	Unigrams
	Bigrams
	Trigrams
	Tetragrams
	Pentagrams
	Hexagrams
)

// MaxOrder is the highest supported gram order.
const MaxOrder = Hexagrams

var orderNames = [...]string{
	Undefined:  "undefined",
	Unigrams:   "unigrams",
	Bigrams:    "bigrams",
	Trigrams:   "trigrams",
	Tetragrams: "tetragrams",
	Pentagrams: "pentagrams",
	Hexagrams:  "hexagrams",
}

func (o Order) String() string {
	if o.Valid() || o == Undefined {
		return orderNames[o]
	}
	return fmt.Sprintf("order(%d)", int(o))
}

// Valid reports whether o is one of Unigrams..Hexagrams.
func (o Order) Valid() bool {
	return o >= Unigrams && o <= MaxOrder
}

// UnsupportedOrderError is returned for gram orders outside 1..6.
type UnsupportedOrderError struct {
	Order int
}

func (e *UnsupportedOrderError) Error() string {
	return fmt.Sprintf("unsupported gram order %d (supported: %d..%d)", e.Order, Unigrams, MaxOrder)
}

// OrderFromSize maps a gram size to its Order.
func OrderFromSize(size int) (Order, error) {
	o := Order(size)
	if !o.Valid() {
		return Undefined, &UnsupportedOrderError{Order: size}
	}
	return o, nil
}
