// Package cards contains the playing card value type, card parsing, and a
// deck that can be shuffled and dealt from.
package cards

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Rank is a card rank from 1 (Ace) to 13 (King).
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Suit is one of the four suits. The numeric values index per-suit arrays.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// NumSuits is the size of a per-suit count array.
const NumSuits = 4

// NumRanks is the number of ranks; per-rank arrays are sized NumRanks+1 so
// they can be indexed by Rank directly.
const NumRanks = 13

var suitLetters = [NumSuits]byte{'S', 'H', 'D', 'C'}
var suitGlyphs = [NumSuits]string{"♠", "♥", "♦", "♣"}

var (
	ErrBadCard = errors.New("badly formatted card")
	ErrBadRank = errors.New("invalid rank")
	ErrBadSuit = errors.New("invalid suit")
)

func (s Suit) String() string {
	if s < 0 || int(s) >= NumSuits {
		return "?"
	}
	return string(suitLetters[s])
}

// Glyph returns the unicode symbol for the suit.
func (s Suit) Glyph() string {
	if s < 0 || int(s) >= NumSuits {
		return "?"
	}
	return suitGlyphs[s]
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// Card is an immutable (rank, suit) pair. Cards compare by value.
type Card struct {
	Rank Rank
	Suit Suit
}

// New returns the card with the given rank and suit.
func New(r Rank, s Suit) Card {
	return Card{Rank: r, Suit: s}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Pretty renders the card with a suit glyph, e.g. 5♠.
func (c Card) Pretty() string {
	return c.Rank.String() + c.Suit.Glyph()
}

// Valid returns whether the rank and suit are in range.
func (c Card) Valid() bool {
	return c.Rank >= Ace && c.Rank <= King && c.Suit >= Spades && c.Suit <= Clubs
}

// variation selectors show up after suit glyphs pasted from emoji pickers
// (e.g. "♠️"); strip them before parsing.
var stripSelectors = runes.Remove(runes.In(unicode.Variation_Selector))

// Parse parses a card such as "5S", "10h", "TD", "Jc" or "Q♥".
func Parse(s string) (Card, error) {
	cleaned, _, err := transform.String(stripSelectors, strings.TrimSpace(s))
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	cleaned = strings.ToUpper(cleaned)
	rs := []rune(cleaned)
	if len(rs) < 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrBadCard, s)
	}
	suit, err := parseSuit(rs[len(rs)-1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", err, s)
	}
	rank, err := parseRank(string(rs[:len(rs)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q", err, s)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// MustParse is like Parse but panics on error. Meant for tests and fixtures.
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 'S', '♠', '♤':
		return Spades, nil
	case 'H', '♥', '♡':
		return Hearts, nil
	case 'D', '♦', '♢':
		return Diamonds, nil
	case 'C', '♣', '♧':
		return Clubs, nil
	}
	return 0, ErrBadSuit
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "A":
		return Ace, nil
	case "T":
		return 10, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 2 || v > 10 {
		return 0, ErrBadRank
	}
	return Rank(v), nil
}

// ParseList parses a whitespace- or comma-separated list of cards.
func ParseList(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// MustParseList is like ParseList but panics on error.
func MustParseList(s string) []Card {
	cs, err := ParseList(s)
	if err != nil {
		panic(err)
	}
	return cs
}

// String renders a list of cards separated by spaces.
func String(cs []Card) string {
	var sb strings.Builder
	for i, c := range cs {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(c.String())
	}
	return sb.String()
}

// Contains returns whether c is in cs.
func Contains(cs []Card, c Card) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

// Remove returns a copy of cs with the first occurrence of c removed, and
// whether c was found.
func Remove(cs []Card, c Card) ([]Card, bool) {
	for i, x := range cs {
		if x == c {
			out := make([]Card, 0, len(cs)-1)
			out = append(out, cs[:i]...)
			return append(out, cs[i+1:]...), true
		}
	}
	return cs, false
}
