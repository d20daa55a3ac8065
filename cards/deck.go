package cards

import (
	"fmt"

	"lukechampine.com/frand"
)

// RNG is the source of randomness used for shuffling and tie-breaking.
// *frand.RNG and *math/rand.Rand both satisfy it. Implementations are not
// expected to be safe for concurrent use; give each match its own.
type RNG interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// SeedSize is the size of a seed accepted by NewRNG.
const SeedSize = 32

// NewRNG returns a deterministic generator for the given seed.
func NewRNG(seed [SeedSize]byte) *frand.RNG {
	return frand.NewCustom(seed[:], 1024, 12)
}

// A Deck is a pile of cards to deal from.
type Deck struct {
	cards []Card
	dealt int
}

// NewDeck creates an ordered deck containing one card of each rank/suit pair.
func NewDeck(ranks []Rank, suits []Suit) *Deck {
	d := &Deck{cards: make([]Card, 0, len(ranks)*len(suits))}
	for _, s := range suits {
		for _, r := range ranks {
			d.cards = append(d.cards, Card{Rank: r, Suit: s})
		}
	}
	return d
}

// Shuffle uniformly permutes the undealt cards.
func (d *Deck) Shuffle(rng RNG) {
	rest := d.cards[d.dealt:]
	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
}

// Deal removes n cards from the top of the deck.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > d.Remaining() {
		return nil, fmt.Errorf("tried to deal %v cards, deck has %v", n, d.Remaining())
	}
	out := make([]Card, n)
	copy(out, d.cards[d.dealt:d.dealt+n])
	d.dealt += n
	return out, nil
}

// Remaining is the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.dealt
}

// Refill puts every dealt card back, in its dealt order.
func (d *Deck) Refill() {
	d.dealt = 0
}
