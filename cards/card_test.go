package cards

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestParse(t *testing.T) {
	is := is.New(t)
	type tc struct {
		in  string
		exp Card
	}
	cases := []tc{
		{"5S", Card{5, Spades}},
		{"10h", Card{10, Hearts}},
		{"TD", Card{10, Diamonds}},
		{"jc", Card{Jack, Clubs}},
		{"AS", Card{Ace, Spades}},
		{"K♦", Card{King, Diamonds}},
		{"Q♥️", Card{Queen, Hearts}},
		{" 7♣ ", Card{7, Clubs}},
	}
	for _, c := range cases {
		card, err := Parse(c.in)
		is.NoErr(err)
		is.Equal(card, c.exp)
	}
}

func TestParseErrors(t *testing.T) {
	is := is.New(t)
	for _, in := range []string{"", "5", "1S", "11S", "5X", "ZZ"} {
		_, err := Parse(in)
		is.True(err != nil)
	}
	_, err := Parse("5X")
	is.True(errors.Is(err, ErrBadSuit))
	_, err = Parse("ZS")
	is.True(errors.Is(err, ErrBadRank))
}

func TestStringRoundTrip(t *testing.T) {
	is := is.New(t)
	hand := MustParseList("AS 10H JD, QC KS")
	is.Equal(len(hand), 5)
	is.Equal(String(hand), "AS 10H JD QC KS")
	is.Equal(Card{Jack, Hearts}.Pretty(), "J♥")
}

func TestRemove(t *testing.T) {
	is := is.New(t)
	hand := MustParseList("5S 5H 5S")
	out, ok := Remove(hand, MustParse("5S"))
	is.True(ok)
	is.Equal(String(out), "5H 5S")
	// the input slice is left alone
	is.Equal(String(hand), "5S 5H 5S")
	_, ok = Remove(hand, MustParse("6S"))
	is.True(!ok)
}

func TestDeckDeal(t *testing.T) {
	is := is.New(t)
	ranks := []Rank{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	d := NewDeck(ranks, suits)
	is.Equal(d.Remaining(), 52)

	var seed [SeedSize]byte
	seed[0] = 42
	d.Shuffle(NewRNG(seed))

	seen := map[Card]bool{}
	dealt, err := d.Deal(52)
	is.NoErr(err)
	for _, c := range dealt {
		is.True(c.Valid())
		is.True(!seen[c])
		seen[c] = true
	}
	is.Equal(len(seen), 52)

	_, err = d.Deal(1)
	is.True(err != nil)
}

func TestShuffleDeterministic(t *testing.T) {
	is := is.New(t)
	ranks := []Rank{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}
	suits := []Suit{Spades, Hearts, Diamonds, Clubs}
	var seed [SeedSize]byte
	seed[5] = 7

	d1 := NewDeck(ranks, suits)
	d1.Shuffle(NewRNG(seed))
	d2 := NewDeck(ranks, suits)
	d2.Shuffle(NewRNG(seed))
	c1, _ := d1.Deal(13)
	c2, _ := d2.Deal(13)
	is.Equal(c1, c2)
}
