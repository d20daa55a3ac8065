package scoring

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/rules"
)

func turnCard(s string) *cards.Card {
	c := cards.MustParse(s)
	return &c
}

func TestPerfectHand(t *testing.T) {
	is := is.New(t)
	b := Score(rules.Standard(), cards.MustParseList("5S 5H 5D JC"), turnCard("5C"), false)
	is.Equal(b, Breakdown{Total: 29, Pairs: 12, Fifteens: 16, Runs: 0, Flushes: 0, Nobs: 1})
}

func TestDoubleRunNoTurn(t *testing.T) {
	is := is.New(t)
	b := Score(rules.Standard(), cards.MustParseList("4S 5S 6S 4H"), nil, false)
	is.Equal(b.Runs, 6)
	is.Equal(b.Pairs, 2)
	is.Equal(b.Fifteens, 4)
	is.Equal(b.Flushes, 0)
	is.Equal(b.Total, 12)
}

func TestScoreCases(t *testing.T) {
	r := rules.Standard()
	type tc struct {
		name   string
		hand   string
		turn   string
		crib   bool
		expect Breakdown
	}
	cases := []tc{
		{"nineteen", "2S 4H 6D 8C", "KS", false,
			Breakdown{Total: 0}},
		{"double double run", "3S 3H 4D 4C", "5S", false,
			Breakdown{Total: 20, Pairs: 4, Fifteens: 4, Runs: 12}},
		{"run of five", "AS 2H 3D 4C", "5S", false,
			Breakdown{Total: 7, Fifteens: 2, Runs: 5}},
		{"hand flush", "2H 4H 6H 9H", "KS", false,
			Breakdown{Total: 8, Fifteens: 4, Flushes: 4}},
		{"hand flush in crib", "2H 4H 6H 9H", "KS", true,
			Breakdown{Total: 4, Fifteens: 4}},
		{"five card flush", "2H 4H 6H 9H", "KH", false,
			Breakdown{Total: 9, Fifteens: 4, Flushes: 5}},
		{"five card flush in crib", "2H 4H 6H 9H", "KH", true,
			Breakdown{Total: 9, Fifteens: 4, Flushes: 5}},
		{"three of a suit with matching turn", "2H 4H 6H 9S", "KH", false,
			Breakdown{Total: 4, Fifteens: 4}},
		{"nobs", "JD 2C 6S 9H", "3D", false,
			Breakdown{Total: 5, Fifteens: 4, Nobs: 1}},
		{"turned jack is not nobs", "QD 2C 4S 9H", "JD", false,
			Breakdown{Total: 2, Fifteens: 2}},
		{"fives and tens", "5S 5H 10D KC", "QS", false,
			Breakdown{Total: 14, Pairs: 2, Fifteens: 12}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var turn *cards.Card
			if c.turn != "" {
				turn = turnCard(c.turn)
			}
			b := Score(r, cards.MustParseList(c.hand), turn, c.crib)
			assert.Equal(t, c.expect, b)
		})
	}
}

func TestEmptyHand(t *testing.T) {
	is := is.New(t)
	r := rules.Standard()
	is.Equal(Score(r, nil, nil, false), Breakdown{})
	is.Equal(Score(r, nil, turnCard("5S"), true), Breakdown{})
}

func TestScoreOrderInvariant(t *testing.T) {
	is := is.New(t)
	r := rules.Standard()
	var seed [cards.SeedSize]byte
	seed[0] = 3
	rng := cards.NewRNG(seed)
	for i := 0; i < 500; i++ {
		d := r.NewDeck()
		d.Shuffle(rng)
		dealt, err := d.Deal(5)
		is.NoErr(err)
		hand, turn := dealt[:4], dealt[4]
		crib := i%2 == 0
		expected := Score(r, hand, &turn, crib)

		shuffled := append([]cards.Card(nil), hand...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		is.Equal(Score(r, shuffled, &turn, crib), expected)
	}
}
