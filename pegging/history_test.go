package pegging

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/require"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/rules"
)

type step struct {
	card   string // "" for a pass
	player int
	score  int
}

func cardPtr(s string) *cards.Card {
	if s == "" {
		return nil
	}
	c := cards.MustParse(s)
	return &c
}

func replay(t *testing.T, steps []step) History {
	t.Helper()
	r := rules.Standard()
	h := New()
	for i, s := range steps {
		var score int
		var err error
		h, score, err = h.Play(r, cardPtr(s.card), s.player)
		require.NoError(t, err, "step %d", i)
		require.Equal(t, s.score, score, "step %d (%q)", i, s.card)
	}
	return h
}

func TestFifteenPairAndThirtyOne(t *testing.T) {
	is := is.New(t)
	h := replay(t, []step{
		{"5S", NonDealer, 0},
		{"KH", Dealer, 2},    // 15
		{"KD", NonDealer, 2}, // pair, 25
		{"6C", Dealer, 2},    // 31
		{"", NonDealer, 0},   // nothing left to give at 31
		{"", Dealer, 0},      // closes the round
	})
	is.True(h.IsStartOfRound())
	is.True(!h.HasPassed(Dealer))
	is.True(!h.HasPassed(NonDealer))
	is.Equal(len(h.Plays()), 1)
	is.Equal(len(h.Plays()[0]), 5)
}

func TestGoAndThirtyOneAfterGo(t *testing.T) {
	is := is.New(t)
	h := replay(t, []step{
		{"10S", NonDealer, 0},
		{"10H", Dealer, 2},
		{"KS", NonDealer, 0}, // 30
		{"", Dealer, -1},     // go: a point for the non-dealer
		{"AS", NonDealer, 1}, // 31 after a go
		{"", NonDealer, 0},   // closes
	})
	is.True(h.IsStartOfRound())
}

func TestGoThenPlayOn(t *testing.T) {
	is := is.New(t)
	h := replay(t, []step{
		{"10S", NonDealer, 0},
		{"QH", Dealer, 0},
		{"9S", NonDealer, 0}, // 29
		{"", Dealer, -1},
		{"AC", NonDealer, 0}, // 30, scored like any other card
		{"", Dealer, 0},      // still out
	})
	is.Equal(h.Total(), 30)
	is.True(h.HasPassed(Dealer))
	is.True(!h.HasPassed(NonDealer))

	h = replay(t, []step{
		{"10S", NonDealer, 0},
		{"QH", Dealer, 0},
		{"9S", NonDealer, 0},
		{"", Dealer, -1},
		{"AC", NonDealer, 0},
		{"", Dealer, 0},
		{"", NonDealer, 0}, // closes
	})
	is.True(h.IsStartOfRound())
	is.True(!h.HasPassed(Dealer))
}

func TestRuns(t *testing.T) {
	replay(t, []step{
		{"3S", NonDealer, 0},
		{"5H", Dealer, 0},
		{"4D", NonDealer, 3},
		{"6C", Dealer, 4}, // 18
		{"7C", NonDealer, 5},
	})
	replay(t, []step{
		{"7S", NonDealer, 0},
		{"5H", Dealer, 0},
		{"6D", NonDealer, 3},
	})
	// the repeated 5 breaks the run
	replay(t, []step{
		{"4S", NonDealer, 0},
		{"5H", Dealer, 0},
		{"6D", NonDealer, 5}, // run of three and 15
		{"5C", Dealer, 0},
	})
	// a run can still be found after an older duplicate
	replay(t, []step{
		{"AS", NonDealer, 0},
		{"AH", Dealer, 2},
		{"2D", NonDealer, 0},
		{"3C", Dealer, 3},
	})
}

func TestPairsRoyal(t *testing.T) {
	replay(t, []step{
		{"2S", NonDealer, 0},
		{"2H", Dealer, 2},
		{"2D", NonDealer, 6},
		{"2C", Dealer, 12},
	})
	// an intervening card breaks the pair
	replay(t, []step{
		{"2S", NonDealer, 0},
		{"3H", Dealer, 0},
		{"2D", NonDealer, 0},
	})
}

func TestRoundsDoNotMix(t *testing.T) {
	is := is.New(t)
	h := replay(t, []step{
		{"KS", NonDealer, 0},
		{"KH", Dealer, 2},
		{"JD", NonDealer, 0}, // 30
		{"", Dealer, -1},
		{"", NonDealer, 0}, // closes
		{"JC", Dealer, 0},  // no pair with the jack of the last round
		{"QC", NonDealer, 0},
		{"KC", Dealer, 3},
	})
	is.Equal(h.Total(), 30)
	rounds := h.Plays()
	is.Equal(len(rounds), 2)
	is.Equal(len(rounds[0]), 4) // three cards and the go
	is.True(rounds[0][3].Card == nil)
	is.Equal(len(rounds[1]), 3)
	is.Equal(*rounds[1][0].Card, cards.MustParse("JC"))
	is.Equal(h.String(), "JC QC KC (30)")
}

func TestIllegalPlays(t *testing.T) {
	is := is.New(t)
	r := rules.Standard()
	h := replay(t, []step{
		{"KS", NonDealer, 0},
		{"KH", Dealer, 2},
		{"5D", NonDealer, 0}, // 25
	})
	is.True(!h.IsLegal(r, cards.MustParse("7C"), Dealer))
	is.True(h.IsLegal(r, cards.MustParse("6C"), Dealer))
	_, _, err := h.Play(r, cardPtr("7C"), Dealer)
	is.Equal(err, ErrIllegalPlay)
	_, ok := h.Score(r, cardPtr("7C"), Dealer)
	is.True(!ok)

	is.True(!h.HasLegalPlay(r, cards.MustParseList("7C 9D"), Dealer))
	is.True(h.HasLegalPlay(r, cards.MustParseList("7C 2D"), Dealer))

	h2, score, err := h.Play(r, nil, Dealer)
	is.NoErr(err)
	is.Equal(score, -1)
	// a player who passed may not play again this round
	_, _, err = h2.Play(r, cardPtr("AC"), Dealer)
	is.Equal(err, ErrIllegalPlay)
	is.True(!h2.HasLegalPlay(r, cards.MustParseList("AC"), Dealer))
}

func TestImmutable(t *testing.T) {
	is := is.New(t)
	r := rules.Standard()
	base := replay(t, []step{
		{"5S", NonDealer, 0},
		{"5H", Dealer, 2},
	})
	a, score, err := base.Play(r, cardPtr("5D"), NonDealer)
	is.NoErr(err)
	is.Equal(score, 8) // three of a kind and 15
	b, score, err := base.Play(r, cardPtr("10D"), NonDealer)
	is.NoErr(err)
	is.Equal(score, 0)

	is.Equal(base.Total(), 10)
	is.Equal(a.Total(), 15)
	is.Equal(b.Total(), 20)
	is.Equal(*a.CurrentRound()[2].Card, cards.MustParse("5D"))
	is.Equal(*b.CurrentRound()[2].Card, cards.MustParse("10D"))
	is.Equal(base.Len(), 2)
}

func TestEmptyHistory(t *testing.T) {
	is := is.New(t)
	h := New()
	is.True(h.IsStartOfRound())
	is.Equal(len(h.Plays()), 0)
	is.Equal(h.String(), "(0)")
}
