package game

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/pegging"
	"github.com/domino14/cribbage/rules"
)

// firstLegal keeps the first four cards and pegs the first legal card.
type firstLegal struct{}

func (firstLegal) Keep(hand []cards.Card, scores [2]int, amDealer bool) ([]cards.Card, []cards.Card, error) {
	return hand[:4], hand[4:], nil
}

func (firstLegal) Peg(hand []cards.Card, h pegging.History, scores [2]int, amDealer bool) (*cards.Card, error) {
	role := pegging.NonDealer
	if amDealer {
		role = pegging.Dealer
	}
	for _, c := range hand {
		if h.IsLegal(rules.Standard(), c, role) {
			return &c, nil
		}
	}
	return nil, nil
}

// scripted overrides one of the two decisions of firstLegal.
type scripted struct {
	firstLegal
	keep func(hand []cards.Card) ([]cards.Card, []cards.Card, error)
	peg  func(hand []cards.Card) (*cards.Card, error)
}

func (s scripted) Keep(hand []cards.Card, scores [2]int, amDealer bool) ([]cards.Card, []cards.Card, error) {
	if s.keep != nil {
		return s.keep(hand)
	}
	return s.firstLegal.Keep(hand, scores, amDealer)
}

func (s scripted) Peg(hand []cards.Card, h pegging.History, scores [2]int, amDealer bool) (*cards.Card, error) {
	if s.peg != nil {
		return s.peg(hand)
	}
	return s.firstLegal.Peg(hand, h, scores, amDealer)
}

func seeded(b byte) cards.RNG {
	var seed [cards.SeedSize]byte
	seed[0] = b
	return cards.NewRNG(seed)
}

func TestMatchCompletes(t *testing.T) {
	is := is.New(t)
	r := rules.Standard()
	tr := &Transcript{}
	m, err := NewMatch(r, firstLegal{}, firstLegal{}, seeded(1), WithLogger(tr))
	is.NoErr(err)
	res, err := m.Play(context.Background())
	is.NoErr(err)

	is.True(max(res.Scores[0], res.Scores[1]) >= r.WinningScore())
	is.True(min(res.Scores[0], res.Scores[1]) < r.WinningScore())
	is.True(res.Value != 0)
	is.Equal(res.Value, r.GameValue(res.Scores[0], res.Scores[1]))
	is.True(res.Hands > 0)

	// scores never go down and stop moving once the match is won
	prev := [2]int{}
	for i, e := range tr.Events {
		is.True(e.Scores[0] >= prev[0])
		is.True(e.Scores[1] >= prev[1])
		if max(prev[0], prev[1]) >= r.WinningScore() {
			is.Equal(e.Kind, EventGameOver)
			is.Equal(i, len(tr.Events)-1)
		}
		prev = e.Scores
	}
	is.Equal(tr.Events[len(tr.Events)-1].Kind, EventGameOver)
	is.Equal(prev, res.Scores)
}

func TestMatchIsReproducible(t *testing.T) {
	is := is.New(t)
	play := func() (Result, []Event) {
		tr := &Transcript{}
		m, err := NewMatch(nil, firstLegal{}, firstLegal{}, seeded(7), WithLogger(tr))
		is.NoErr(err)
		res, err := m.Play(context.Background())
		is.NoErr(err)
		return res, tr.Events
	}
	r1, e1 := play()
	r2, e2 := play()
	is.Equal(r1, r2)
	is.Equal(e1, e2)
}

func TestDealerAlternates(t *testing.T) {
	is := is.New(t)
	tr := &Transcript{}
	m, err := NewMatch(nil, firstLegal{}, firstLegal{}, seeded(3), WithLogger(tr), WithFirstDealer(1))
	is.NoErr(err)
	_, err = m.Play(context.Background())
	is.NoErr(err)
	for _, e := range tr.Events {
		if e.Kind == EventTurn || e.Kind == EventCrib {
			// player 1 deals odd hands
			is.Equal(e.Player, e.Hand%2)
		}
	}
}

func TestNilPolicy(t *testing.T) {
	_, err := NewMatch(nil, firstLegal{}, nil, seeded(1))
	assert.ErrorIs(t, err, ErrNilPolicy)
}

func TestIllegalSplit(t *testing.T) {
	cases := map[string]func(hand []cards.Card) ([]cards.Card, []cards.Card, error){
		"missing card": func(hand []cards.Card) ([]cards.Card, []cards.Card, error) {
			return hand[:3], hand[4:], nil
		},
		"foreign card": func(hand []cards.Card) ([]cards.Card, []cards.Card, error) {
			keep := append([]cards.Card{}, hand[:4]...)
			keep[0] = cards.Card{Rank: keep[0].Rank%13 + 1, Suit: keep[0].Suit}
			if cards.Contains(hand, keep[0]) {
				keep[0] = hand[1]
			}
			return keep, hand[4:], nil
		},
		"throws three": func(hand []cards.Card) ([]cards.Card, []cards.Card, error) {
			return hand[:3], hand[3:], nil
		},
	}
	for name, keep := range cases {
		t.Run(name, func(t *testing.T) {
			m, err := NewMatch(nil, firstLegal{}, scripted{keep: keep}, seeded(1))
			require.NoError(t, err)
			_, err = m.Play(context.Background())
			require.ErrorIs(t, err, ErrIllegalSplit)
			var perr *ProtocolError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 1, perr.Player)
			assert.Equal(t, PhaseDiscard, perr.Phase)
		})
	}
}

func TestPolicyErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	p := scripted{keep: func([]cards.Card) ([]cards.Card, []cards.Card, error) {
		return nil, nil, boom
	}}
	m, err := NewMatch(nil, p, firstLegal{}, seeded(1))
	require.NoError(t, err)
	_, err = m.Play(context.Background())
	assert.ErrorIs(t, err, boom)
	var perr *ProtocolError
	assert.False(t, errors.As(err, &perr))
}

func TestSpuriousPass(t *testing.T) {
	p := scripted{peg: func([]cards.Card) (*cards.Card, error) { return nil, nil }}
	// player 1 is the non-dealer and pegs first
	m, err := NewMatch(nil, firstLegal{}, p, seeded(1))
	require.NoError(t, err)
	_, err = m.Play(context.Background())
	require.ErrorIs(t, err, ErrSpuriousPass)
	var perr *ProtocolError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Player)
	assert.Equal(t, PhasePeg, perr.Phase)
}

func pegState(t *testing.T, hand string, played ...string) MatchState {
	t.Helper()
	r := rules.Standard()
	h := pegging.New()
	role := pegging.NonDealer
	for _, s := range played {
		c := cards.MustParse(s)
		var err error
		h, _, err = h.Play(r, &c, role)
		require.NoError(t, err)
		role = 1 - role
	}
	return MatchState{
		Phase:   PhasePeg,
		Dealer:  0,
		Hand:    1,
		Pegging: [2][]cards.Card{cards.MustParseList(hand), cards.MustParseList("AC")},
		History: h,
		OnTurn:  0,
	}
}

func TestIllegalCard(t *testing.T) {
	ks := cards.MustParse("KS")
	p := scripted{peg: func([]cards.Card) (*cards.Card, error) { return &ks, nil }}
	m, err := NewMatch(nil, p, firstLegal{}, seeded(1))
	require.NoError(t, err)

	// 10 + 10 + 10 leaves room for an ace only
	st := pegState(t, "KS AH", "10S", "JH", "QD")
	_, err = m.Step(st)
	assert.ErrorIs(t, err, ErrIllegalCard)

	st = pegState(t, "2D 3D", "5S")
	_, err = m.Step(st)
	assert.ErrorIs(t, err, ErrCardNotInHand)
}

func TestPegStepScores(t *testing.T) {
	is := is.New(t)
	m, err := NewMatch(nil, firstLegal{}, firstLegal{}, seeded(1))
	is.NoErr(err)

	// the dealer makes 15 with a king
	st := pegState(t, "KS 2H", "5S")
	st, err = m.Step(st)
	is.NoErr(err)
	is.Equal(st.Scores, [2]int{2, 0})
	is.Equal(st.Pegging[0], cards.MustParseList("2H"))
	is.Equal(st.OnTurn, 1)
	is.Equal(st.History.Total(), 15)

	// a go scores for the other player
	st = pegState(t, "5H", "10S", "JH", "QD")
	st, err = m.Step(st)
	is.NoErr(err)
	is.Equal(st.Scores, [2]int{0, 1})
	is.True(st.History.HasPassed(pegging.Dealer))
}

func TestHisHeels(t *testing.T) {
	is := is.New(t)
	m, err := NewMatch(nil, firstLegal{}, firstLegal{}, seeded(1))
	is.NoErr(err)
	st := MatchState{
		Phase:  PhaseDiscard,
		Dealer: 1,
		Hand:   1,
		Dealt: [2][]cards.Card{
			cards.MustParseList("AS 2S 3S 4S 5S 6S"),
			cards.MustParseList("AH 2H 3H 4H 5H 6H"),
		},
		Turn: cards.MustParse("JD"),
	}
	st, err = m.Step(st)
	is.NoErr(err)
	is.Equal(st.Scores, [2]int{0, 2})
	is.Equal(st.Phase, PhasePeg)
	is.Equal(st.OnTurn, 0)
	is.Equal(st.crib(), cards.MustParseList("5H 6H 5S 6S"))
}

func TestScoringSkippedOnceWon(t *testing.T) {
	is := is.New(t)
	m, err := NewMatch(nil, firstLegal{}, firstLegal{}, seeded(1))
	is.NoErr(err)
	for _, ph := range []Phase{PhaseScoreNonDealer, PhaseScoreDealer, PhaseScoreCrib, PhasePeg} {
		st := MatchState{
			Phase:  ph,
			Scores: [2]int{121, 80},
			Keep:   [2][]cards.Card{cards.MustParseList("5S 5H 5D JC"), cards.MustParseList("5C 10S 10H 10D")},
			Throw:  [2][]cards.Card{cards.MustParseList("2S 3S"), cards.MustParseList("2H 3H")},
			Turn:   cards.MustParse("JS"),
		}
		st, err = m.Step(st)
		is.NoErr(err)
		is.Equal(st.Phase, PhaseGameOver)
		is.Equal(st.Scores, [2]int{121, 80})
	}
}

func TestScoringPhases(t *testing.T) {
	is := is.New(t)
	m, err := NewMatch(nil, firstLegal{}, firstLegal{}, seeded(1))
	is.NoErr(err)
	st := MatchState{
		Phase:  PhaseScoreNonDealer,
		Dealer: 0,
		Keep:   [2][]cards.Card{cards.MustParseList("5S 5H 5D JC"), cards.MustParseList("2C 4S 6H 8D")},
		Throw:  [2][]cards.Card{cards.MustParseList("AD 3D"), cards.MustParseList("7D 9C")},
		Turn:   cards.MustParse("KH"),
	}
	st, err = m.Step(st)
	is.NoErr(err)
	is.Equal(st.Phase, PhaseScoreDealer)
	is.Equal(st.Scores[1], 0) // all even values, no fifteens
	st, err = m.Step(st)
	is.NoErr(err)
	is.Equal(st.Phase, PhaseScoreCrib)
	is.Equal(st.Scores[1], 0)
	is.Equal(st.Scores[0], 20) // 555J with a king turned
	st, err = m.Step(st)
	is.NoErr(err)
	is.Equal(st.Phase, PhaseRotateDealer)
	st, err = m.Step(st)
	is.NoErr(err)
	is.Equal(st.Phase, PhaseDeal)
	is.Equal(st.Dealer, 1)
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m, err := NewMatch(nil, firstLegal{}, firstLegal{}, seeded(1))
	require.NoError(t, err)
	_, err = m.Play(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMultiLogger(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	tr := &Transcript{}
	zl := ZerologLogger{Logger: zerolog.New(&buf).Level(zerolog.DebugLevel)}
	m, err := NewMatch(nil, firstLegal{}, firstLegal{}, seeded(5), WithLogger(MultiLogger{tr, zl}))
	is.NoErr(err)
	_, err = m.Play(context.Background())
	is.NoErr(err)
	lines := bytes.Count(buf.Bytes(), []byte("\n"))
	is.Equal(lines, len(tr.Events))
	is.True(bytes.Contains(buf.Bytes(), []byte(`"kind":"gameover"`)))
}
