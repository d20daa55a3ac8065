package player

import (
	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/pegging"
	"github.com/domino14/cribbage/rules"
	"github.com/domino14/cribbage/scoring"
)

// GreedyThrower keeps the split with the best net score, counting the
// thrown cards for itself when it deals and against itself otherwise. It
// ignores the turn card and the opponent's throw.
type GreedyThrower struct {
	rules *rules.RuleSet
	rng   cards.RNG
}

func NewGreedyThrower(r *rules.RuleSet, rng cards.RNG) *GreedyThrower {
	return &GreedyThrower{rules: r, rng: rng}
}

func (t *GreedyThrower) Keep(hand []cards.Card, scores [2]int, amDealer bool) ([]cards.Card, []cards.Card, error) {
	sign := -1
	if amDealer {
		sign = 1
	}
	split, err := scoring.GreedyThrow(t.rules, hand, sign, t.rng)
	if err != nil {
		return nil, nil, err
	}
	return split.Keep, split.Throw, nil
}

// GreedyPegger plays the legal card that scores the most right now. Ties
// are broken at random.
type GreedyPegger struct {
	rules *rules.RuleSet
	rng   cards.RNG
}

func NewGreedyPegger(r *rules.RuleSet, rng cards.RNG) *GreedyPegger {
	return &GreedyPegger{rules: r, rng: rng}
}

func (p *GreedyPegger) Peg(hand []cards.Card, h pegging.History, scores [2]int, amDealer bool) (*cards.Card, error) {
	role := pegging.Role(amDealer)
	var best []cards.Card
	bestScore := 0
	for _, c := range hand {
		score, ok := h.Score(p.rules, &c, role)
		if !ok {
			continue
		}
		switch {
		case len(best) == 0 || score > bestScore:
			best = append(best[:0], c)
			bestScore = score
		case score == bestScore:
			best = append(best, c)
		}
	}
	if len(best) == 0 {
		return nil, nil
	}
	c := best[0]
	if p.rng != nil && len(best) > 1 {
		c = best[p.rng.Intn(len(best))]
	}
	return &c, nil
}
