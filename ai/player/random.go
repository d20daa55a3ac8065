package player

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/pegging"
	"github.com/domino14/cribbage/rules"
)

// RandomThrower keeps a uniformly random subset of the hand.
type RandomThrower struct {
	rules *rules.RuleSet
	rng   cards.RNG
}

func NewRandomThrower(r *rules.RuleSet, rng cards.RNG) *RandomThrower {
	return &RandomThrower{rules: r, rng: rng}
}

func (t *RandomThrower) Keep(hand []cards.Card, scores [2]int, amDealer bool) ([]cards.Card, []cards.Card, error) {
	shuffled := slices.Clone(hand)
	t.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	k := min(t.rules.KeepCards(), len(shuffled))
	return shuffled[:k], shuffled[k:], nil
}

// RandomPegger plays a uniformly random legal card.
type RandomPegger struct {
	rules *rules.RuleSet
	rng   cards.RNG
}

func NewRandomPegger(r *rules.RuleSet, rng cards.RNG) *RandomPegger {
	return &RandomPegger{rules: r, rng: rng}
}

func (p *RandomPegger) Peg(hand []cards.Card, h pegging.History, scores [2]int, amDealer bool) (*cards.Card, error) {
	role := pegging.Role(amDealer)
	legal := lo.Filter(hand, func(c cards.Card, _ int) bool {
		_, ok := h.Score(p.rules, &c, role)
		return ok
	})
	if len(legal) == 0 {
		return nil, nil
	}
	c := legal[p.rng.Intn(len(legal))]
	return &c, nil
}
