package scoring

import (
	"fmt"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/rules"
)

// Split is a partition of a dealt hand into the cards kept and the cards
// thrown to the crib, with the net score the greedy evaluation gave it.
type Split struct {
	Keep  []cards.Card
	Throw []cards.Card
	Net   int
}

// SplitAt partitions deal into kept and thrown cards; throwIdx holds the
// indices of the thrown cards.
func SplitAt(deal []cards.Card, throwIdx []int) (keep, throw []cards.Card) {
	keep = make([]cards.Card, 0, len(deal)-len(throwIdx))
	throw = make([]cards.Card, 0, len(throwIdx))
	for i, c := range deal {
		thrown := false
		for _, t := range throwIdx {
			if t == i {
				thrown = true
				break
			}
		}
		if thrown {
			throw = append(throw, c)
		} else {
			keep = append(keep, c)
		}
	}
	return keep, throw
}

// GreedyThrow picks the split of deal that maximizes the score of the kept
// cards plus cribSign times the score of the thrown cards, both scored in
// isolation without a turn card. cribSign is 1 when the crib is ours and -1
// otherwise. Ties are broken uniformly at random with rng; a nil rng picks
// the first maximal split in ThrowIndices order.
func GreedyThrow(r *rules.RuleSet, deal []cards.Card, cribSign int, rng cards.RNG) (Split, error) {
	if len(deal) != r.HandSize() {
		return Split{}, fmt.Errorf("greedy throw needs %d cards, got %d", r.HandSize(), len(deal))
	}
	var best []Split
	for _, idx := range r.ThrowIndices() {
		keep, throw := SplitAt(deal, idx)
		net := Score(r, keep, nil, false).Total + cribSign*Score(r, throw, nil, true).Total
		switch {
		case len(best) == 0 || net > best[0].Net:
			best = append(best[:0], Split{Keep: keep, Throw: throw, Net: net})
		case net == best[0].Net:
			best = append(best, Split{Keep: keep, Throw: throw, Net: net})
		}
	}
	if rng == nil || len(best) == 1 {
		return best[0], nil
	}
	return best[rng.Intn(len(best))], nil
}

// IsLegalSplit returns whether keep and throw together are exactly the cards
// of hand, counting duplicates.
func IsLegalSplit(hand, keep, throw []cards.Card) bool {
	if len(keep)+len(throw) != len(hand) {
		return false
	}
	remaining := make(map[cards.Card]int, len(hand))
	for _, c := range hand {
		remaining[c]++
	}
	for _, part := range [][]cards.Card{keep, throw} {
		for _, c := range part {
			if remaining[c] == 0 {
				return false
			}
			remaining[c]--
		}
	}
	return true
}
