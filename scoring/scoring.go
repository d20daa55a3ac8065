// Package scoring computes the points a set of cards is worth under a
// RuleSet, for ordinary hands as well as the crib.
package scoring

import (
	"fmt"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/rules"
)

// maxFifteenSubset is the largest subset size considered when counting
// fifteens.
const maxFifteenSubset = 5

// Breakdown is a score together with its subscores.
type Breakdown struct {
	Total    int `json:"total" yaml:"total"`
	Pairs    int `json:"pairs" yaml:"pairs"`
	Fifteens int `json:"fifteens" yaml:"fifteens"`
	Runs     int `json:"runs" yaml:"runs"`
	Flushes  int `json:"flushes" yaml:"flushes"`
	Nobs     int `json:"nobs" yaml:"nobs"`
}

func (b Breakdown) String() string {
	return fmt.Sprintf("%d (pairs %d, fifteens %d, runs %d, flushes %d, nobs %d)",
		b.Total, b.Pairs, b.Fifteens, b.Runs, b.Flushes, b.Nobs)
}

// Score returns the score of the given hand with the given turn card, which
// may be nil. If isCrib is set, crib scoring rules apply: a flush among the
// hand cards alone does not count.
func Score(r *rules.RuleSet, hand []cards.Card, turn *cards.Card, isCrib bool) Breakdown {
	all := make([]cards.Card, 0, len(hand)+1)
	all = append(all, hand...)
	if turn != nil {
		all = append(all, *turn)
	}

	var rankCount [cards.NumRanks + 1]int
	var suitCount [cards.NumSuits]int
	for _, c := range all {
		rankCount[c.Rank]++
		suitCount[c.Suit]++
	}

	b := Breakdown{
		Fifteens: fifteens(r, all),
		Pairs:    pairs(r, &rankCount),
		Runs:     runs(r, &rankCount),
		Flushes:  flushes(r, hand, turn, &suitCount, isCrib),
	}
	for _, c := range hand {
		b.Nobs += r.NobValue(c, turn)
	}
	b.Total = b.Pairs + b.Fifteens + b.Runs + b.Flushes + b.Nobs
	return b
}

func fifteens(r *rules.RuleSet, all []cards.Card) int {
	count := 0
	idx := make([]int, 0, maxFifteenSubset)
	for k := 2; k <= min(maxFifteenSubset, len(all)); k++ {
		idx = idx[:k]
		gen := combin.NewCombinationGenerator(len(all), k)
		for gen.Next() {
			gen.Combination(idx)
			sum := 0
			for _, i := range idx {
				sum += r.CardValue(all[i])
			}
			if sum == 15 {
				count++
			}
		}
	}
	return count * r.FifteenValue()
}

func pairs(r *rules.RuleSet, rankCount *[cards.NumRanks + 1]int) int {
	n := 0
	for _, m := range rankCount {
		n += m * (m - 1) / 2
	}
	return n * r.PairValue()
}

// runs scores every maximal block of consecutive ranks. Duplicated ranks in
// a block multiply the number of runs it contains.
func runs(r *rules.RuleSet, rankCount *[cards.NumRanks + 1]int) int {
	total := 0
	length := 0
	combos := 1
	for rank := cards.Ace; rank <= cards.King; rank++ {
		if rankCount[rank] == 0 {
			total += r.StraightValue(length, combos)
			length = 0
			combos = 1
			continue
		}
		length++
		combos *= rankCount[rank]
	}
	return total + r.StraightValue(length, combos)
}

func flushes(r *rules.RuleSet, hand []cards.Card, turn *cards.Card,
	suitCount *[cards.NumSuits]int, isCrib bool) int {

	if len(hand) == 0 {
		return 0
	}
	suit := hand[0].Suit
	for _, c := range hand[1:] {
		if c.Suit != suit {
			return 0
		}
	}
	if turn != nil && turn.Suit == suit {
		return r.TurnFlushValue(suitCount[suit])
	}
	if isCrib {
		return 0
	}
	return r.HandFlushValue(len(hand))
}
