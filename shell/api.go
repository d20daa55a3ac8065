package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/domino14/cribbage/automatic"
	"github.com/domino14/cribbage/cards"
	"github.com/domino14/cribbage/config"
	"github.com/domino14/cribbage/game"
	"github.com/domino14/cribbage/pegging"
	"github.com/domino14/cribbage/scoring"
)

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (c *shellcmd) optBool(key string) bool {
	return strings.ToLower(c.options[key]) == "true"
}

func (c *shellcmd) optInt(key string, defaultI int) (int, error) {
	v, ok := c.options[key]
	if !ok {
		return defaultI, nil
	}
	return strconv.Atoi(v)
}

func (c *shellcmd) cardArgs() ([]cards.Card, error) {
	return cards.ParseList(strings.Join(c.args, " "))
}

func (sc *ShellController) score(cmd *shellcmd) (*Response, error) {
	hand, err := cmd.cardArgs()
	if err != nil {
		return nil, err
	}
	if len(hand) == 0 {
		return nil, errors.New("usage: score <cards> [-turn <card>] [-crib true]")
	}
	var turn *cards.Card
	if t, ok := cmd.options["turn"]; ok {
		c, err := cards.Parse(t)
		if err != nil {
			return nil, err
		}
		if cards.Contains(hand, c) {
			return nil, errors.New("turn card is already in the hand")
		}
		turn = &c
	}
	b := scoring.Score(sc.rules, hand, turn, cmd.optBool("crib"))
	return msg(b.String()), nil
}

func (sc *ShellController) greedy(cmd *shellcmd) (*Response, error) {
	deal, err := cmd.cardArgs()
	if err != nil {
		return nil, err
	}
	sign := -1
	if cmd.optBool("dealer") {
		sign = 1
	}
	split, err := scoring.GreedyThrow(sc.rules, deal, sign, sc.rng)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("keep %s  throw %s  net %d",
		cards.String(split.Keep), cards.String(split.Throw), split.Net)), nil
}

// peg replays a pegging sequence and shows what each card in -hand would
// score for the player to act. Plays alternate starting with the
// non-dealer; "go" is a pass.
func (sc *ShellController) peg(cmd *shellcmd) (*Response, error) {
	h := pegging.New()
	player := pegging.NonDealer
	for _, a := range cmd.args {
		var card *cards.Card
		if strings.ToLower(a) != "go" {
			c, err := cards.Parse(a)
			if err != nil {
				return nil, err
			}
			card = &c
		}
		next, score, err := h.Play(sc.rules, card, player)
		if err != nil {
			return nil, fmt.Errorf("playing %v: %w", a, err)
		}
		log.Debug().Str("play", a).Int("player", player).Int("score", score).Msg("replayed")
		h = next
		player = 1 - player
	}

	var sb strings.Builder
	role := "non-dealer"
	if player == pegging.Dealer {
		role = "dealer"
	}
	fmt.Fprintf(&sb, "%s to play: %s\n", role, h.String())
	handStr, ok := cmd.options["hand"]
	if !ok {
		return msg(strings.TrimRight(sb.String(), "\n")), nil
	}
	hand, err := cards.ParseList(handStr)
	if err != nil {
		return nil, err
	}
	for _, c := range hand {
		score, ok := h.Score(sc.rules, &c, player)
		if !ok {
			fmt.Fprintf(&sb, "  %-4s illegal\n", c)
			continue
		}
		fmt.Fprintf(&sb, "  %-4s %d\n", c, score)
	}
	if !h.HasLegalPlay(sc.rules, hand, player) {
		score, _ := h.Score(sc.rules, nil, player)
		fmt.Fprintf(&sb, "  go   %d\n", score)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) policyNames(cmd *shellcmd) (string, string) {
	p0 := sc.config.GetString(config.ConfigPolicy0)
	p1 := sc.config.GetString(config.ConfigPolicy1)
	if len(cmd.args) > 0 {
		p0 = cmd.args[0]
	}
	if len(cmd.args) > 1 {
		p1 = cmd.args[1]
	}
	return p0, p1
}

func (sc *ShellController) match(cmd *shellcmd) (*Response, error) {
	p0, p1 := sc.policyNames(cmd)
	runner, err := automatic.NewGameRunner(sc.rules, p0, p1)
	if err != nil {
		return nil, err
	}
	var seed automatic.Seed
	if s, ok := cmd.options["seed"]; ok {
		seed, err = automatic.ParseSeed(s)
		if err != nil {
			return nil, err
		}
	} else {
		seed = automatic.GenerateSeeds(1)[0]
	}
	tr := &game.Transcript{}
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		runner.SetLogger(game.MultiLogger{tr, game.ZerologLogger{Logger: log.Logger}})
	} else {
		runner.SetLogger(tr)
	}
	rec, err := runner.PlayMatch(context.Background(), 0, seed)
	if err != nil {
		return nil, err
	}
	sc.lastTranscript = tr

	return msg(fmt.Sprintf("%s %d - %s %d after %d hands (value %+d)\nseed %s\nuse `transcript` to replay it",
		p0, rec.Scores[0], p1, rec.Scores[1], rec.Hands, rec.Value, automatic.FormatSeed(seed))), nil
}

func (sc *ShellController) transcript(cmd *shellcmd) (*Response, error) {
	if sc.lastTranscript == nil {
		return nil, errors.New("play a match first with the `match` command")
	}
	events := sc.lastTranscript.Events
	if len(cmd.args) > 0 {
		hand, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		events = lo.Filter(events, func(e game.Event, _ int) bool {
			return e.Hand == hand
		})
	}
	out, err := yaml.Marshal(events)
	if err != nil {
		return nil, err
	}
	return msg(strings.TrimRight(string(out), "\n")), nil
}

func (sc *ShellController) evalConfig(cmd *shellcmd) (automatic.EvalConfig, error) {
	p0, p1 := sc.policyNames(cmd)
	ec := automatic.EvalConfig{
		Rules:    sc.rules,
		Policies: [2]string{p0, p1},
		Duration: sc.config.GetDuration(config.ConfigEvalDuration),
		LogFile:  sc.config.GetString(config.ConfigEvalLogFile),
	}
	var err error
	if ec.Games, err = cmd.optInt("games", sc.config.GetInt(config.ConfigEvalGames)); err != nil {
		return ec, err
	}
	if ec.Threads, err = cmd.optInt("threads", sc.config.GetInt(config.ConfigEvalThreads)); err != nil {
		return ec, err
	}
	if t, ok := cmd.options["time"]; ok {
		if ec.Duration, err = time.ParseDuration(t); err != nil {
			return ec, err
		}
		if _, ok := cmd.options["games"]; !ok {
			ec.Games = 0
		}
	}
	if l, ok := cmd.options["log"]; ok {
		ec.LogFile = l
	}
	seedFile := sc.config.GetString(config.ConfigEvalSeedFile)
	if f, ok := cmd.options["seedfile"]; ok {
		seedFile = f
	}
	if seedFile != "" {
		if ec.Seeds, err = automatic.LoadSeeds(seedFile); err != nil {
			return ec, err
		}
	}
	master := sc.config.GetString(config.ConfigEvalSeed)
	if s, ok := cmd.options["seed"]; ok {
		master = s
	}
	if master != "" {
		if ec.MasterSeed, err = automatic.ParseSeed(master); err != nil {
			return ec, err
		}
	}
	return ec, nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	ec, err := sc.evalConfig(cmd)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(log.Logger.WithContext(context.Background()))
	sc.evalCancel = cancel
	defer func() {
		cancel()
		sc.evalCancel = nil
	}()
	sc.showMessage(fmt.Sprintf("evaluating %s against %s...", ec.Policies[0], ec.Policies[1]))
	rep, err := automatic.Evaluate(ctx, ec)
	if err != nil {
		return nil, err
	}
	if cmd.optBool("yaml") {
		out, err := yaml.Marshal(rep)
		if err != nil {
			return nil, err
		}
		return msg(strings.TrimRight(string(out), "\n")), nil
	}
	return msg(rep.String() + "\n" + outcomeHistogram(rep)), nil
}

// outcomeHistogram draws the distribution of match values.
func outcomeHistogram(rep *automatic.Report) string {
	keys := lo.Keys(rep.Outcomes)
	if len(keys) < 2 {
		return ""
	}
	slices.Sort(keys)
	data := make([]float64, 0, rep.Games)
	for _, k := range keys {
		for range rep.Outcomes[k] {
			data = append(data, float64(k))
		}
	}
	hist := histogram.Hist(keys[len(keys)-1]-keys[0]+1, data)
	var buf bytes.Buffer
	if err := histogram.Fprint(&buf, hist, histogram.Linear(40)); err != nil {
		return ""
	}
	return buf.String()
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: analyze <logfile>")
	}
	rep, err := automatic.AnalyzeLogFile(cmd.args[0])
	if err != nil {
		return nil, err
	}
	return msg(rep.String()), nil
}

func (sc *ShellController) seeds(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: seeds <count> <file>")
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil || n <= 0 {
		return nil, errors.New("count must be a positive integer")
	}
	if err := automatic.SaveSeeds(automatic.GenerateSeeds(n), cmd.args[1]); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("wrote %d seeds to %s", n, cmd.args[1])), nil
}

func (sc *ShellController) showSettings() string {
	settings := sc.config.SanitizedSettings()
	keys := lo.Keys(settings)
	slices.Sort(keys)
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	for _, k := range keys {
		fmt.Fprintf(&sb, "  %s: %v\n", k, settings[k])
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (sc *ShellController) applySetting(key, value string) error {
	old := sc.config.Get(key)
	sc.config.Set(key, value)
	if key != config.ConfigWinningScore && key != config.ConfigPeggingLimit {
		return nil
	}
	r, err := sc.config.RuleSet()
	if err != nil {
		sc.config.Set(key, old)
		return err
	}
	sc.rules = r
	return nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	switch len(cmd.args) {
	case 0:
		return msg(sc.showSettings()), nil
	case 1:
		return msg(fmt.Sprintf("%s: %v", cmd.args[0], sc.config.Get(cmd.args[0]))), nil
	}
	key, value := cmd.args[0], strings.Join(cmd.args[1:], " ")
	if err := sc.applySetting(key, value); err != nil {
		return nil, err
	}
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) setConfig(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 2 {
		return nil, errors.New("usage: setconfig <key> <value>")
	}
	key, value := cmd.args[0], strings.Join(cmd.args[1:], " ")
	if err := sc.applySetting(key, value); err != nil {
		return nil, err
	}
	if err := sc.config.Write(); err != nil {
		return nil, err
	}
	return msg("saved " + key + " = " + value), nil
}
