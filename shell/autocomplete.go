package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/cribbage/ai/player"
	"github.com/domino14/cribbage/config"
)

// ShellCompleter completes command names, options and the values some
// options take.
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var settingKeys = []string{
	config.ConfigDebug, config.ConfigWinningScore, config.ConfigPeggingLimit,
	config.ConfigEvalGames, config.ConfigEvalThreads, config.ConfigEvalDuration,
	config.ConfigEvalSeedFile, config.ConfigEvalLogFile, config.ConfigEvalSeed,
	config.ConfigPolicy0, config.ConfigPolicy1,
}

var commandMetadata = map[string]CommandMetadata{
	"score":  {Options: []string{"-turn", "-crib"}},
	"greedy": {Options: []string{"-dealer"}},
	"peg":    {Options: []string{"-hand"}, Args: []string{"go"}},
	"match":  {Options: []string{"-seed"}},
	"eval": {
		Options: []string{"-games", "-threads", "-time", "-seed", "-seedfile", "-log", "-yaml"},
	},
	"help": {
		Args: []string{"score", "greedy", "peg", "match", "transcript", "eval",
			"analyze", "seeds", "set"},
	},
	"set":       {Args: settingKeys},
	"setconfig": {Args: settingKeys},
}

var commandNames = []string{
	"help", "score", "greedy", "peg", "match", "transcript", "eval",
	"autoplay", "analyze", "seeds", "set", "setconfig", "exit",
}

var boolValues = []string{"true", "false"}

// policyCommands take policy names as their leading arguments.
var policyCommands = map[string]bool{"match": true, "eval": true, "autoplay": true}

// Do implements readline.AutoCompleter.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if cmdName == "autoplay" {
			cmdName = "eval"
		}
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastComplete string
		if endsWithSpace {
			lastComplete = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastComplete = fields[len(fields)-2]
		}

		switch {
		case strings.HasPrefix(lastComplete, "-") && !isNumber(lastComplete):
			// an option value
			switch lastComplete[1:] {
			case "crib", "dealer", "yaml":
				completions = boolValues
			}
		case policyCommands[fields[0]] && !strings.HasPrefix(prefix, "-"):
			completions = player.Names()
		default:
			if md, ok := commandMetadata[cmdName]; ok {
				if strings.HasPrefix(prefix, "-") || len(md.Args) == 0 {
					completions = md.Options
				} else {
					completions = md.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
