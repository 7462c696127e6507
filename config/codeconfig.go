// Package config parses the `--code-config` DSL (spec.md §6 CLI surface):
// a flat, comma-separated `key=value` grammar, e.g. `d=5,rounds=7,p=0.001`.
//
// Grounded on lnz-BalancedGo/lib/parser.go's participle-based hypergraph
// ("ParseEdge"/"ParseGraph") grammar: the same struct-tag lexer/grammar
// style, adapted from `.hg` edge-list syntax to flat key=value pairs.
package config

import (
	"errors"
	"strconv"

	"github.com/alecthomas/participle"
)

// Sentinel errors.
var (
	ErrBadValue     = errors.New("config: code-config value could not be parsed")
	ErrDuplicateKey = errors.New("config: code-config key specified more than once")
)

type pair struct {
	Key   string `@Ident "="`
	Value string `@(Float|Int|Ident)`
}

type grammar struct {
	Pairs []pair `( @@ ","? )*`
}

var parser = participle.MustBuild(&grammar{}, participle.UseLookahead(1))

// CodeConfig is the parsed, typed form of a `--code-config` string
// (spec.md §6's `code_type`-specific parameters — this module does not
// implement any code generator itself, only the parameter DSL those
// generators would consume).
type CodeConfig struct {
	Distance int
	Rounds   int
	P        float64
	Extra    map[string]string // any key this module does not itself interpret
}

// Parse parses s into a CodeConfig. Recognized keys are "d"/"distance",
// "rounds", and "p"; anything else is kept verbatim in Extra.
func Parse(s string) (CodeConfig, error) {
	var g grammar
	if err := parser.ParseString(s, &g); err != nil {
		return CodeConfig{}, errors.Join(ErrBadValue, err)
	}

	cfg := CodeConfig{Extra: make(map[string]string)}
	seen := make(map[string]bool)
	for _, p := range g.Pairs {
		if seen[p.Key] {
			return CodeConfig{}, ErrDuplicateKey
		}
		seen[p.Key] = true

		switch p.Key {
		case "d", "distance":
			n, err := strconv.Atoi(p.Value)
			if err != nil {
				return CodeConfig{}, errors.Join(ErrBadValue, err)
			}
			cfg.Distance = n
		case "rounds":
			n, err := strconv.Atoi(p.Value)
			if err != nil {
				return CodeConfig{}, errors.Join(ErrBadValue, err)
			}
			cfg.Rounds = n
		case "p":
			f, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				return CodeConfig{}, errors.Join(ErrBadValue, err)
			}
			cfg.P = f
		default:
			cfg.Extra[p.Key] = p.Value
		}
	}
	return cfg, nil
}
