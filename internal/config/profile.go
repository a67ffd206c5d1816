package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/aggregator"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// MinerProfile names a mining pool.
type MinerProfile struct {
	Name         string `yaml:"name" validate:"required"`
	CoinbaseTag  string `yaml:"coinbaseTag" validate:"required_without=PayoutScript"`
	PayoutScript string `yaml:"payoutScript" validate:"omitempty,hexadecimal"`
}

// CashtabRewards lists the scripts Cashtab pays new-user rewards from.
type CashtabRewards struct {
	XECScripts   []string `yaml:"xecScripts" validate:"dive,hexadecimal"`
	TokenScripts []string `yaml:"tokenScripts" validate:"dive,hexadecimal"`
}

// Profile holds the list-shaped settings that do not fit flags.
type Profile struct {
	Miners         []MinerProfile `yaml:"miners" validate:"dive"`
	CashtabRewards CashtabRewards `yaml:"cashtabRewards"`
	Tickers        []string       `yaml:"tickers" validate:"dive,required,alphanum"`
}

// DefaultTickers are priced when the profile names none.
var DefaultTickers = []string{"XEC"}

// LoadProfile reads a YAML profile. An empty path yields the defaults.
func LoadProfile(path string) (Profile, error) {
	var p Profile
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Profile{}, fmt.Errorf("open profile: %w", err)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err = dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return Profile{}, fmt.Errorf("decode profile %s: %w", path, err)
		}
	}
	p.applyDefaults()
	return p, nil
}

func (p *Profile) applyDefaults() {
	if len(p.Tickers) == 0 {
		p.Tickers = append([]string(nil), DefaultTickers...)
	}
	for i := range p.Tickers {
		p.Tickers[i] = strings.ToUpper(p.Tickers[i])
	}
	for i := range p.Miners {
		p.Miners[i].PayoutScript = strings.ToLower(p.Miners[i].PayoutScript)
	}
	lower(p.CashtabRewards.XECScripts)
	lower(p.CashtabRewards.TokenScripts)
}

func lower(scripts []string) {
	for i := range scripts {
		scripts[i] = strings.ToLower(scripts[i])
	}
}

// AggregatorOptions converts the profile into block-level actor recognition options.
func (p Profile) AggregatorOptions() aggregator.Options {
	opts := aggregator.Options{
		Miners:                    make([]aggregator.Miner, 0, len(p.Miners)),
		CashtabXecRewardScripts:   scripts(p.CashtabRewards.XECScripts),
		CashtabTokenRewardScripts: scripts(p.CashtabRewards.TokenScripts),
	}
	for _, m := range p.Miners {
		opts.Miners = append(opts.Miners, aggregator.Miner{
			Name:         m.Name,
			CoinbaseTag:  m.CoinbaseTag,
			PayoutScript: model.Script(m.PayoutScript),
		})
	}
	return opts
}

func scripts(hexes []string) []model.Script {
	out := make([]model.Script, 0, len(hexes))
	for _, h := range hexes {
		out = append(out, model.Script(h))
	}
	return out
}
