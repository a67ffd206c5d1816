// Command herald-replay composes the herald for a saved block and prints it.
package main

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/config"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/aggregator"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/classifier"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/composer"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/ecash"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/indexer"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

const rule = "────────────────────────────────"

type options struct {
	Block            string `long:"block" description:"block JSON file" required:"true"`
	Tokens           string `long:"tokens" description:"token metadata JSON file"`
	Prices           string `long:"prices" description:"price snapshot JSON file"`
	Profile          string `long:"profile" description:"YAML herald profile"`
	MaxMessageLength int    `long:"max-message-length" default:"4096" description:"maximum characters per message"`
	MaxMessages      int    `long:"max-messages" default:"3" description:"messages per block before transfers are summarized; 0 is unbounded"`
}

func main() {
	var opts options
	if _, err := flags.ParseArgs(&opts, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err = replay(context.Background(), opts, os.Stdout, logger); err != nil {
		logger.Fatal("replay failed", zap.String("block", opts.Block), zap.Error(err))
	}
}

func replay(ctx context.Context, opts options, w io.Writer, logger *zap.Logger) error {
	block, err := indexer.LoadBlockFile(opts.Block)
	if err != nil {
		return err
	}
	metas := model.TokenMetas{}
	if opts.Tokens != "" {
		if metas, err = indexer.LoadTokenFile(opts.Tokens); err != nil {
			return err
		}
	}
	var prices *model.PriceSnapshot
	if opts.Prices != "" {
		if prices, err = indexer.LoadPriceFile(opts.Prices); err != nil {
			return err
		}
	}
	profile, err := config.LoadProfile(opts.Profile)
	if err != nil {
		return err
	}

	registry, err := ecash.NewDefaultRegistry()
	if err != nil {
		return err
	}
	pipeline := herald.NewPipeline(
		classifier.New(registry),
		aggregator.New(profile.AggregatorOptions()),
		composer.New(composer.Options{
			MaxMessageLength: opts.MaxMessageLength,
			MaxMessages:      opts.MaxMessages,
			PriceTickers:     profile.Tickers,
		}),
		0,
		logger,
	)

	_, messages, err := pipeline.Herald(ctx, *block, metas, prices)
	if err != nil {
		return err
	}
	logger.Debug("block composed", zap.Uint64("height", block.Header.Height), zap.Int("messages", len(messages)))
	_, err = io.WriteString(w, strings.Join(messages, "\n"+rule+"\n")+"\n")
	return err
}
