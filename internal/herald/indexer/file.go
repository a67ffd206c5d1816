package indexer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// LoadBlockFile reads a block in the indexer's JSON shape.
func LoadBlockFile(path string) (*model.Block, error) {
	var block model.Block
	if err := readJSON(path, &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// LoadTokenFile reads a token metadata snapshot: an object keyed by token id.
func LoadTokenFile(path string) (model.TokenMetas, error) {
	metas := model.TokenMetas{}
	if err := readJSON(path, &metas); err != nil {
		return nil, err
	}
	for id, meta := range metas {
		if meta.TokenID == "" {
			meta.TokenID = id
			metas[id] = meta
		}
	}
	return metas, nil
}

// LoadPriceFile reads a price snapshot.
func LoadPriceFile(path string) (*model.PriceSnapshot, error) {
	var prices model.PriceSnapshot
	if err := readJSON(path, &prices); err != nil {
		return nil, err
	}
	return &prices, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
