package model

import mapset "github.com/deckarep/golang-set/v2"

// TokenActivity aggregates token sends and burns of one token across a block.
type TokenActivity struct {
	TokenID     string
	SendTxs     int
	SentAtoms   uint64
	BurnTxs     int
	BurnedAtoms uint64
}

// RewardRollup aggregates reward payouts from one sender family.
type RewardRollup struct {
	Count int
	Sats  int64
}

// TokenRewardRollup aggregates token reward payouts of one token.
type TokenRewardRollup struct {
	TokenID string
	Count   int
	Atoms   uint64
}

// BlockSummary is the aggregated view of a block the composer renders.
type BlockSummary struct {
	Height    uint64
	Hash      string
	Timestamp int64
	Miner     string
	Staker    *Staker
	TxCount   int

	ParsedTxs     []ParsedTx
	TokenIDs      mapset.Set[string]
	OutputScripts mapset.Set[Script]

	Genesis       []ParsedTx
	Burns         []ParsedTx
	TokenSends    []ParsedTx
	AppTxs        []ParsedTx
	Transfers     []ParsedTx
	TokenActivity []TokenActivity

	CashtabXecRewards   RewardRollup
	CashtabTokenRewards []TokenRewardRollup

	NextHalvingHeight uint64
	HalvingCountdown  uint64
	TotalFees         int64
	CoinbaseSats      int64
}
