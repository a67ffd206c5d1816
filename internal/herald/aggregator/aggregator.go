// Package aggregator folds classified transactions into a block summary.
package aggregator

import (
	mapset "github.com/deckarep/golang-set/v2"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

// HalvingInterval is the number of blocks between eCash subsidy halvings.
const HalvingInterval = 210_000

// Aggregator groups parsed transactions into the buckets the composer renders.
type Aggregator struct {
	miners           []Miner
	xecRewardSenders mapset.Set[model.Script]
	tokenRewardSends mapset.Set[model.Script]
}

// Options configures block-level recognition of well known actors.
type Options struct {
	Miners []Miner
	// CashtabXecRewardScripts fund XEC rewards to new Cashtab users.
	CashtabXecRewardScripts []model.Script
	// CashtabTokenRewardScripts fund token rewards to new Cashtab users.
	CashtabTokenRewardScripts []model.Script
}

// New creates an Aggregator.
func New(opts Options) *Aggregator {
	return &Aggregator{
		miners:           opts.Miners,
		xecRewardSenders: mapset.NewThreadUnsafeSet(opts.CashtabXecRewardScripts...),
		tokenRewardSends: mapset.NewThreadUnsafeSet(opts.CashtabTokenRewardScripts...),
	}
}

// Aggregate folds txs, in block order, into a BlockSummary.
func (a *Aggregator) Aggregate(header model.BlockHeader, txs []model.ParsedTx) model.BlockSummary {
	summary := model.BlockSummary{
		Height:            header.Height,
		Hash:              header.Hash,
		Timestamp:         header.Timestamp,
		Miner:             header.Miner,
		Staker:            header.Staker,
		TxCount:           len(txs),
		ParsedTxs:         txs,
		TokenIDs:          mapset.NewThreadUnsafeSet[string](),
		OutputScripts:     mapset.NewThreadUnsafeSet[model.Script](),
		NextHalvingHeight: NextHalvingHeight(header.Height),
	}
	summary.HalvingCountdown = summary.NextHalvingHeight - header.Height

	for _, tx := range txs {
		summary = a.accumulate(summary, tx)
	}
	if summary.Miner == "" {
		summary.Miner = a.identifyMiner(txs)
	}
	return summary
}

// NextHalvingHeight returns the first halving height above height.
func NextHalvingHeight(height uint64) uint64 {
	return (height/HalvingInterval + 1) * HalvingInterval
}

func (a *Aggregator) accumulate(summary model.BlockSummary, tx model.ParsedTx) model.BlockSummary {
	collectTouched(&summary, tx)

	if tx.IsCoinbase {
		summary.CoinbaseSats += tx.XecReceivingOutputs.Total()
		return summary
	}
	summary.TotalFees += tx.Fee

	if tx.GenesisInfo != nil {
		summary.Genesis = append(summary.Genesis, tx)
	}
	if tx.TokenBurnInfo != nil {
		summary.Burns = append(summary.Burns, tx)
		activity := tokenActivity(&summary, tx.TokenBurnInfo.TokenID)
		activity.BurnTxs++
		activity.BurnedAtoms += tx.TokenBurnInfo.ActualBurnAtoms
	}

	if sender, ok := soleSender(tx); ok {
		switch {
		case tx.TokenSendInfo != nil && a.tokenRewardSends.Contains(sender):
			summary.CashtabTokenRewards = addTokenReward(summary.CashtabTokenRewards, *tx.TokenSendInfo)
			return summary
		case !tx.HasTokenActivity() && tx.OpReturnInfo == nil && a.xecRewardSenders.Contains(sender):
			summary.CashtabXecRewards.Count++
			summary.CashtabXecRewards.Sats += tx.TotalSatsSent
			return summary
		}
	}

	if tx.TokenSendInfo != nil {
		summary.TokenSends = append(summary.TokenSends, tx)
		activity := tokenActivity(&summary, tx.TokenSendInfo.TokenID)
		activity.SendTxs++
		activity.SentAtoms += tx.TokenSendInfo.TokenReceivingOutputs.Total()
	}

	switch {
	case isAppTx(tx):
		summary.AppTxs = append(summary.AppTxs, tx)
	case !tx.HasTokenActivity() && tx.OpReturnInfo == nil:
		summary.Transfers = append(summary.Transfers, tx)
	}
	return summary
}

// isAppTx reports whether tx carries a non-token application payload. An unknown
// payload on a token tx is token data the registry could not render.
func isAppTx(tx model.ParsedTx) bool {
	info := tx.OpReturnInfo
	if info == nil || info.Protocol.IsToken() {
		return false
	}
	return info.Protocol != model.ProtocolUnknown || !tx.HasTokenActivity()
}

func collectTouched(summary *model.BlockSummary, tx model.ParsedTx) {
	for _, s := range tx.XecSendingOutputScripts {
		summary.OutputScripts.Add(s)
	}
	for _, alloc := range tx.XecReceivingOutputs {
		if !alloc.Script.IsOpReturn() {
			summary.OutputScripts.Add(alloc.Script)
		}
	}
	if tx.GenesisInfo != nil {
		summary.TokenIDs.Add(tx.GenesisInfo.TokenID)
	}
	if tx.TokenSendInfo != nil {
		summary.TokenIDs.Add(tx.TokenSendInfo.TokenID)
	}
	if tx.TokenBurnInfo != nil {
		summary.TokenIDs.Add(tx.TokenBurnInfo.TokenID)
	}
	if tx.OpReturnInfo != nil && tx.OpReturnInfo.TokenID != "" {
		summary.TokenIDs.Add(tx.OpReturnInfo.TokenID)
	}
}

func soleSender(tx model.ParsedTx) (model.Script, bool) {
	if len(tx.XecSendingOutputScripts) != 1 {
		return "", false
	}
	return tx.XecSendingOutputScripts[0], true
}

// tokenActivity returns the activity entry of tokenID, appending one on first sight.
func tokenActivity(summary *model.BlockSummary, tokenID string) *model.TokenActivity {
	for i := range summary.TokenActivity {
		if summary.TokenActivity[i].TokenID == tokenID {
			return &summary.TokenActivity[i]
		}
	}
	summary.TokenActivity = append(summary.TokenActivity, model.TokenActivity{TokenID: tokenID})
	return &summary.TokenActivity[len(summary.TokenActivity)-1]
}

func addTokenReward(rollups []model.TokenRewardRollup, send model.TokenSendInfo) []model.TokenRewardRollup {
	for i := range rollups {
		if rollups[i].TokenID == send.TokenID {
			rollups[i].Count++
			rollups[i].Atoms += send.TokenReceivingOutputs.Total()
			return rollups
		}
	}
	return append(rollups, model.TokenRewardRollup{
		TokenID: send.TokenID,
		Count:   1,
		Atoms:   send.TokenReceivingOutputs.Total(),
	})
}
