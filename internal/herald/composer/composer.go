// Package composer renders block summaries into size-bounded herald messages.
package composer

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/ecash"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/format"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

const (
	// DefaultMaxMessageLength is the Telegram message limit.
	DefaultMaxMessageLength = 4096
	// DefaultMaxMessages caps the messages one block may produce.
	DefaultMaxMessages = 3
	// MinMessageLength keeps room for the header and continuation notices.
	MinMessageLength = 64

	priceUnavailable = "💹 Price data unavailable"
)

// Options configures rendering.
type Options struct {
	MaxMessageLength int
	// MaxMessages bounds how many messages plain transfers may spread over. Zero means no bound.
	// Fixed sections are never cut, so when they alone fill MaxMessages the "...and N more"
	// notice goes into one extra message.
	MaxMessages int
	// PriceTickers lists the tickers shown in the price section, in order.
	PriceTickers []string
}

// Composer renders BlockSummary values. It holds no mutable state.
type Composer struct {
	opts Options
}

// New creates a Composer, filling zero options with defaults.
func New(opts Options) *Composer {
	if opts.MaxMessageLength <= 0 {
		opts.MaxMessageLength = DefaultMaxMessageLength
	}
	if opts.MaxMessageLength < MinMessageLength {
		opts.MaxMessageLength = MinMessageLength
	}
	if len(opts.PriceTickers) == 0 {
		opts.PriceTickers = []string{format.BaseTicker}
	}
	return &Composer{opts: opts}
}

// Compose renders summary into one or more messages. metas and prices are read-only
// snapshots; a nil prices snapshot renders amounts in XEC.
func (c *Composer) Compose(summary model.BlockSummary, metas model.TokenMetas, prices *model.PriceSnapshot) []string {
	r := renderer{metas: metas, prices: prices}
	p := newPaginator(c.opts.MaxMessageLength, c.opts.MaxMessages)

	p.Fixed(r.header(summary))
	p.Fixed(halvingLine(summary.HalvingCountdown))
	if summary.Staker != nil {
		p.Fixed(r.stakerLine(*summary.Staker))
	}
	for _, line := range r.priceLines(c.opts.PriceTickers) {
		p.Fixed(line)
	}
	for _, tx := range summary.Genesis {
		p.Fixed(r.genesisLine(tx))
	}
	for _, line := range r.rewardLines(summary) {
		p.Fixed(line)
	}
	for _, activity := range summary.TokenActivity {
		for _, line := range r.tokenLines(activity) {
			p.Fixed(line)
		}
	}
	for _, tx := range summary.AppTxs {
		p.Fixed(r.appLine(tx))
	}
	if len(summary.Transfers) > 0 {
		p.Fixed(transfersHeader(len(summary.Transfers)))
		p.Elastic(r.transferLines(summary.Transfers))
	}
	return p.Messages()
}

type renderer struct {
	metas  model.TokenMetas
	prices *model.PriceSnapshot
}

func (r renderer) header(s model.BlockSummary) string {
	return fmt.Sprintf("📦 %d | %s | %s | %s", s.Height, format.Identity(s.Hash), plural(s.TxCount, "tx", "txs"), s.Miner)
}

func halvingLine(countdown uint64) string {
	return fmt.Sprintf("⏰ %s until eCash halving", plural(int(countdown), "block", "blocks"))
}

func (r renderer) stakerLine(staker model.Staker) string {
	return fmt.Sprintf("💰 %s to %s", format.Value(staker.Sats, r.prices), format.Identity(ecash.ScriptIdentity(staker.Script)))
}

func (r renderer) priceLines(tickers []string) []string {
	if !r.prices.Available() {
		return []string{priceUnavailable}
	}
	lines := make([]string, 0, len(tickers))
	for _, ticker := range tickers {
		if price, ok := r.prices.Price(ticker); ok {
			lines = append(lines, fmt.Sprintf("💹 1 %s = %s", ticker, format.Price(price, r.prices.Fiat)))
		}
	}
	if len(lines) == 0 {
		return []string{priceUnavailable}
	}
	return lines
}

func (r renderer) tokenLabel(tokenID string) (model.TokenMeta, bool, string) {
	meta, ok := r.metas.Lookup(tokenID)
	switch {
	case !ok:
		return meta, false, format.Identity(tokenID)
	case meta.Name != "" && meta.Ticker != "":
		return meta, true, fmt.Sprintf("%s (%s)", meta.Name, meta.Ticker)
	case meta.Ticker != "":
		return meta, true, meta.Ticker
	default:
		return meta, true, format.Identity(tokenID)
	}
}

func (r renderer) genesisLine(tx model.ParsedTx) string {
	_, _, label := r.tokenLabel(tx.GenesisInfo.TokenID)
	return "🧪 " + label + " created"
}

func (r renderer) rewardLines(s model.BlockSummary) []string {
	var lines []string
	if rewards := s.CashtabXecRewards; rewards.Count > 0 {
		lines = append(lines, fmt.Sprintf("🎁 %s received %s", plural(rewards.Count, "new Cashtab user", "new Cashtab users"), format.Value(rewards.Sats, r.prices)))
	}
	for _, rollup := range s.CashtabTokenRewards {
		meta, known, label := r.tokenLabel(rollup.TokenID)
		lines = append(lines, fmt.Sprintf("🎁 %s received %s %s", plural(rollup.Count, "new Cashtab user", "new Cashtab users"), format.Atoms(rollup.Atoms, meta, known), label))
	}
	return lines
}

func (r renderer) tokenLines(activity model.TokenActivity) []string {
	meta, known, label := r.tokenLabel(activity.TokenID)
	var lines []string
	if activity.SendTxs > 0 {
		lines = append(lines, fmt.Sprintf("🎟 %s: %s sent in %s", label, format.Atoms(activity.SentAtoms, meta, known), plural(activity.SendTxs, "tx", "txs")))
	}
	if activity.BurnTxs > 0 {
		lines = append(lines, fmt.Sprintf("🔥 %s: %s burned in %s", label, format.Atoms(activity.BurnedAtoms, meta, known), plural(activity.BurnTxs, "tx", "txs")))
	}
	return lines
}

var protocolEmoji = map[model.Protocol]string{
	model.ProtocolCashFusion:       "⚛️",
	model.ProtocolSWaP:             "🤳",
	model.ProtocolAlias:            "👾",
	model.ProtocolCashtabMsg:       "✏️",
	model.ProtocolCashtabEncrypted: "🔏",
	model.ProtocolAirdrop:          "🪂",
	model.ProtocolMemo:             "🗞",
	model.ProtocolPayButton:        "🛒",
	model.ProtocolECashChat:        "💬",
	model.ProtocolEVMBridge:        "🌉",
}

func (r renderer) appLine(tx model.ParsedTx) string {
	info := tx.OpReturnInfo
	emoji, ok := protocolEmoji[info.Protocol]
	if !ok {
		emoji = "❓"
	}
	msg := info.Message
	if info.Protocol == model.ProtocolAirdrop {
		_, _, label := r.tokenLabel(info.TokenID)
		airdrop := format.Value(tx.TotalSatsSent, r.prices) + " to " + label + " holders"
		if msg != "" {
			msg = airdrop + ": " + msg
		} else {
			msg = airdrop
		}
	}
	if msg == "" {
		return fmt.Sprintf("%s %s", emoji, info.Protocol)
	}
	return fmt.Sprintf("%s %s: %s", emoji, info.Protocol, msg)
}

func transfersHeader(n int) string {
	return "💸 " + plural(n, "eCash tx", "eCash txs")
}

// transferLines renders plain transfers by descending fee. Equal fees keep block order.
func (r renderer) transferLines(txs []model.ParsedTx) []string {
	sorted := append([]model.ParsedTx(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fee > sorted[j].Fee
	})
	lines := make([]string, 0, len(sorted))
	for _, tx := range sorted {
		lines = append(lines, fmt.Sprintf("💸 %s for %s", format.Value(tx.TotalSatsSent, r.prices), format.Value(tx.Fee, r.prices)))
	}
	return lines
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
