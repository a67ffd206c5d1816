package model

import "time"

type HeraldStatus string

var (
	HeraldDelivered HeraldStatus = "delivered"
	HeraldRejected  HeraldStatus = "rejected"
)

// HeraldRecord is the history row written once a block has been handled.
type HeraldRecord struct {
	Height     uint64
	Hash       string
	Status     HeraldStatus
	Reason     string
	Messages   uint32
	TxCount    uint64
	Transfers  uint32
	AppTxs     uint32
	TokenIDs   uint32
	TotalFees  int64
	BlockTime  time.Time
	HeraldedAt time.Time
}

// NewHeraldRecord fills the per-block stats from a summary.
func NewHeraldRecord(summary BlockSummary, messages int, heraldedAt time.Time) HeraldRecord {
	rec := HeraldRecord{
		Height:     summary.Height,
		Hash:       summary.Hash,
		Status:     HeraldDelivered,
		Messages:   uint32(messages),
		TxCount:    uint64(summary.TxCount),
		Transfers:  uint32(len(summary.Transfers)),
		AppTxs:     uint32(len(summary.AppTxs)),
		TotalFees:  summary.TotalFees,
		BlockTime:  time.Unix(summary.Timestamp, 0).UTC(),
		HeraldedAt: heraldedAt.UTC(),
	}
	if summary.TokenIDs != nil {
		rec.TokenIDs = uint32(summary.TokenIDs.Cardinality())
	}
	return rec
}

// NewRejectedRecord records a block that could not be heralded.
func NewRejectedRecord(header BlockHeader, reason string, heraldedAt time.Time) HeraldRecord {
	return HeraldRecord{
		Height:     header.Height,
		Hash:       header.Hash,
		Status:     HeraldRejected,
		Reason:     reason,
		TxCount:    header.NumTxs,
		BlockTime:  time.Unix(header.Timestamp, 0).UTC(),
		HeraldedAt: heraldedAt.UTC(),
	}
}
