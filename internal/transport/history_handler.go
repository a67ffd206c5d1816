package transport

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// MaxHistoryRange bounds the heights one history request may span.
const MaxHistoryRange = 1000

var errBadRange = errors.New("from must not exceed to")

type heraldRecordDTO struct {
	Height     uint64    `json:"height"`
	Hash       string    `json:"hash"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	Messages   uint32    `json:"messages"`
	TxCount    uint64    `json:"txCount"`
	Transfers  uint32    `json:"transfers"`
	AppTxs     uint32    `json:"appTxs"`
	TokenIDs   uint32    `json:"tokenIds"`
	TotalFees  int64     `json:"totalFeesSats"`
	BlockTime  time.Time `json:"blockTime"`
	HeraldedAt time.Time `json:"heraldedAt"`
}

// HistoryHandler serves GET /history?from=H&to=H.
type HistoryHandler struct {
	history HeraldHistory
	logger  *zap.Logger
}

// NewHistoryHandler returns a HistoryHandler instance.
func NewHistoryHandler(history HeraldHistory, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		logger:  logger.Named("history_handler"),
	}
}

func (h *HistoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	from, to, err := parseRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	records, err := h.history.Heralds(r.Context(), from, to)
	if err != nil {
		h.logger.Error("read herald history", zap.Uint64("from", from), zap.Uint64("to", to), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	out := make([]heraldRecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, heraldRecordDTO{
			Height:     rec.Height,
			Hash:       rec.Hash,
			Status:     string(rec.Status),
			Reason:     rec.Reason,
			Messages:   rec.Messages,
			TxCount:    rec.TxCount,
			Transfers:  rec.Transfers,
			AppTxs:     rec.AppTxs,
			TokenIDs:   rec.TokenIDs,
			TotalFees:  rec.TotalFees,
			BlockTime:  rec.BlockTime,
			HeraldedAt: rec.HeraldedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(out); err != nil {
		h.logger.Warn("write history response", zap.Error(err))
	}
}

func parseRange(r *http.Request) (uint64, uint64, error) {
	q := r.URL.Query()
	from, err := strconv.ParseUint(q.Get("from"), 10, 64)
	if err != nil {
		return 0, 0, errors.New("from: expected a block height")
	}
	to := from
	if raw := q.Get("to"); raw != "" {
		if to, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return 0, 0, errors.New("to: expected a block height")
		}
	}
	if from > to {
		return 0, 0, errBadRange
	}
	if to-from >= MaxHistoryRange {
		to = from + MaxHistoryRange - 1
	}
	return from, to, nil
}
