package ecash

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math/bits"

	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/format"
	"github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"
)

var errMalformed = errors.New("malformed payload")

const (
	tokenIDSize   = 32
	slpAmountSize = 8
	alpAmountSize = 6
)

var (
	slpTxGenesis = []byte("GENESIS")
	slpTxMint    = []byte("MINT")
	slpTxSend    = []byte("SEND")
	alpTxBurn    = []byte("BURN")
)

func decodeSLP(payload Payload, tx *model.RawTx) (model.OpReturnInfo, error) {
	items := payload.Items
	if len(items) < 3 || len(items[1]) == 0 || len(items[1]) > 2 {
		return model.OpReturnInfo{}, errMalformed
	}
	switch txType := items[2]; {
	case bytes.Equal(txType, slpTxGenesis):
		if len(items) < 10 {
			return model.OpReturnInfo{}, errMalformed
		}
		ticker, err := text(items[3])
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		name, err := text(items[4])
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		if len(items[7]) != 1 || items[7][0] > 9 || len(items[9]) != slpAmountSize {
			return model.OpReturnInfo{}, errMalformed
		}
		meta := model.TokenMeta{Ticker: ticker, Name: name, Decimals: items[7][0]}
		qty := binary.BigEndian.Uint64(items[9])
		return model.OpReturnInfo{
			Protocol: model.ProtocolSLPGenesis,
			Message:  genesisMessage(meta, qty),
			TokenID:  tx.TxID,
		}, nil
	case bytes.Equal(txType, slpTxMint):
		if len(items) < 6 || len(items[3]) != tokenIDSize || len(items[5]) != slpAmountSize {
			return model.OpReturnInfo{}, errMalformed
		}
		qty := binary.BigEndian.Uint64(items[5])
		return model.OpReturnInfo{
			Protocol: model.ProtocolSLPMint,
			Message:  fmt.Sprintf("Minted %d atoms", qty),
			TokenID:  hex.EncodeToString(items[3]),
		}, nil
	case bytes.Equal(txType, slpTxSend):
		if len(items) < 5 || len(items[3]) != tokenIDSize {
			return model.OpReturnInfo{}, errMalformed
		}
		total, err := sumAmounts(items[4:], slpAmountSize, binary.BigEndian.Uint64)
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		return model.OpReturnInfo{
			Protocol: model.ProtocolSLPSend,
			Message:  sendMessage(total, len(items)-4),
			TokenID:  hex.EncodeToString(items[3]),
		}, nil
	default:
		return model.OpReturnInfo{}, errMalformed
	}
}

func sumAmounts(items [][]byte, size int, decode func([]byte) uint64) (uint64, error) {
	amounts := make([]uint64, 0, len(items))
	for _, item := range items {
		if len(item) != size {
			return 0, errMalformed
		}
		amounts = append(amounts, decode(item))
	}
	return sumAtoms(amounts)
}

// sumAtoms adds amounts, treating a uint64 overflow as a malformed payload.
func sumAtoms(amounts []uint64) (uint64, error) {
	var total, carry uint64
	for _, a := range amounts {
		if total, carry = bits.Add64(total, a, 0); carry != 0 {
			return 0, errMalformed
		}
	}
	return total, nil
}

// decodeALP decodes the first eMPP section, which must carry the SLP2 lokad.
func decodeALP(payload Payload, tx *model.RawTx) (model.OpReturnInfo, error) {
	if !payload.EMPP {
		return model.OpReturnInfo{}, errMalformed
	}
	r := newSectionReader(payload.Lead()[len(prefixALP):])
	if _, err := r.readByte(); err != nil { // token type
		return model.OpReturnInfo{}, err
	}
	txType, err := r.varBytes()
	if err != nil {
		return model.OpReturnInfo{}, err
	}

	switch {
	case bytes.Equal(txType, slpTxGenesis):
		var fields [5][]byte // ticker, name, url, data, auth pubkey
		for i := range fields {
			if fields[i], err = r.varBytes(); err != nil {
				return model.OpReturnInfo{}, err
			}
		}
		decimals, err := r.readByte()
		if err != nil || decimals > 9 {
			return model.OpReturnInfo{}, errMalformed
		}
		qty, _, err := r.mintData()
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		ticker, err := text(fields[0])
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		name, err := text(fields[1])
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		meta := model.TokenMeta{Ticker: ticker, Name: name, Decimals: decimals}
		return model.OpReturnInfo{
			Protocol: model.ProtocolALPGenesis,
			Message:  genesisMessage(meta, qty),
			TokenID:  tx.TxID,
		}, nil
	case bytes.Equal(txType, slpTxMint):
		tokenID, err := r.tokenID()
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		qty, batons, err := r.mintData()
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		msg := fmt.Sprintf("Minted %d atoms", qty)
		if batons > 0 {
			msg += fmt.Sprintf(", %d mint batons", batons)
		}
		return model.OpReturnInfo{Protocol: model.ProtocolALPMint, Message: msg, TokenID: tokenID}, nil
	case bytes.Equal(txType, slpTxSend):
		tokenID, err := r.tokenID()
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		amounts, err := r.amounts()
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		total, err := sumAtoms(amounts)
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		return model.OpReturnInfo{
			Protocol: model.ProtocolALPSend,
			Message:  sendMessage(total, len(amounts)),
			TokenID:  tokenID,
		}, nil
	case bytes.Equal(txType, alpTxBurn):
		tokenID, err := r.tokenID()
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		burned, err := r.amount()
		if err != nil {
			return model.OpReturnInfo{}, err
		}
		return model.OpReturnInfo{
			Protocol: model.ProtocolALPBurn,
			Message:  fmt.Sprintf("Burned %d atoms", burned),
			TokenID:  tokenID,
		}, nil
	default:
		return model.OpReturnInfo{}, errMalformed
	}
}

func genesisMessage(meta model.TokenMeta, qty uint64) string {
	msg := fmt.Sprintf("%s (%s)", meta.Name, meta.Ticker)
	if qty > 0 {
		msg += " minted " + format.Atoms(qty, meta, true)
	}
	return msg
}

func sendMessage(total uint64, outputs int) string {
	if outputs == 1 {
		return fmt.Sprintf("Sent %d atoms to 1 output", total)
	}
	return fmt.Sprintf("Sent %d atoms to %d outputs", total, outputs)
}

// sectionReader reads fields of an ALP section.
type sectionReader struct {
	data []byte
}

func newSectionReader(data []byte) *sectionReader {
	return &sectionReader{data: data}
}

func (r *sectionReader) take(n int) ([]byte, error) {
	if n < 0 || n > len(r.data) {
		return nil, errMalformed
	}
	out := r.data[:n]
	r.data = r.data[n:]
	return out, nil
}

func (r *sectionReader) readByte() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// compactSize reads a Bitcoin style variable length integer.
func (r *sectionReader) compactSize() (uint64, error) {
	first, err := r.readByte()
	if err != nil {
		return 0, err
	}
	var size int
	switch first {
	case 0xfd:
		size = 2
	case 0xfe:
		size = 4
	case 0xff:
		size = 8
	default:
		return uint64(first), nil
	}
	b, err := r.take(size)
	if err != nil {
		return 0, err
	}
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (r *sectionReader) varBytes() ([]byte, error) {
	n, err := r.compactSize()
	if err != nil {
		return nil, err
	}
	if n > uint64(len(r.data)) {
		return nil, errMalformed
	}
	return r.take(int(n))
}

// tokenID reads a little-endian token id and returns its display (big-endian) hex.
func (r *sectionReader) tokenID() (string, error) {
	b, err := r.take(tokenIDSize)
	if err != nil {
		return "", err
	}
	reversed := make([]byte, tokenIDSize)
	for i := range b {
		reversed[tokenIDSize-1-i] = b[i]
	}
	return hex.EncodeToString(reversed), nil
}

func (r *sectionReader) amount() (uint64, error) {
	b, err := r.take(alpAmountSize)
	if err != nil {
		return 0, err
	}
	var buf [8]byte
	copy(buf[:], b)
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func (r *sectionReader) amounts() ([]uint64, error) {
	n, err := r.readByte()
	if err != nil {
		return nil, err
	}
	out := make([]uint64, 0, n)
	for i := 0; i < int(n); i++ {
		a, err := r.amount()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// mintData reads the minted amounts and the number of mint batons.
func (r *sectionReader) mintData() (uint64, int, error) {
	amounts, err := r.amounts()
	if err != nil {
		return 0, 0, err
	}
	batons, err := r.readByte()
	if err != nil {
		return 0, 0, err
	}
	total, err := sumAtoms(amounts)
	if err != nil {
		return 0, 0, err
	}
	return total, int(batons), nil
}
