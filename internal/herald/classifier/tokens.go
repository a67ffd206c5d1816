package classifier

import "github.com/Bitcoin-ABC/bitcoin-abc-sub004/internal/herald/model"

func classifyTokens(tx model.RawTx, parsed *model.ParsedTx) error {
	if len(tx.TokenEntries) == 0 {
		return nil
	}
	if err := checkEntryOrder(tx); err != nil {
		return err
	}

	var sendEntry *model.TokenEntry
	sendEntries := 0
	for i := range tx.TokenEntries {
		entry := &tx.TokenEntries[i]
		if parsed.GenesisInfo == nil && entry.TxType == model.TokenTxGenesis {
			parsed.GenesisInfo = &model.GenesisInfo{TokenID: entry.TokenID}
		}
		if parsed.TokenBurnInfo == nil && entry.ActualBurnAtoms > 0 {
			parsed.TokenBurnInfo = &model.TokenBurnInfo{
				TokenID:         entry.TokenID,
				ActualBurnAtoms: entry.ActualBurnAtoms,
			}
		}
		if entry.IsSendClass() && !entry.IsInvalid {
			sendEntries++
			if sendEntry == nil {
				sendEntry = entry
			}
		}
	}

	// more than one send-class entry is left unresolved
	if sendEntries == 1 && len(tx.TokenFailedParsings) == 0 {
		parsed.TokenSendInfo = tokenSendInfo(tx, *parsed, *sendEntry)
	}
	return nil
}

func tokenSendInfo(tx model.RawTx, parsed model.ParsedTx, entry model.TokenEntry) *model.TokenSendInfo {
	info := &model.TokenSendInfo{
		TokenID:  entry.TokenID,
		Protocol: entry.TokenType.Protocol,
		TxType:   entry.TxType,
	}
	for _, out := range tx.Outputs {
		if out.Token == nil || out.Token.TokenID != entry.TokenID || out.Token.IsMintBaton {
			continue
		}
		if parsed.IsSender(out.OutputScript) {
			info.TokenChangeOutputs.Add(out.OutputScript, out.Token.Atoms)
		} else {
			info.TokenReceivingOutputs.Add(out.OutputScript, out.Token.Atoms)
		}
	}

	supplied := make(map[model.Script]struct{})
	for _, in := range tx.Inputs {
		if in.Token != nil && in.Token.TokenID == entry.TokenID {
			supplied[in.OutputScript] = struct{}{}
		}
	}
	for _, script := range parsed.XecSendingOutputScripts {
		if _, ok := supplied[script]; ok {
			info.TokenSendingScripts = append(info.TokenSendingScripts, script)
		}
	}
	return info
}

// checkEntryOrder verifies that entries of tokens spent by the tx follow the order in
// which those tokens first appear among the inputs.
func checkEntryOrder(tx model.RawTx) error {
	firstSeen := make(map[string]int)
	for _, in := range tx.Inputs {
		if in.Token == nil {
			continue
		}
		if _, ok := firstSeen[in.Token.TokenID]; !ok {
			firstSeen[in.Token.TokenID] = len(firstSeen)
		}
	}

	last := -1
	for _, entry := range tx.TokenEntries {
		pos, ok := firstSeen[entry.TokenID]
		if !ok {
			continue
		}
		if pos <= last {
			return contractError(tx.TxID, "token entry %s out of input order", entry.TokenID)
		}
		last = pos
	}
	return nil
}
