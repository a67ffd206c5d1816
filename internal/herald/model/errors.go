package model

import "errors"

// ErrIndexerContract marks data from the indexer that breaks an invariant the herald relies on.
// A block carrying such data is not heralded.
var ErrIndexerContract = errors.New("indexer contract violation")
