// Package event defines the raw log model consumed by the log decoder.
package event

import (
	"github.com/ethereum/go-ethereum/common"
)

// Log is one contract log: the topic words and data payload the decoder
// reads, plus where the log came from.
type Log struct {
	Address common.Address

	// Topics[0] is the event ID unless the event is anonymous; the rest are
	// indexed parameters, one word each.
	Topics []common.Hash

	// Data is the ABI encoding of the non-indexed parameters.
	Data []byte

	BlockNumber uint64
	BlockHash   common.Hash
	TxHash      common.Hash
	TxIndex     uint
	LogIndex    uint // position in the block

	// Removed is set when a reorg reverted the log.
	Removed bool
}

// EventSignature returns topic0, or the zero hash for a log without topics.
func (l Log) EventSignature() common.Hash {
	if len(l.Topics) == 0 {
		return common.Hash{}
	}
	return l.Topics[0]
}
