package event

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// RPCLog is a log in the JSON-RPC form returned by eth_getLogs and
// transaction receipts.
type RPCLog struct {
	Address     common.Address `json:"address"`
	Topics      []common.Hash  `json:"topics"`
	Data        hexutil.Bytes  `json:"data"`
	BlockNumber hexutil.Uint64 `json:"blockNumber"`
	BlockHash   common.Hash    `json:"blockHash"`
	TxHash      common.Hash    `json:"transactionHash"`
	TxIndex     hexutil.Uint   `json:"transactionIndex"`
	LogIndex    hexutil.Uint   `json:"logIndex"`
	Removed     bool           `json:"removed"`
}

// FromTypesLog converts a go-ethereum log into a Log.
func FromTypesLog(l types.Log) Log {
	return Log{
		Address:     l.Address,
		Topics:      append([]common.Hash(nil), l.Topics...),
		Data:        append([]byte(nil), l.Data...),
		BlockNumber: l.BlockNumber,
		BlockHash:   l.BlockHash,
		TxHash:      l.TxHash,
		TxIndex:     l.TxIndex,
		LogIndex:    l.Index,
		Removed:     l.Removed,
	}
}

// ToTypesLog converts l into a go-ethereum log.
func (l Log) ToTypesLog() types.Log {
	return types.Log{
		Address:     l.Address,
		Topics:      append([]common.Hash(nil), l.Topics...),
		Data:        append([]byte(nil), l.Data...),
		BlockNumber: l.BlockNumber,
		BlockHash:   l.BlockHash,
		TxHash:      l.TxHash,
		TxIndex:     l.TxIndex,
		Index:       l.LogIndex,
		Removed:     l.Removed,
	}
}

// FromRPC converts a JSON-RPC log into a Log.
func FromRPC(l RPCLog) Log {
	return Log{
		Address:     l.Address,
		Topics:      append([]common.Hash(nil), l.Topics...),
		Data:        append([]byte(nil), l.Data...),
		BlockNumber: uint64(l.BlockNumber),
		BlockHash:   l.BlockHash,
		TxHash:      l.TxHash,
		TxIndex:     uint(l.TxIndex),
		LogIndex:    uint(l.LogIndex),
		Removed:     l.Removed,
	}
}

// FromHex builds a Log from "0x"-prefixed hex strings. address may be empty.
func FromHex(address string, topics []string, data string) (Log, error) {
	var l Log
	if address != "" {
		if !common.IsHexAddress(address) {
			return Log{}, fmt.Errorf("event: invalid address %q", address)
		}
		l.Address = common.HexToAddress(address)
	}

	l.Topics = make([]common.Hash, len(topics))
	for i, s := range topics {
		b, err := hexutil.Decode(s)
		if err != nil {
			return Log{}, fmt.Errorf("event: invalid topic %d %q: %w", i, s, err)
		}
		if len(b) != common.HashLength {
			return Log{}, fmt.Errorf("event: topic %d is %d bytes, want %d", i, len(b), common.HashLength)
		}
		l.Topics[i] = common.BytesToHash(b)
	}

	if data != "" && data != "0x" {
		b, err := hexutil.Decode(data)
		if err != nil {
			return Log{}, fmt.Errorf("event: invalid data: %w", err)
		}
		l.Data = b
	}
	return l, nil
}

// ParseRPCLogs parses a JSON array of JSON-RPC logs, or a single log object,
// into a Batch.
func ParseRPCLogs(data []byte) (Batch, error) {
	var rpcLogs []RPCLog
	if err := json.Unmarshal(data, &rpcLogs); err != nil {
		var single RPCLog
		if err2 := json.Unmarshal(data, &single); err2 != nil {
			return Batch{}, fmt.Errorf("event: parse logs: %w", err)
		}
		rpcLogs = []RPCLog{single}
	}

	logs := make([]Log, len(rpcLogs))
	for i, l := range rpcLogs {
		logs[i] = FromRPC(l)
	}
	return NewBatch(logs), nil
}
