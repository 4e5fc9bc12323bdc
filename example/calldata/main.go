// Example: calldata - encode a call from a JSON ABI, repairing narrow
// integer widths, then decode it back.
//
// Usage:
//
//	go run ./example/calldata
package main

import (
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"

	"github.com/hedeqiang/dynabi"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/value"
)

// ERC-20 JSON ABI (partial)
var erc20ABI = []byte(`[
  {
    "type": "function",
    "name": "transfer",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "to",     "type": "address"},
      {"name": "amount", "type": "uint256"}
    ],
    "outputs": [{"name": "", "type": "bool"}]
  },
  {
    "type": "function",
    "name": "balanceOf",
    "stateMutability": "view",
    "inputs":  [{"name": "owner", "type": "address"}],
    "outputs": [{"name": "", "type": "uint256"}]
  }
]`)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	parsed, err := descriptor.ParseJSON(erc20ABI)
	if err != nil {
		log.Fatal(err)
	}
	transfer, ok := parsed.Function("transfer")
	if !ok {
		log.Fatal("transfer not found")
	}

	c := dynabi.New(dynabi.WithLogger(logger), dynabi.WithLogLevel("debug"))

	to := common.HexToAddress("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")

	// The amount is built as a uint64; it is widened to uint256 before encoding.
	data, err := c.EncodeInput(transfer, []value.Value{
		value.Address(to),
		value.Uint(big.NewInt(1_000_000), 64),
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n  %s\n", dynabi.Signature(transfer), hexutil.Encode(data))

	args, err := c.DecodeInput(transfer, data)
	if err != nil {
		log.Fatal(err)
	}
	for i, p := range transfer.Inputs {
		fmt.Printf("  %-6s %-8s %s\n", p.Name, args[i].TypeName(), args[i].String())
	}

	balanceOf, _ := parsed.Function("balanceOf")
	out, err := c.DecodeOutput(balanceOf, common.LeftPadBytes(big.NewInt(42).Bytes(), 32))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s -> %s\n", dynabi.Signature(balanceOf), out[0].AsBig())
}
