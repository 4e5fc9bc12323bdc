// Example: decoded - decode a batch of ERC-20 logs and bind them to structs.
//
// Usage:
//
//	go run ./example/decoded
package main

import (
	"fmt"
	"log"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/hedeqiang/dynabi"
	"github.com/hedeqiang/dynabi/abitype"
	"github.com/hedeqiang/dynabi/descriptor"
	"github.com/hedeqiang/dynabi/event"
	"github.com/hedeqiang/dynabi/filter"
	mw "github.com/hedeqiang/dynabi/middleware"
	"github.com/hedeqiang/dynabi/value"
	"github.com/hedeqiang/dynabi/wire"
)

var (
	usdt  = common.HexToAddress("0xdAC17F958D2ee523a2206206994597C13D831ec7")
	alice = common.HexToAddress("0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	bob   = common.HexToAddress("0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc")
)

type transfer struct {
	From  common.Address `abi:"from"`
	To    common.Address `abi:"to"`
	Value *big.Int       `abi:"value"`
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	c := dynabi.New(
		dynabi.WithLogger(logger),
		dynabi.WithLogLevel("info"),
		dynabi.WithMiddleware(mw.SkipRemoved(), mw.Match(filter.Address(usdt))),
	)

	// Register event ABIs for decoding
	if err := c.RegisterEvent("Transfer(address indexed from, address indexed to, uint256 value)"); err != nil {
		log.Fatal(err)
	}
	if err := c.RegisterEvent("Approval(address indexed owner, address indexed spender, uint256 value)"); err != nil {
		log.Fatal(err)
	}

	batch := event.NewBatch([]event.Log{
		transferLog(alice, bob, 2_500_000, 19000000),
		transferLog(bob, alice, 1_000_000, 19000001),
	})

	decoded, err := c.DecodeBatch(batch)
	if err != nil {
		log.Fatal(err)
	}
	for _, ev := range decoded {
		var t transfer
		if err := ev.Bind(&t); err != nil {
			log.Fatal(err)
		}
		// USDT has 6 decimals
		fmt.Printf("[Transfer] %s -> %s : %s USDT (block %d)\n",
			t.From.Hex(), t.To.Hex(), formatUnits(t.Value, 6), ev.Raw.BlockNumber)
	}
}

// transferLog builds the log a USDT transfer would emit.
func transferLog(from, to common.Address, amount int64, block uint64) event.Log {
	ev, err := descriptor.ParseEvent("Transfer(address indexed from, address indexed to, uint256 value)")
	if err != nil {
		log.Fatal(err)
	}
	data, err := wire.NewEth().Encode(
		[]abitype.Type{abitype.Uint(256)},
		[]value.Value{value.Uint(big.NewInt(amount), 256)},
	)
	if err != nil {
		log.Fatal(err)
	}
	return event.FromTypesLog(types.Log{
		Address:     usdt,
		Topics:      []common.Hash{common.Hash(ev.ID()), common.BytesToHash(from.Bytes()), common.BytesToHash(to.Bytes())},
		Data:        data,
		BlockNumber: block,
	})
}

// formatUnits formats a big.Int with the given decimal places.
func formatUnits(amount *big.Int, decimals int) string {
	if amount == nil {
		return "0"
	}
	divisor := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole := new(big.Int).Div(amount, divisor)
	frac := new(big.Int).Mod(amount, divisor)
	return fmt.Sprintf("%s.%0*s", whole.String(), decimals, frac.String())
}
