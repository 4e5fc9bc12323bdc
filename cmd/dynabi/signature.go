package main

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/hedeqiang/dynabi"
	"github.com/hedeqiang/dynabi/descriptor"
)

var signatureCmd = &cobra.Command{
	Use:   "signature [function or event]",
	Short: "Show canonical signatures, selectors and event topics",
	Long: `Show the canonical signature and selector of a function, or the
signature and topic0 of an event. Without an argument every entry of the
--abi file is listed.`,
	Example: `  dynabi signature "transfer(address to, uint256 amount) returns (bool)"
  dynabi signature --abi erc20.json Transfer
  dynabi signature --abi erc20.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSignature,
}

func runSignature(cmd *cobra.Command, args []string) error {
	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"#", "Kind", "Signature", "Selector / Topic"})
	t.SetColumnConfigs(nil)

	if len(args) == 0 {
		parsed, err := loadABI(cfg.ABIPath)
		if err != nil {
			return err
		}
		if parsed == nil {
			return errors.New("pass a signature or --abi")
		}
		n := 0
		for _, fn := range parsed.Functions {
			t.AppendRow(functionRow(n, fn))
			n++
		}
		for _, ev := range parsed.Events {
			t.AppendRow(eventRow(n, ev))
			n++
		}
		t.Render()
		return nil
	}

	fn, fnErr := resolveFunction(cfg.ABIPath, args[0])
	if fnErr == nil {
		t.AppendRow(functionRow(0, fn))
		t.Render()
		return nil
	}
	ev, evErr := resolveEvent(cfg.ABIPath, args[0])
	if evErr != nil {
		return fmt.Errorf("%q is neither a function (%v) nor an event (%v)", args[0], fnErr, evErr)
	}
	t.AppendRow(eventRow(0, ev))
	t.Render()
	return nil
}

func functionRow(i int, fn *descriptor.Function) table.Row {
	sel := fn.Selector()
	return table.Row{i, "function", dynabi.Signature(fn), hexutil.Encode(sel[:])}
}

func eventRow(i int, ev *descriptor.Event) table.Row {
	topic := "anonymous"
	if !ev.Anonymous {
		id := ev.ID()
		topic = hexutil.Encode(id[:])
	}
	return table.Row{i, "event", ev.Canonical(), topic}
}
