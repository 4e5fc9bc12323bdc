package main

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var encodeInputCmd = &cobra.Command{
	Use:   "encode-input <function> [args...]",
	Short: "Encode call data for a function",
	Long: `Encode call data, selector included, for a function. Arguments are given
one per input: integers in decimal or 0x hex, byte types as 0x hex, and
arrays or tuples as JSON arrays.`,
	Example: `  dynabi encode-input "transfer(address,uint256)" 0x70997970c51812dc3a010c7d01b50e0d17dc79c8 1000
  dynabi encode-input "f(uint8[],(bool,string))" '[1,2,3]' '[true,"hi"]'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, err := resolveFunction(cfg.ABIPath, args[0])
		if err != nil {
			return err
		}
		vals, err := parseArgs(fn.InputTypes(), args[1:])
		if err != nil {
			return fmt.Errorf("%s: %w", fn.Canonical(), err)
		}

		codec, logger, err := newCodec()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		data, err := codec.EncodeInput(fn, vals)
		if err != nil {
			return err
		}
		logger.Debug("encoded input", zap.String("function", fn.Canonical()), zap.Int("bytes", len(data)))
		fmt.Fprintln(cmd.OutOrStdout(), hexutil.Encode(data))
		return nil
	},
}

var decodeInputCmd = &cobra.Command{
	Use:   "decode-input <function> <calldata>",
	Short: "Decode call data against a function's inputs",
	Long: `Decode call data against a function's inputs. The data must start with
the function's selector unless --no-selector is given.`,
	Example: `  dynabi decode-input "transfer(address to, uint256 amount)" 0xa9059cbb...`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, err := resolveFunction(cfg.ABIPath, args[0])
		if err != nil {
			return err
		}
		data, err := decodeHexArg(args[1])
		if err != nil {
			return err
		}

		codec, logger, err := newCodec()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		decode := codec.DecodeInput
		if noSelector, _ := cmd.Flags().GetBool("no-selector"); noSelector {
			decode = codec.DecodeArgs
		}
		vals, err := decode(fn, data)
		if err != nil {
			return err
		}
		renderValues(cmd.OutOrStdout(), fn.Canonical(), fn.Inputs, vals)
		return nil
	},
}

var decodeOutputCmd = &cobra.Command{
	Use:     "decode-output <function> <returndata>",
	Short:   "Decode return data against a function's outputs",
	Example: `  dynabi decode-output "balanceOf(address) returns (uint256 balance)" 0x...03e8`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fn, err := resolveFunction(cfg.ABIPath, args[0])
		if err != nil {
			return err
		}
		data, err := decodeHexArg(args[1])
		if err != nil {
			return err
		}

		codec, logger, err := newCodec()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		vals, err := codec.DecodeOutput(fn, data)
		if err != nil {
			return err
		}
		renderValues(cmd.OutOrStdout(), fn.SignatureCompat(), fn.Outputs, vals)
		return nil
	},
}

func init() {
	decodeInputCmd.Flags().Bool("no-selector", false, "data holds the arguments only")
}

// decodeHexArg decodes 0x hex, tolerating a missing prefix.
func decodeHexArg(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return b, nil
}
