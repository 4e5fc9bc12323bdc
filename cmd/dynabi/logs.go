package main

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hedeqiang/dynabi"
	"github.com/hedeqiang/dynabi/event"
	"github.com/hedeqiang/dynabi/filter"
	"github.com/hedeqiang/dynabi/middleware"
)

var decodeLogCmd = &cobra.Command{
	Use:   "decode-log <event>",
	Short: "Decode one event log",
	Long: `Decode one log given by its topics and data against an event. Parameter
names follow --log-order: "declared" names every value by its own
declaration, "positional" pairs indexed values first and body values after.`,
	Example: `  dynabi decode-log "Transfer(address indexed from, address indexed to, uint256 value)" \
    --topic 0xddf252ad... --topic 0x...alice --topic 0x...bob --data 0x...03e8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ev, err := resolveEvent(cfg.ABIPath, args[0])
		if err != nil {
			return err
		}
		topics, _ := cmd.Flags().GetStringArray("topic")
		data, _ := cmd.Flags().GetString("data")
		log, err := event.FromHex("", topics, data)
		if err != nil {
			return err
		}

		codec, logger, err := newCodec()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		params, err := codec.DecodeLog(ev, log)
		if err != nil {
			return err
		}
		renderNamed(cmd.OutOrStdout(), ev, params)
		return nil
	},
}

var decodeLogsCmd = &cobra.Command{
	Use:   "decode-logs <file>",
	Short: "Decode a JSON-RPC log dump against registered events",
	Long: `Decode the logs of an eth_getLogs response (a JSON array of log objects,
or a single object) read from a file or "-" for stdin. Events are taken
from --abi and from every --event signature.`,
	Example: `  dynabi decode-logs --abi erc20.json logs.json
  cast logs ... --json | dynabi decode-logs --event "Transfer(address indexed,address indexed,uint256)" -`,
	Args: cobra.ExactArgs(1),
	RunE: runDecodeLogs,
}

func init() {
	decodeLogCmd.Flags().StringArray("topic", nil, "log topic as 0x hex, repeat in order")
	decodeLogCmd.Flags().String("data", "0x", "log data as 0x hex")

	decodeLogsCmd.Flags().StringArray("event", nil, "event signature to register, repeatable")
	decodeLogsCmd.Flags().StringSlice("address", nil, "only decode logs emitted by these contracts")
	decodeLogsCmd.Flags().StringSlice("topic0", nil, "only decode logs with one of these event IDs")
	decodeLogsCmd.Flags().Uint64("from-block", 0, "only decode logs at or after this block")
	decodeLogsCmd.Flags().Uint64("to-block", 0, "only decode logs at or before this block (0 for no limit)")
	decodeLogsCmd.Flags().Bool("skip-removed", false, "drop logs removed by a reorg")
	decodeLogsCmd.Flags().Bool("raw", false, "keep logs of unknown events as raw topics and data")
	decodeLogsCmd.Flags().Bool("json", false, "print one JSON document per log")
}

func runDecodeLogs(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	signatures, _ := flags.GetStringArray("event")
	addresses, _ := flags.GetStringSlice("address")
	skipRemoved, _ := flags.GetBool("skip-removed")
	raw, _ := flags.GetBool("raw")
	asJSON, _ := flags.GetBool("json")

	if cfg.ABIPath == "" && len(signatures) == 0 && !raw {
		return errors.New("no events to decode: pass --abi, --event or --raw")
	}

	var opts []dynabi.Option
	if raw {
		opts = append(opts, dynabi.WithRawFallback())
	}
	metrics := middleware.NewMetrics()
	opts = append(opts, dynabi.WithMiddleware(metrics))

	if len(addresses) > 0 {
		if bad, found := lo.Find(addresses, func(a string) bool { return !common.IsHexAddress(a) }); found {
			return fmt.Errorf("invalid address %q", bad)
		}
		contracts := lo.Map(addresses, func(a string, _ int) common.Address { return common.HexToAddress(a) })
		opts = append(opts, dynabi.WithMiddleware(middleware.Match(filter.Address(contracts...))))
	}
	if skipRemoved {
		opts = append(opts, dynabi.WithMiddleware(middleware.SkipRemoved()))
	}
	match, err := logFilter(flags)
	if err != nil {
		return err
	}
	if match != nil {
		opts = append(opts, dynabi.WithMiddleware(middleware.Match(match)))
	}

	codec, logger, err := newCodec(opts...)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	codec.Use(middleware.NewLogger(logger))

	if cfg.ABIPath != "" {
		data, err := readInput(cfg.ABIPath)
		if err != nil {
			return fmt.Errorf("read ABI: %w", err)
		}
		if err := codec.RegisterEventJSON(data); err != nil {
			return err
		}
	}
	for _, sig := range signatures {
		if err := codec.RegisterEvent(sig); err != nil {
			return err
		}
	}

	input, err := readInput(args[0])
	if err != nil {
		return fmt.Errorf("read logs: %w", err)
	}
	batch, err := event.ParseRPCLogs(input)
	if err != nil {
		return err
	}

	decoded, err := codec.DecodeBatch(batch)
	if err != nil {
		return err
	}
	logger.Info("decoded logs",
		zap.Int("logs", batch.Len()),
		zap.Uint64("kept", metrics.Processed()),
		zap.Uint64("dropped", metrics.Dropped()),
		zap.Int("decoded", len(decoded)),
	)
	for topic, n := range metrics.ByTopic() {
		logger.Debug("kept logs by topic", zap.Stringer("topic0", topic), zap.Uint64("count", n))
	}

	if asJSON {
		return writeJSONLines(cmd.OutOrStdout(), decoded)
	}
	renderEvents(cmd.OutOrStdout(), decoded)
	return nil
}

// logFilter builds the topic and block range filter, or nil when no such
// flag was set.
func logFilter(flags *pflag.FlagSet) (filter.Filter, error) {
	var filters []filter.Filter

	topics, _ := flags.GetStringSlice("topic0")
	if len(topics) > 0 {
		hashes := make([]common.Hash, len(topics))
		for i, s := range topics {
			b, err := hexutil.Decode(s)
			if err != nil || len(b) != common.HashLength {
				return nil, fmt.Errorf("invalid topic0 %q", s)
			}
			hashes[i] = common.BytesToHash(b)
		}
		filters = append(filters, filter.Topic(0, hashes...))
	}

	var from, to *uint64
	if flags.Changed("from-block") {
		n, _ := flags.GetUint64("from-block")
		from = &n
	}
	if n, _ := flags.GetUint64("to-block"); n > 0 {
		to = &n
	}
	if from != nil || to != nil {
		filters = append(filters, filter.BlockRange(from, to))
	}

	if len(filters) == 0 {
		return nil, nil
	}
	return filter.AllOf(filters...), nil
}
