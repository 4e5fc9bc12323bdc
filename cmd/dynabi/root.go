package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hedeqiang/dynabi"
	"github.com/hedeqiang/dynabi/decoder"
	"github.com/hedeqiang/dynabi/internal/logging"
)

const envPrefix = "DYNABI"

// settings are the persistent options after flags, environment and the
// optional config file have been merged.
type settings struct {
	ABIPath  string
	LogLevel string
	LogOrder string
	NoColor  bool
}

var cfg settings

var rootCmd = &cobra.Command{
	Use:   "dynabi",
	Short: "Encode and decode contract ABI data",
	Long: `dynabi encodes call data and decodes call data, return data and event
logs against function and event descriptors given as human-readable
signatures or loaded from a JSON ABI file.

Every flag can also be set through a DYNABI_ prefixed environment variable,
e.g. DYNABI_LOG_LEVEL=debug, or through a config file passed with --config.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("abi", "", "JSON ABI file to resolve function and event names against")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-order", decoder.OrderDeclared.String(), "how decoded log values are named (declared, positional)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	rootCmd.AddCommand(signatureCmd)
	rootCmd.AddCommand(encodeInputCmd)
	rootCmd.AddCommand(decodeInputCmd)
	rootCmd.AddCommand(decodeOutputCmd)
	rootCmd.AddCommand(decodeLogCmd)
	rootCmd.AddCommand(decodeLogsCmd)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func initConfig(cmd *cobra.Command) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg = settings{
		ABIPath:  v.GetString("abi"),
		LogLevel: v.GetString("log-level"),
		LogOrder: v.GetString("log-order"),
		NoColor:  v.GetBool("no-color"),
	}
	if cfg.NoColor {
		color.NoColor = true
	}
	return nil
}

// newCodec builds the codec and its logger from the merged settings.
func newCodec(opts ...dynabi.Option) (*dynabi.Codec, *zap.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		Writer:  os.Stderr,
		NoColor: cfg.NoColor,
	})
	if err != nil {
		return nil, nil, err
	}
	order, err := decoder.ParseOrdering(cfg.LogOrder)
	if err != nil {
		return nil, nil, err
	}

	base := []dynabi.Option{
		dynabi.WithLogger(logger),
		dynabi.WithLogLevel(cfg.LogLevel),
		dynabi.WithLogOrdering(order),
	}
	return dynabi.New(append(base, opts...)...), logger, nil
}
