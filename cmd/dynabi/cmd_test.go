package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	transferFn    = "transfer(address to, uint256 amount) returns (bool)"
	transferEvent = "Transfer(address indexed from, address indexed to, uint256 value)"
	transferTopic = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	alice         = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	aliceTopic    = "0x00000000000000000000000070997970c51812dc3a010c7d01b50e0d17dc79c8"
	bobTopic      = "0x0000000000000000000000003c44cdddb6a900fa2b585dd299e03d12fa4293bc"
	amountWord    = "0x00000000000000000000000000000000000000000000000000000000000003e8"
	transferCall  = "0xa9059cbb" +
		"00000000000000000000000070997970c51812dc3a010c7d01b50e0d17dc79c8" +
		"00000000000000000000000000000000000000000000000000000000000003e8"
)

// execute runs the root command with fresh flag values.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const erc20ABI = `[
	{"type":"function","name":"transfer","stateMutability":"nonpayable",
	 "inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],
	 "outputs":[{"name":"","type":"bool"}]},
	{"type":"event","name":"Transfer","inputs":[
		{"name":"from","type":"address","indexed":true},
		{"name":"to","type":"address","indexed":true},
		{"name":"value","type":"uint256","indexed":false}]}
]`

func TestSignatureCmd(t *testing.T) {
	out, err := execute(t, "signature", transferFn)
	require.NoError(t, err)
	assert.Contains(t, out, "transfer(address,uint256):(bool)")
	assert.Contains(t, out, "0xa9059cbb")

	out, err = execute(t, "signature", transferEvent)
	require.NoError(t, err)
	assert.Contains(t, out, transferTopic)

	abiPath := writeFile(t, "erc20.json", erc20ABI)
	out, err = execute(t, "signature", "--abi", abiPath)
	require.NoError(t, err)
	assert.Contains(t, out, "0xa9059cbb")
	assert.Contains(t, out, "Transfer(address,address,uint256)")

	_, err = execute(t, "signature")
	assert.Error(t, err)

	_, err = execute(t, "signature", "--abi", abiPath, "approve")
	assert.Error(t, err)
}

func TestEncodeDecodeInputCmd(t *testing.T) {
	out, err := execute(t, "encode-input", transferFn, alice, "1000")
	require.NoError(t, err)
	assert.Equal(t, transferCall, strings.TrimSpace(out))

	out, err = execute(t, "decode-input", transferFn, transferCall)
	require.NoError(t, err)
	assert.Contains(t, out, alice)
	assert.Contains(t, out, "1000")
	assert.Contains(t, out, "amount")

	out, err = execute(t, "decode-input", "--no-selector", transferFn, transferCall[10:])
	require.NoError(t, err)
	assert.Contains(t, out, "1000")

	abiPath := writeFile(t, "erc20.json", erc20ABI)
	out, err = execute(t, "decode-input", "--abi", abiPath, "transfer", transferCall)
	require.NoError(t, err)
	assert.Contains(t, out, alice)

	_, err = execute(t, "encode-input", transferFn, alice)
	assert.Error(t, err)

	_, err = execute(t, "decode-input", "approve(address,uint256)", transferCall)
	assert.Error(t, err)
}

func TestDecodeOutputCmd(t *testing.T) {
	out, err := execute(t, "decode-output", "balanceOf(address) returns (uint256 balance)", amountWord)
	require.NoError(t, err)
	assert.Contains(t, out, "balance")
	assert.Contains(t, out, "1000")

	_, err = execute(t, "decode-output", "balanceOf(address) returns (uint256)", "0x01")
	assert.Error(t, err)
}

func TestDecodeLogCmd(t *testing.T) {
	out, err := execute(t, "decode-log", transferEvent,
		"--topic", transferTopic, "--topic", aliceTopic, "--topic", bobTopic, "--data", amountWord)
	require.NoError(t, err)
	assert.Contains(t, out, alice)
	assert.Contains(t, out, "1000")

	_, err = execute(t, "decode-log", transferEvent, "--topic", transferTopic, "--data", amountWord)
	assert.Error(t, err, "missing indexed topics")
}

func TestDecodeLogsCmd(t *testing.T) {
	logs := `[
		{"address":"0xdac17f958d2ee523a2206206994597c13d831ec7",
		 "topics":["` + transferTopic + `","` + aliceTopic + `","` + bobTopic + `"],
		 "data":"` + amountWord + `","blockNumber":"0xa","logIndex":"0x1","removed":false},
		{"address":"0xdac17f958d2ee523a2206206994597c13d831ec7",
		 "topics":["` + transferTopic + `","` + aliceTopic + `","` + bobTopic + `"],
		 "data":"` + amountWord + `","blockNumber":"0xb","logIndex":"0x0","removed":true},
		{"address":"0x0000000000000000000000000000000000000001",
		 "topics":["0x0000000000000000000000000000000000000000000000000000000000000001"],
		 "data":"0x","blockNumber":"0xc","logIndex":"0x0","removed":false}
	]`
	logPath := writeFile(t, "logs.json", logs)
	abiPath := writeFile(t, "erc20.json", erc20ABI)

	out, err := execute(t, "decode-logs", "--abi", abiPath, "--json", "--skip-removed", logPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "Transfer", decoded["event"])
	assert.Equal(t, float64(10), decoded["blockNumber"])

	out, err = execute(t, "decode-logs", "--event", transferEvent, "--raw", "--json", logPath)
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], `"raw"`)

	out, err = execute(t, "decode-logs", "--raw", "--json",
		"--address", "0x0000000000000000000000000000000000000001", logPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 1)

	out, err = execute(t, "decode-logs", "--raw", "--json", "--from-block", "11", logPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	out, err = execute(t, "decode-logs", "--abi", abiPath, "--json", "--to-block", "11", "--topic0", transferTopic, logPath)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)

	_, err = execute(t, "decode-logs", "--raw", "--topic0", "0x01", logPath)
	assert.Error(t, err)

	out, err = execute(t, "decode-logs", "--abi", abiPath, logPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Transfer")
	assert.Contains(t, out, "value=1000")

	_, err = execute(t, "decode-logs", logPath)
	assert.Error(t, err)

	_, err = execute(t, "decode-logs", "--raw", "--address", "0x12", logPath)
	assert.Error(t, err)
}

func TestConfigSources(t *testing.T) {
	call := []string{"decode-log", transferEvent,
		"--topic", transferTopic, "--topic", aliceTopic, "--topic", bobTopic, "--data", amountWord}

	t.Setenv("DYNABI_LOG_ORDER", "sideways")
	_, err := execute(t, call...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")

	cfgPath := writeFile(t, "dynabi.yaml", "log-order: sideways\n")
	t.Setenv("DYNABI_LOG_ORDER", "")
	_, err = execute(t, append([]string{"--config", cfgPath}, call...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sideways")

	out, err := execute(t, append([]string{"--config", cfgPath, "--log-order", "positional"}, call...)...)
	require.NoError(t, err, "flags override the config file")
	assert.Contains(t, out, "1000")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "signature", transferFn)
	assert.Error(t, err)
}
