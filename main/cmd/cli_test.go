/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hpcloud/tail"
	"github.com/sebdah/goldie/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/module/blockchain"
	"techtradechain.com/txscheduler/module/executor"
	"techtradechain.com/txscheduler/protocol"
	"techtradechain.com/txscheduler/protocol/test"
)

func init() {
	executor.RegisterExecutorProvider(executor.ExecutorTypeTransfer, func(log protocol.Logger) (protocol.TxExecutor, error) {
		return executor.NewTransferExecutor(log), nil
	})
}

func runCmd(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Cleanup(func() {
		localconf.ConfigFilepath = ""
	})
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

// tempConfig copies the test config into a temp dir so that its store lands there
func tempConfig(t *testing.T) string {
	data, err := os.ReadFile("testdata/txscheduler.yml")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "txscheduler.yml")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func assertGolden(t *testing.T, name, out string) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(out))
}

func TestScheduleCMD(t *testing.T) {
	out := runCmd(t, ScheduleCMD(), "-f", "testdata/block.yml")
	assertGolden(t, "schedule", out)
}

func TestScheduleCMDExecute(t *testing.T) {
	out := runCmd(t, ScheduleCMD(), "-f", "testdata/block.yml", "--execute")
	assertGolden(t, "schedule_execute", out)
}

func TestScheduleCMDJson(t *testing.T) {
	out := runCmd(t, ScheduleCMD(), "-f", "testdata/block.yml", "--execute", "--json")
	view := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, []interface{}{
		[]interface{}{[]interface{}{"1", "2", "4"}},
		[]interface{}{[]interface{}{"3"}},
	}, view["batches"])
	assert.Equal(t, map[string]interface{}{"4": "insufficient balance 10 < 500"}, view["failed"])
	assert.Equal(t, "80", view["balances"].(map[string]interface{})["A"])
}

func TestScheduleCMDContracts(t *testing.T) {
	out := runCmd(t, ScheduleCMD(), "-f", "testdata/contract_block.yml", "--contracts", "testdata/contracts.yml")
	assertGolden(t, "schedule_contracts", out)
}

func TestScheduleCMDMissingBlock(t *testing.T) {
	cmd := ScheduleCMD()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"-f", "testdata/absent.yml"})
	assert.Error(t, cmd.Execute())
}

func TestRegisterCMDPersists(t *testing.T) {
	conf := tempConfig(t)
	out := runCmd(t, RegisterCMD(), "-c", conf, "--contracts", "testdata/contracts.yml")
	assert.Contains(t, out, "call cycle detected: N -> P -> O -> N\n")
	assert.Contains(t, out, "registered: token.balance token.transferFrom\n")
	assert.Contains(t, out, "unresolved: P O N\n")
	assert.Contains(t, out, "token.transferFrom: {allowance/AccountSpecific, balance/AccountSpecific}\n")
	assert.Contains(t, out, "transfer: {balance/AccountSpecific}\n")

	out = runCmd(t, RegisterCMD(), "-c", conf, "--contracts", "testdata/contracts.yml")
	assert.Contains(t, out, "registered: \n")
	assert.Contains(t, out, "token.balance: {balance/AccountSpecific}\n")
}

func TestConfigCMD(t *testing.T) {
	out := runCmd(t, ConfigCMD(), "-c", tempConfig(t))
	view := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	scheduler := view["scheduler"].(map[string]interface{})
	assert.Equal(t, "parallel", scheduler["mode"])
	assert.EqualValues(t, 2, scheduler["worker_pool_size"])
	assert.Equal(t, "leveldb", view["store"].(map[string]interface{})["type"])
}

func TestVersionCMD(t *testing.T) {
	out := runCmd(t, VersionCMD())
	assert.Contains(t, out, "TxScheduler Version: "+blockchain.CurrentVersion)
}

func TestFollowerCutsBlocks(t *testing.T) {
	server := blockchain.NewTxSchedulerServer(localconf.DefaultConfig())
	require.NoError(t, server.Init())
	defer server.Stop()
	te := server.Executor().(*executor.TransferExecutor)

	log := test.NewRecordingLogger()
	f := &follower{server: server, blockSize: 2, interval: time.Hour, log: log}
	lines := make(chan *tail.Line, 8)
	for _, text := range []string{
		`{"tx_id":"1","from":"A","to":"B","args":{"amount":"0"}}`,
		`not json`,
		``,
		`{"tx_id":"2","from":"B","to":"C","args":{"amount":"0"}}`,
		`{"tx_id":"3","from":"C","to":"D","args":{"amount":"0"}}`,
	} {
		lines <- &tail.Line{Text: text}
	}
	close(lines)

	require.NoError(t, f.follow(lines, make(chan error)))
	assert.Equal(t, 2, f.blocks)
	assert.Empty(t, f.pending)
	assert.True(t, log.Contains(test.WARN, "skip malformed tx line"))
	executed, failed := te.Executed()
	assert.EqualValues(t, 3, executed)
	assert.EqualValues(t, 0, failed)
}

func TestFollowerStops(t *testing.T) {
	server := blockchain.NewTxSchedulerServer(localconf.DefaultConfig())
	require.NoError(t, server.Init())
	defer server.Stop()

	f := &follower{server: server, blockSize: 10, interval: time.Hour, log: &test.GoLogger{}}
	lines := make(chan *tail.Line, 1)
	lines <- &tail.Line{Text: `{"tx_id":"1","from":"A","to":"B","args":{"amount":"0"}}`}
	stop := make(chan error, 1)
	go func() {
		time.Sleep(50 * time.Millisecond)
		stop <- nil
	}()
	require.NoError(t, f.follow(lines, stop))
	assert.Equal(t, 1, f.blocks)
}
