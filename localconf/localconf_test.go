/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package localconf

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYml = `
log:
  system:
    log_level_default: WARN
    log_levels:
      scheduler: DEBUG
    log_in_console: true
scheduler:
  mode: serial
  worker_pool_size: 4
  block_deadline: 1500ms
store:
  type: leveldb
  path: data/metadata
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "txscheduler.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYml), 0600))

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "serial", c.SchedulerConfig.Mode)
	assert.Equal(t, 4, c.SchedulerConfig.WorkerPoolSize)
	assert.Equal(t, 1500*time.Millisecond, c.SchedulerConfig.BlockDeadline)
	assert.Equal(t, runtime.NumCPU(), c.SchedulerConfig.ResolveParallelism)
	assert.Equal(t, StoreTypeLevelDB, c.StoreConfig.Type)
	assert.Equal(t, filepath.Join(dir, "data/metadata"), c.StoreConfig.Path)
	assert.Equal(t, "WARN", c.LogConfig.SystemLog.LogLevelDefault)
	assert.Equal(t, "DEBUG", c.LogConfig.SystemLog.LevelOf("SCHEDULER"))
	assert.Equal(t, "TRANSFER", c.ExecutorConfig.Type)
	assert.Equal(t, uint(3), c.StoreConfig.OpenRetries)
}

func TestLoad_OpenRetriesDisabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "txscheduler.yml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: badger\n  open_retries: 0\n"), 0600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreTypeBadger, c.StoreConfig.Type)
	assert.Equal(t, uint(0), c.StoreConfig.OpenRetries)
	assert.Equal(t, SchedulerModeParallel, c.SchedulerConfig.Mode)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}

func TestInitLocalConfig_Default(t *testing.T) {
	ConfigFilepath = ""
	require.NoError(t, InitLocalConfig())
	assert.Equal(t, SchedulerModeParallel, TxSchedulerConfig.SchedulerConfig.Mode)
	assert.Equal(t, StoreTypeMemory, TxSchedulerConfig.StoreConfig.Type)
	assert.Equal(t, uint(3), TxSchedulerConfig.StoreConfig.OpenRetries)

	s, err := TxSchedulerConfig.PrettyJson()
	require.NoError(t, err)
	assert.Contains(t, s, `"mode": "PARALLEL"`)
}
