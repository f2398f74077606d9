/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package localconf

import (
	"encoding/json"
	"time"

	"github.com/tidwall/pretty"

	"techtradechain.com/txscheduler/logger"
)

// scheduler modes
const (
	SchedulerModeParallel = "PARALLEL"
	SchedulerModeSerial   = "SERIAL"
)

// metadata store types
const (
	StoreTypeMemory  = "memory"
	StoreTypeLevelDB = "leveldb"
	StoreTypeBadger  = "badger"
)

// SchedulerConfig configures the TxScheduler
type SchedulerConfig struct {
	Mode               string        `mapstructure:"mode" json:"mode"`
	WorkerPoolSize     int           `mapstructure:"worker_pool_size" json:"worker_pool_size"`
	ResolveParallelism int           `mapstructure:"resolve_parallelism" json:"resolve_parallelism"`
	MetadataCacheSize  int           `mapstructure:"metadata_cache_size" json:"metadata_cache_size"`
	BlockDeadline      time.Duration `mapstructure:"block_deadline" json:"block_deadline"`
	EnableMetrics      bool          `mapstructure:"enable_metrics" json:"enable_metrics"`
}

// StoreConfig configures the function metadata store
type StoreConfig struct {
	Type string `mapstructure:"type" json:"type"`
	Path string `mapstructure:"path" json:"path"`
	// OpenRetries is how many times opening a locked database is retried, 0 disables retrying.
	// It is 3 when absent from the config file.
	OpenRetries uint `mapstructure:"open_retries" json:"open_retries"`
}

// ExecutorConfig selects the job executor
type ExecutorConfig struct {
	Type string `mapstructure:"type" json:"type"`
}

// CMConfig is the whole local config
type CMConfig struct {
	LogConfig       logger.LogConfig `mapstructure:"log" json:"log"`
	SchedulerConfig SchedulerConfig  `mapstructure:"scheduler" json:"scheduler"`
	StoreConfig     StoreConfig      `mapstructure:"store" json:"store"`
	ExecutorConfig  ExecutorConfig   `mapstructure:"executor" json:"executor"`
}

// PrettyJson returns the config as indented json
func (c *CMConfig) PrettyJson() (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(pretty.Pretty(data)), nil
}
