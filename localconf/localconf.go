/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package localconf loads the node local config file.
package localconf

import (
	"path/filepath"
	"runtime"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flag names shared by the commands
const (
	FlagNameOfConfigFilepath      = "conf-file"
	FlagNameShortOfConfigFilepath = "c"
)

var (
	// ConfigFilepath is set by the conf-file flag
	ConfigFilepath = ""
	// TxSchedulerConfig is the loaded config
	TxSchedulerConfig = DefaultConfig()
)

const defaultOpenRetries = 3

// DefaultConfig returns the config used when no file is given
func DefaultConfig() *CMConfig {
	c := &CMConfig{StoreConfig: StoreConfig{OpenRetries: defaultOpenRetries}}
	c.setDefaults()
	return c
}

func (c *CMConfig) setDefaults() {
	if c.SchedulerConfig.Mode == "" {
		c.SchedulerConfig.Mode = SchedulerModeParallel
	}
	if c.SchedulerConfig.WorkerPoolSize <= 0 {
		c.SchedulerConfig.WorkerPoolSize = runtime.NumCPU()
	}
	if c.SchedulerConfig.ResolveParallelism <= 0 {
		c.SchedulerConfig.ResolveParallelism = runtime.NumCPU()
	}
	if c.SchedulerConfig.MetadataCacheSize <= 0 {
		c.SchedulerConfig.MetadataCacheSize = 1024
	}
	if c.SchedulerConfig.BlockDeadline <= 0 {
		c.SchedulerConfig.BlockDeadline = 10 * time.Second
	}
	if c.StoreConfig.Type == "" {
		c.StoreConfig.Type = StoreTypeMemory
	}
	if c.ExecutorConfig.Type == "" {
		c.ExecutorConfig.Type = "TRANSFER"
	}
}

// InitLocalConfig loads ConfigFilepath into TxSchedulerConfig,
// the defaults are kept when no file is given.
func InitLocalConfig() error {
	if ConfigFilepath == "" {
		TxSchedulerConfig = DefaultConfig()
		return nil
	}
	c, err := Load(ConfigFilepath)
	if err != nil {
		return err
	}
	TxSchedulerConfig = c
	return nil
}

// Load reads a yaml config file
func Load(path string) (*CMConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}
	// keys absent from the file keep their defaults, an explicit zero stays zero
	c := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           c,
	})
	if err != nil {
		return nil, err
	}
	if err = decoder.Decode(v.AllSettings()); err != nil {
		return nil, errors.Wrapf(err, "unmarshal config file %s", path)
	}
	if c.StoreConfig.Path != "" && !filepath.IsAbs(c.StoreConfig.Path) {
		// store paths are relative to the config file
		c.StoreConfig.Path = filepath.Join(filepath.Dir(path), c.StoreConfig.Path)
	}
	c.setDefaults()
	return c, nil
}

// InitFlagSet returns the flags understood by InitLocalConfig
func InitFlagSet() *pflag.FlagSet {
	flags := &pflag.FlagSet{}
	flags.StringVarP(&ConfigFilepath, FlagNameOfConfigFilepath, FlagNameShortOfConfigFilepath, ConfigFilepath,
		"specify config file path, if not set, default config is used")
	return flags
}
