/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/logger"
)

const (
	flagNameOfConfigFilepath = localconf.FlagNameOfConfigFilepath
	flagNameOfBlockFile      = "block-file"
	flagNameOfContracts      = "contracts"
	flagNameOfExecute        = "execute"
	flagNameOfJson           = "json"
	flagNameOfTxLog          = "tx-log"
	flagNameOfBlockSize      = "block-size"
	flagNameOfBlockInterval  = "block-interval"
	flagNameOfMetricsAddr    = "metrics-addr"
	flagNameOfTraceMemory    = "trace-memory"
)

// cliOptions holds the values of every flag, each command gets its own copy
type cliOptions struct {
	blockFile     string
	contracts     string
	execute       bool
	json          bool
	txLog         string
	blockSize     int
	blockInterval time.Duration
	metricsAddr   string
	traceMemory   string
}

func (o *cliOptions) flagSet() *pflag.FlagSet {
	flags := localconf.InitFlagSet()
	flags.StringVarP(&o.blockFile, flagNameOfBlockFile, "f", "", "candidate block file, yaml with balances and txs")
	flags.StringVar(&o.contracts, flagNameOfContracts, "", "contract methods file, yaml with methods")
	flags.BoolVar(&o.execute, flagNameOfExecute, false, "execute the schedule with the configured executor")
	flags.BoolVar(&o.json, flagNameOfJson, false, "print the result as json")
	flags.StringVar(&o.txLog, flagNameOfTxLog, "", "transaction log to follow, one json transaction per line")
	flags.IntVar(&o.blockSize, flagNameOfBlockSize, 100, "max transactions of a block")
	flags.DurationVar(&o.blockInterval, flagNameOfBlockInterval, time.Second,
		"cut a block after this interval even if it is not full")
	flags.StringVar(&o.metricsAddr, flagNameOfMetricsAddr, "", "serve prometheus metrics on this address")
	flags.StringVar(&o.traceMemory, flagNameOfTraceMemory, "", "write memory usage every second to this csv file")
	return flags
}

// attachFlags adds the flags named by names to cmd
func attachFlags(cmd *cobra.Command, o *cliOptions, names []string) {
	flags := o.flagSet()
	for _, name := range names {
		if flag := flags.Lookup(name); flag != nil {
			cmd.Flags().AddFlag(flag)
		}
	}
}

func initLocalConfig() error {
	if err := localconf.InitLocalConfig(); err != nil {
		return err
	}
	logger.SetLogConfig(&localconf.TxSchedulerConfig.LogConfig)
	return nil
}
