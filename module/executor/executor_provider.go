/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package executor keeps the job executors by type
package executor

import (
	"strings"

	"techtradechain.com/txscheduler/protocol"
)

// Provider builds a job executor
type Provider func(log protocol.Logger) (protocol.TxExecutor, error)

var executorProviders = make(map[string]Provider)

// RegisterExecutorProvider registers f for type t, t is case-insensitive
func RegisterExecutorProvider(t string, f Provider) {
	executorProviders[strings.ToUpper(t)] = f
}

// GetExecutorProvider returns the provider of t, nil if none
func GetExecutorProvider(t string) Provider {
	provider, ok := executorProviders[strings.ToUpper(t)]
	if !ok {
		return nil
	}
	return provider
}

const (
	// ExecutorTypeTransfer moves balances between accounts in memory
	ExecutorTypeTransfer = "TRANSFER"
)
