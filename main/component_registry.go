/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"techtradechain.com/txscheduler/module/executor"
	"techtradechain.com/txscheduler/protocol"
)

func init() {
	// executor
	executor.RegisterExecutorProvider(
		executor.ExecutorTypeTransfer,
		func(log protocol.Logger) (protocol.TxExecutor, error) {
			return executor.NewTransferExecutor(log), nil
		})
}
