/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package parallelmode schedules blocks as conflict-free batches of concurrent jobs
package parallelmode

import (
	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/batcher"
	"techtradechain.com/txscheduler/module/core/provider"
	"techtradechain.com/txscheduler/module/core/provider/conf"
	"techtradechain.com/txscheduler/module/core/scheduler"
	"techtradechain.com/txscheduler/module/grouper"
	"techtradechain.com/txscheduler/protocol"
)

// ModePARALLEL name of the parallel mode
const ModePARALLEL = "PARALLEL"

var NilParallelProvider provider.CoreProvider = (*parallelProvider)(nil)

type parallelProvider struct {
}

func (pp *parallelProvider) NewTxScheduler(config *conf.CoreEngineConfig) (protocol.TxScheduler, error) {
	return scheduler.NewTxSchedulerWithConfig(config, Planner{})
}

// Planner levels transactions with the batcher and splits every batch with the grouper
type Planner struct{}

// Plan implements scheduler.Planner
func (Planner) Plan(txs []*common.ResolvedTx) []*common.Batch {
	levels := batcher.Process(txs)
	batches := make([]*common.Batch, 0, len(levels))
	for i, batchTxs := range levels {
		batches = append(batches, &common.Batch{Index: i, Txs: batchTxs, Jobs: grouper.Jobs(i, batchTxs)})
	}
	return batches
}
