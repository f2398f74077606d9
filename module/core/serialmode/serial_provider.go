/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package serialmode executes a block as one job in block order, the reference for parallel mode
package serialmode

import (
	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/core/provider"
	"techtradechain.com/txscheduler/module/core/provider/conf"
	"techtradechain.com/txscheduler/module/core/scheduler"
	"techtradechain.com/txscheduler/protocol"
)

// ModeSERIAL name of the serial mode
const ModeSERIAL = "SERIAL"

var NilSerialProvider provider.CoreProvider = (*serialProvider)(nil)

type serialProvider struct {
}

func (sp *serialProvider) NewTxScheduler(config *conf.CoreEngineConfig) (protocol.TxScheduler, error) {
	return scheduler.NewTxSchedulerWithConfig(config, Planner{})
}

// Planner puts every transaction into a single job of a single batch
type Planner struct{}

// Plan implements scheduler.Planner
func (Planner) Plan(txs []*common.ResolvedTx) []*common.Batch {
	if len(txs) == 0 {
		return nil
	}
	return []*common.Batch{{
		Index: 0,
		Txs:   txs,
		Jobs:  []*common.Job{{Batch: 0, Txs: txs}},
	}}
}
