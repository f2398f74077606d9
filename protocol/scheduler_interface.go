/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protocol

import (
	"context"

	"techtradechain.com/txscheduler/common"
)

// TxScheduler schedules a transaction batch into ordered batches of independent jobs,
// and runs the jobs with a given executor.
// It can only be called by the block proposer.
type TxScheduler interface {
	// Schedule resolves the resources of txBatch and levels it into batches of jobs.
	// Transactions whose resources can not be resolved are returned as rejections.
	Schedule(ctx context.Context, txBatch []*common.Transaction) (*common.Schedule, error)
	// Execute runs the schedule batch by batch, the jobs of one batch concurrently.
	// When ctx is done the batches not started yet are abandoned.
	Execute(ctx context.Context, schedule *common.Schedule, executor TxExecutor,
		commit CommitFunc) (*common.ExecutionReport, error)
	// Halt To halt scheduler and release worker resources.
	Halt()
}

// CommitFunc is called once per executed transaction
type CommitFunc func(tx *common.Transaction, result *common.TxResult)

// TxExecutor runs the transactions of one job serially, in order.
// It must call commit for every transaction it executed.
type TxExecutor interface {
	ExecuteJob(ctx context.Context, job *common.Job, commit CommitFunc) error
}

// ResourceResolver resolves the exclusive and shared resource keys of a transaction
type ResourceResolver interface {
	Resolve(tx *common.Transaction) (*common.ResolvedTx, error)
}
