/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package scheduler drives the execution of a candidate block, batch after batch,
// with the jobs of a batch running concurrently on a worker pool.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/logger"
	"techtradechain.com/txscheduler/module/resolver"
	"techtradechain.com/txscheduler/protocol"
)

const (
	outcomeScheduled = "scheduled"
	outcomeRejected  = "rejected"
	outcomeCommitted = "committed"
	outcomeAbandoned = "abandoned"
)

// Planner turns resolved transactions into ordered batches of jobs
type Planner interface {
	Plan(txs []*common.ResolvedTx) []*common.Batch
}

var _ protocol.TxScheduler = (*TxScheduler)(nil)

// Stats counts what a TxScheduler did since it was created
type Stats struct {
	Blocks    uint64
	Scheduled uint64
	Rejected  uint64
	Committed uint64
	Abandoned uint64
}

// TxScheduler schedules and executes candidate blocks
type TxScheduler struct {
	opt      Options
	resolver protocol.ResourceResolver
	planner  Planner
	pool     *ants.Pool
	log      protocol.Logger
	metrics  *metrics

	halted    atomic.Bool
	blocks    atomic.Uint64
	scheduled atomic.Uint64
	rejected  atomic.Uint64
	committed atomic.Uint64
	abandoned atomic.Uint64
}

// NewTxScheduler creates a TxScheduler.
// Uses the default options if no additional options are provided.
func NewTxScheduler(r protocol.ResourceResolver, planner Planner, opts ...Option) (*TxScheduler, error) {
	opt := defaultOptions()
	for _, o := range opts {
		o(&opt)
	}
	if opt.logger == nil {
		opt.logger = logger.GetLogger(logger.MODULE_SCHEDULER)
	}
	pool, err := ants.NewPool(opt.poolSize)
	if err != nil {
		return nil, errors.Wrap(err, "create worker pool")
	}
	s := &TxScheduler{
		opt:      opt,
		resolver: r,
		planner:  planner,
		pool:     pool,
		log:      opt.logger,
		metrics:  newMetrics(opt.registerer),
	}
	s.log.Infof("tx scheduler created, %s", opt.String())
	return s, nil
}

// Schedule implements protocol.TxScheduler.
//
// The Order of every transaction is set to its position in txs. Transactions that can not be
// resolved are rejected and never reach a batch.
func (s *TxScheduler) Schedule(ctx context.Context, txs []*common.Transaction) (*common.Schedule, error) {
	if s.halted.Load() {
		return nil, ErrSchedulerHalted
	}
	start := time.Now()
	runId := uuid.NewString()
	for i, tx := range txs {
		tx.Order = i
	}

	resolved, rejected, err := resolver.ResolveAll(ctx, s.resolver, txs, s.opt.resolveParallelism)
	if err != nil {
		return nil, errors.Wrapf(err, "run %s: resolve transactions", runId)
	}
	for _, rej := range rejected {
		s.log.Warnf("[%s] reject tx %s, %s", runId, rej.Tx.TxId, rej.Err)
	}

	batches := s.planner.Plan(resolved)
	sched := &common.Schedule{RunId: runId, Batches: batches, Rejected: rejected}

	s.blocks.Inc()
	s.scheduled.Add(uint64(len(resolved)))
	s.rejected.Add(uint64(len(rejected)))
	s.metrics.txs.WithLabelValues(outcomeScheduled).Add(float64(len(resolved)))
	s.metrics.txs.WithLabelValues(outcomeRejected).Add(float64(len(rejected)))
	s.metrics.batchesPerRun.Observe(float64(len(batches)))
	for _, b := range batches {
		s.metrics.jobsPerBatch.Observe(float64(len(b.Jobs)))
	}
	elapsed := time.Since(start)
	s.metrics.scheduleTime.Observe(elapsed.Seconds())
	s.log.Infof("[%s] scheduled %d txs into %d batches and %d jobs, rejected %d, time used %v",
		runId, len(resolved), len(batches), sched.JobCount(), len(rejected), elapsed)
	return sched, nil
}

// Execute implements protocol.TxScheduler.
//
// Batches run one after another. A batch is only started while ctx is not done; once it is,
// the remaining batches are abandoned and the report says so. A started job always runs to
// completion, it is not bound to ctx. commit may be nil, calls to it are serialized.
func (s *TxScheduler) Execute(ctx context.Context, sched *common.Schedule, executor protocol.TxExecutor,
	commit protocol.CommitFunc) (*common.ExecutionReport, error) {
	if s.halted.Load() {
		return nil, ErrSchedulerHalted
	}
	if sched == nil {
		return nil, ErrNilSchedule
	}
	if executor == nil {
		return nil, ErrNilExecutor
	}
	start := time.Now()
	report := &common.ExecutionReport{
		RunId:   sched.RunId,
		Results: make(map[string]*common.TxResult, sched.TxCount()),
	}

	var mu sync.Mutex
	commitFn := func(tx *common.Transaction, result *common.TxResult) {
		mu.Lock()
		defer mu.Unlock()
		report.Committed = append(report.Committed, tx)
		report.Results[tx.TxId] = result
		if commit != nil {
			commit(tx, result)
		}
	}
	jobErr := func(err error) {
		mu.Lock()
		report.JobErrors = append(report.JobErrors, err)
		mu.Unlock()
	}

	jobCtx := context.WithoutCancel(ctx)
	for i, batch := range sched.Batches {
		if ctx.Err() != nil {
			report.DeadlineExceeded = true
			for _, rest := range sched.Batches[i:] {
				for _, tx := range rest.Txs {
					report.Abandoned = append(report.Abandoned, tx.Tx)
				}
			}
			s.log.Warnf("[%s] %s before batch %d, abandon %d batches with %d txs",
				sched.RunId, ctx.Err(), batch.Index, len(sched.Batches)-i, len(report.Abandoned))
			break
		}
		s.runBatch(jobCtx, sched.RunId, batch, executor, commitFn, jobErr)
		report.BatchesExecuted++
	}

	s.committed.Add(uint64(len(report.Committed)))
	s.abandoned.Add(uint64(len(report.Abandoned)))
	s.metrics.txs.WithLabelValues(outcomeCommitted).Add(float64(len(report.Committed)))
	s.metrics.txs.WithLabelValues(outcomeAbandoned).Add(float64(len(report.Abandoned)))
	elapsed := time.Since(start)
	s.metrics.executeTime.Observe(elapsed.Seconds())
	s.log.Infof("[%s] executed %d/%d batches, committed %d txs, abandoned %d, job errors %d, time used %v",
		sched.RunId, report.BatchesExecuted, len(sched.Batches), len(report.Committed),
		len(report.Abandoned), len(report.JobErrors), elapsed)
	return report, nil
}

// runBatch runs every job of batch on the pool and returns when all of them finished
func (s *TxScheduler) runBatch(ctx context.Context, runId string, batch *common.Batch,
	executor protocol.TxExecutor, commit protocol.CommitFunc, jobErr func(error)) {
	wg := sync.WaitGroup{}
	for _, job := range batch.Jobs {
		job := job
		wg.Add(1)
		if err := s.pool.Submit(func() {
			defer wg.Done()
			if err := executor.ExecuteJob(ctx, job, commit); err != nil {
				s.log.Warnf("[%s] job [%s] of batch %d failed, %s", runId, common.TxIds(job.Txs), batch.Index, err)
				jobErr(errors.Wrapf(err, "batch %d job [%s]", batch.Index, common.TxIds(job.Txs)))
			}
		}); err != nil {
			wg.Done()
			s.log.Warnf("[%s] failed to submit job to pool: %s", runId, err)
			jobErr(errors.Wrapf(err, "batch %d job [%s] not submitted", batch.Index, common.TxIds(job.Txs)))
		}
	}
	wg.Wait()
	s.log.Debugf("[%s] batch %d done, %d txs in %d jobs", runId, batch.Index, len(batch.Txs), len(batch.Jobs))
}

// Run schedules txs and executes the schedule
func (s *TxScheduler) Run(ctx context.Context, txs []*common.Transaction, executor protocol.TxExecutor,
	commit protocol.CommitFunc) (*common.Schedule, *common.ExecutionReport, error) {
	sched, err := s.Schedule(ctx, txs)
	if err != nil {
		return nil, nil, err
	}
	report, err := s.Execute(ctx, sched, executor, commit)
	return sched, report, err
}

// Stats returns the counters of s
func (s *TxScheduler) Stats() Stats {
	return Stats{
		Blocks:    s.blocks.Load(),
		Scheduled: s.scheduled.Load(),
		Rejected:  s.rejected.Load(),
		Committed: s.committed.Load(),
		Abandoned: s.abandoned.Load(),
	}
}

// Halt implements protocol.TxScheduler, it releases the worker pool
func (s *TxScheduler) Halt() {
	if s.halted.CompareAndSwap(false, true) {
		s.pool.Release()
		s.log.Infof("tx scheduler halted, %+v", s.Stats())
	}
}
