/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package scheduler_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/core/parallelmode"
	"techtradechain.com/txscheduler/module/core/scheduler"
	"techtradechain.com/txscheduler/module/core/serialmode"
	"techtradechain.com/txscheduler/module/executor"
	"techtradechain.com/txscheduler/module/metadata"
	"techtradechain.com/txscheduler/module/resolver"
	"techtradechain.com/txscheduler/protocol"
	"techtradechain.com/txscheduler/protocol/mock"
	"techtradechain.com/txscheduler/protocol/test"
)

func newResolver(t *testing.T) *resolver.Resolver {
	svc := metadata.NewService(metadata.NewMemoryStore(), &test.GoLogger{})
	require.NoError(t, svc.EnsureTransferMethod())
	r, err := resolver.NewResolver(svc, 0, &test.GoLogger{})
	require.NoError(t, err)
	return r
}

func newScheduler(t *testing.T, planner scheduler.Planner, opts ...scheduler.Option) *scheduler.TxScheduler {
	opts = append([]scheduler.Option{scheduler.WithLogger(&test.GoLogger{}), scheduler.WithPoolSize(4)}, opts...)
	s, err := scheduler.NewTxScheduler(newResolver(t), planner, opts...)
	require.NoError(t, err)
	t.Cleanup(s.Halt)
	return s
}

func transfers(pairs ...string) []*common.Transaction {
	txs := make([]*common.Transaction, 0, len(pairs))
	for i, p := range pairs {
		txs = append(txs, &common.Transaction{TxId: fmt.Sprint(i), From: p[:1], To: p[1:]})
	}
	return txs
}

func TestScheduleBatchesAndJobs(t *testing.T) {
	s := newScheduler(t, parallelmode.Planner{})
	sched, err := s.Schedule(context.Background(), transfers("AB", "CD", "AE"))
	require.NoError(t, err)

	assert.NotEmpty(t, sched.RunId)
	assert.Empty(t, sched.Rejected)
	require.Len(t, sched.Batches, 2)
	assert.Equal(t, "0,1", common.TxIds(sched.Batches[0].Txs))
	assert.Len(t, sched.Batches[0].Jobs, 2)
	assert.Equal(t, "2", common.TxIds(sched.Batches[1].Txs))
	assert.Equal(t, 1, sched.Batches[1].Jobs[0].Batch)
	assert.Equal(t, 3, sched.TxCount())
	assert.Equal(t, 3, sched.JobCount())
}

func TestScheduleRejectsUnregisteredMethod(t *testing.T) {
	s := newScheduler(t, parallelmode.Planner{})
	txs := transfers("AB", "CD")
	txs[1].Method = "dex.swap"

	sched, err := s.Schedule(context.Background(), txs)
	require.NoError(t, err)
	require.Len(t, sched.Rejected, 1)
	assert.Equal(t, "1", sched.Rejected[0].Tx.TxId)
	assert.ErrorIs(t, sched.Rejected[0].Err, resolver.ErrMethodNotRegistered)
	assert.Equal(t, 1, sched.TxCount())
	assert.Equal(t, scheduler.Stats{Blocks: 1, Scheduled: 1, Rejected: 1}, s.Stats())
}

func TestExecuteWithMockExecutor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := newScheduler(t, parallelmode.Planner{})
	sched, err := s.Schedule(context.Background(), transfers("AB", "CD", "AE"))
	require.NoError(t, err)

	exec := mock.NewMockTxExecutor(ctrl)
	exec.EXPECT().ExecuteJob(gomock.Any(), gomock.Any(), gomock.Any()).Times(3).DoAndReturn(
		func(_ context.Context, job *common.Job, commit protocol.CommitFunc) error {
			for _, rtx := range job.Txs {
				commit(rtx.Tx, &common.TxResult{Success: true})
			}
			if job.Txs[0].Tx.From == "C" {
				return fmt.Errorf("vm crashed")
			}
			return nil
		})

	var commits []string
	report, err := s.Execute(context.Background(), sched, exec, func(tx *common.Transaction, _ *common.TxResult) {
		commits = append(commits, tx.TxId)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.BatchesExecuted)
	assert.Len(t, report.Committed, 3)
	assert.Len(t, report.Results, 3)
	assert.Len(t, commits, 3)
	assert.Equal(t, "2", commits[2])
	require.Len(t, report.JobErrors, 1)
	assert.Contains(t, report.JobErrors[0].Error(), "vm crashed")
	assert.False(t, report.DeadlineExceeded)
}

func TestExecuteArguments(t *testing.T) {
	s := newScheduler(t, parallelmode.Planner{})
	_, err := s.Execute(context.Background(), nil, executor.NewTransferExecutor(&test.GoLogger{}), nil)
	assert.ErrorIs(t, err, scheduler.ErrNilSchedule)
	_, err = s.Execute(context.Background(), &common.Schedule{}, nil, nil)
	assert.ErrorIs(t, err, scheduler.ErrNilExecutor)
}

// barrierExecutor fails the test when a job starts while a job of an earlier batch is running
type barrierExecutor struct {
	t       *testing.T
	mu      sync.Mutex
	running map[int]int
	maxJobs atomic.Int64
	current atomic.Int64
}

func (e *barrierExecutor) ExecuteJob(_ context.Context, job *common.Job, commit protocol.CommitFunc) error {
	e.mu.Lock()
	for batch, n := range e.running {
		if batch != job.Batch && n > 0 {
			e.t.Errorf("batch %d started while batch %d runs", job.Batch, batch)
		}
	}
	e.running[job.Batch]++
	e.mu.Unlock()

	if n := e.current.Inc(); n > e.maxJobs.Load() {
		e.maxJobs.Store(n)
	}
	time.Sleep(2 * time.Millisecond)
	for _, rtx := range job.Txs {
		commit(rtx.Tx, &common.TxResult{Success: true})
	}
	e.current.Dec()

	e.mu.Lock()
	e.running[job.Batch]--
	e.mu.Unlock()
	return nil
}

func TestExecuteBatchBarrier(t *testing.T) {
	s := newScheduler(t, parallelmode.Planner{})
	var pairs []string
	for round := 0; round < 4; round++ {
		for _, p := range []string{"AB", "CD", "EF", "GH", "IJ"} {
			pairs = append(pairs, p)
		}
	}
	sched, err := s.Schedule(context.Background(), transfers(pairs...))
	require.NoError(t, err)
	require.Len(t, sched.Batches, 4)

	exec := &barrierExecutor{t: t, running: make(map[int]int)}
	report, err := s.Execute(context.Background(), sched, exec, nil)
	require.NoError(t, err)
	assert.Len(t, report.Committed, 20)
	assert.LessOrEqual(t, exec.maxJobs.Load(), int64(4))
}

// cancelingExecutor cancels the block context from inside the first job
type cancelingExecutor struct {
	cancel context.CancelFunc
	once   sync.Once
}

func (e *cancelingExecutor) ExecuteJob(ctx context.Context, job *common.Job, commit protocol.CommitFunc) error {
	e.once.Do(e.cancel)
	time.Sleep(10 * time.Millisecond)
	for _, rtx := range job.Txs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		commit(rtx.Tx, &common.TxResult{Success: true})
	}
	return nil
}

func TestExecuteDeadlineAbandonsBatches(t *testing.T) {
	log := test.NewRecordingLogger()
	s := newScheduler(t, parallelmode.Planner{}, scheduler.WithLogger(log))
	sched, err := s.Schedule(context.Background(), transfers("AB", "BC", "AD", "AE"))
	require.NoError(t, err)
	require.Len(t, sched.Batches, 3)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	report, err := s.Execute(ctx, sched, &cancelingExecutor{cancel: cancel}, nil)
	require.NoError(t, err)

	assert.True(t, report.DeadlineExceeded)
	assert.Equal(t, 1, report.BatchesExecuted)
	assert.Len(t, report.Committed, 2, "the started job completes")
	require.Len(t, report.Abandoned, 2)
	assert.Equal(t, "2", report.Abandoned[0].TxId)
	assert.Equal(t, "3", report.Abandoned[1].TxId)
	assert.Empty(t, report.JobErrors)
	assert.True(t, log.Contains(test.WARN, "abandon 2 batches with 2 txs"))
}

func TestSequentialEquivalence(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	const accounts = 12
	txs := func() []*common.Transaction {
		rr := rand.New(rand.NewSource(r.Int63()))
		out := make([]*common.Transaction, 300)
		for i := range out {
			out[i] = &common.Transaction{
				TxId: fmt.Sprint(i),
				From: fmt.Sprint("acc", rr.Intn(accounts)),
				To:   fmt.Sprint("acc", rr.Intn(accounts)),
				Args: map[string]string{executor.ArgAmount: fmt.Sprint(1 + rr.Intn(50))},
			}
		}
		return out
	}

	for round := 0; round < 5; round++ {
		block := txs()
		run := func(planner scheduler.Planner) map[string]string {
			e := executor.NewTransferExecutor(&test.GoLogger{})
			for i := 0; i < accounts; i++ {
				e.SetBalance(fmt.Sprint("acc", i), uint256.NewInt(1_000_000))
			}
			s := newScheduler(t, planner)
			_, report, err := s.Run(context.Background(), block, e, nil)
			require.NoError(t, err)
			require.Len(t, report.Committed, len(block))
			for _, res := range report.Results {
				require.True(t, res.Success)
			}
			return e.Balances()
		}
		assert.Equal(t, run(serialmode.Planner{}), run(parallelmode.Planner{}), "round %d", round)
	}
}

func TestJobOrderWithinBatch(t *testing.T) {
	e := executor.NewTransferExecutor(&test.GoLogger{})
	e.SetBalance("A", uint256.NewInt(5))
	s := newScheduler(t, parallelmode.Planner{})

	// B spends what A sends, both land in batch 0 and one job
	block := transfers("AB", "BC")
	block[0].Args = map[string]string{executor.ArgAmount: "5"}
	block[1].Args = map[string]string{executor.ArgAmount: "5"}
	sched, report, err := s.Run(context.Background(), block, e, nil)
	require.NoError(t, err)
	require.Len(t, sched.Batches, 1)
	require.Len(t, sched.Batches[0].Jobs, 1)
	assert.True(t, report.Results["1"].Success)
	assert.Equal(t, "5", e.Balances()["C"])
}

// A credit to an account does not order its later debit into a later batch. B spends in batch 0
// before A's credit to B lands in batch 1, a serial run commits both.
func TestCreditAfterReceiverDebit(t *testing.T) {
	run := func(planner scheduler.Planner) (*common.Schedule, *common.ExecutionReport, map[string]string) {
		e := executor.NewTransferExecutor(&test.GoLogger{})
		e.SetBalance("A", uint256.NewInt(2))
		s := newScheduler(t, planner)
		sched, report, err := s.Run(context.Background(), transfers("AX", "AB", "BC"), e, nil)
		require.NoError(t, err)
		return sched, report, e.Balances()
	}

	sched, report, balances := run(parallelmode.Planner{})
	require.Len(t, sched.Batches, 2)
	assert.Equal(t, "0,2", common.TxIds(sched.Batches[0].Txs))
	assert.Equal(t, "1", common.TxIds(sched.Batches[1].Txs))
	assert.False(t, report.Results["2"].Success)
	assert.Equal(t, "insufficient balance 0 < 1", report.Results["2"].Message)
	assert.Equal(t, map[string]string{"A": "0", "B": "1", "X": "1"}, balances)

	_, report, balances = run(serialmode.Planner{})
	assert.True(t, report.Results["2"].Success)
	assert.Equal(t, map[string]string{"A": "0", "B": "0", "C": "1", "X": "1"}, balances)
}

func TestMetricsAndHalt(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := newScheduler(t, serialmode.Planner{}, scheduler.WithRegisterer(reg))
	_, _, err := s.Run(context.Background(), transfers("AB", "BA"), executor.NewTransferExecutor(&test.GoLogger{}), nil)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "txscheduler_txs_total", "txscheduler_batches_per_block")
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	// a second scheduler on the same registry reuses the collectors
	s2 := newScheduler(t, serialmode.Planner{}, scheduler.WithRegisterer(reg))
	_, _, err = s2.Run(context.Background(), transfers("AB"), executor.NewTransferExecutor(&test.GoLogger{}), nil)
	require.NoError(t, err)

	s.Halt()
	s.Halt()
	_, err = s.Schedule(context.Background(), transfers("AB"))
	assert.ErrorIs(t, err, scheduler.ErrSchedulerHalted)
	_, err = s.Execute(context.Background(), &common.Schedule{}, executor.NewTransferExecutor(&test.GoLogger{}), nil)
	assert.ErrorIs(t, err, scheduler.ErrSchedulerHalted)
	assert.Equal(t, uint64(2), s.Stats().Committed)
}
