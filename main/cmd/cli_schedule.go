/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/hokaccha/go-prettyjson"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/module/blockchain"
	"techtradechain.com/txscheduler/module/executor"
)

// ScheduleCMD schedules a candidate block read from a file
func ScheduleCMD() *cobra.Command {
	o := &cliOptions{}
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a candidate block",
		Long:  "Split a candidate block into batches of conflict-free jobs and optionally execute them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initLocalConfig(); err != nil {
				return err
			}
			return runSchedule(cmd, o)
		},
	}
	attachFlags(cmd, o, []string{
		flagNameOfConfigFilepath, flagNameOfBlockFile, flagNameOfContracts, flagNameOfExecute, flagNameOfJson,
	})
	_ = cmd.MarkFlagRequired(flagNameOfBlockFile)
	return cmd
}

func runSchedule(cmd *cobra.Command, o *cliOptions) error {
	block, err := loadBlock(o.blockFile)
	if err != nil {
		return err
	}
	s := blockchain.NewTxSchedulerServer(localconf.TxSchedulerConfig)
	if err = s.Init(); err != nil {
		return err
	}
	defer s.Stop()

	if o.contracts != "" {
		if _, err = registerContracts(s, o.contracts); err != nil {
			return err
		}
	}
	if err = applyBalances(s, block.Balances); err != nil {
		return err
	}

	var view *scheduleView
	if o.execute {
		sched, report, err := s.RunBlock(cmd.Context(), block.Txs, nil)
		if err != nil {
			return err
		}
		view = newScheduleView(sched)
		view.addReport(report)
		if te, ok := s.Executor().(*executor.TransferExecutor); ok {
			view.Balances = te.Balances()
		}
	} else {
		sched, err := s.Schedule(cmd.Context(), block.Txs)
		if err != nil {
			return err
		}
		view = newScheduleView(sched)
	}

	if o.json {
		f := prettyjson.NewFormatter()
		f.DisabledColor = true
		out, err := f.Marshal(view)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}
	view.print(cmd.OutOrStdout())
	return nil
}

// scheduleView is the printable form of a schedule and its execution
type scheduleView struct {
	// Batches lists the tx ids of every job of every batch
	Batches   [][][]string      `json:"batches"`
	Rejected  map[string]string `json:"rejected,omitempty"`
	Committed []string          `json:"committed,omitempty"`
	Failed    map[string]string `json:"failed,omitempty"`
	Abandoned []string          `json:"abandoned,omitempty"`
	Balances  map[string]string `json:"balances,omitempty"`

	rejectedOrder []string
	executed      bool
}

func txIds(txs []*common.Transaction) []string {
	return lo.Map(txs, func(tx *common.Transaction, _ int) string { return tx.TxId })
}

func newScheduleView(sched *common.Schedule) *scheduleView {
	v := &scheduleView{Batches: make([][][]string, 0, len(sched.Batches))}
	for _, b := range sched.Batches {
		jobs := make([][]string, 0, len(b.Jobs))
		for _, job := range b.Jobs {
			jobs = append(jobs, lo.Map(job.Txs, func(tx *common.ResolvedTx, _ int) string { return tx.Tx.TxId }))
		}
		v.Batches = append(v.Batches, jobs)
	}
	if len(sched.Rejected) > 0 {
		v.Rejected = make(map[string]string, len(sched.Rejected))
		for _, rej := range sched.Rejected {
			v.Rejected[rej.Tx.TxId] = rej.Err.Error()
			v.rejectedOrder = append(v.rejectedOrder, rej.Tx.TxId)
		}
	}
	return v
}

func (v *scheduleView) addReport(report *common.ExecutionReport) {
	v.executed = true
	committed := append([]*common.Transaction(nil), report.Committed...)
	// commit order within a batch depends on the workers
	sort.SliceStable(committed, func(i, j int) bool { return committed[i].Order < committed[j].Order })
	v.Committed = txIds(committed)
	for _, tx := range committed {
		if r := report.Results[tx.TxId]; r != nil && !r.Success {
			if v.Failed == nil {
				v.Failed = make(map[string]string)
			}
			v.Failed[tx.TxId] = r.Message
		}
	}
	v.Abandoned = txIds(report.Abandoned)
}

func (v *scheduleView) print(w io.Writer) {
	jobs := 0
	for _, b := range v.Batches {
		jobs += len(b)
	}
	fmt.Fprintf(w, "batches: %d, jobs: %d, rejected: %d\n", len(v.Batches), jobs, len(v.Rejected))
	for i, b := range v.Batches {
		groups := lo.Map(b, func(job []string, _ int) string { return "[" + strings.Join(job, " ") + "]" })
		fmt.Fprintf(w, "batch %d: %s\n", i, strings.Join(groups, " "))
	}
	for _, id := range v.rejectedOrder {
		fmt.Fprintf(w, "rejected %s: %s\n", id, v.Rejected[id])
	}
	if !v.executed {
		return
	}
	fmt.Fprintf(w, "committed: %s\n", strings.Join(v.Committed, " "))
	for _, id := range v.Committed {
		if msg, ok := v.Failed[id]; ok {
			fmt.Fprintf(w, "failed %s: %s\n", id, msg)
		}
	}
	if len(v.Abandoned) > 0 {
		fmt.Fprintf(w, "abandoned: %s\n", strings.Join(v.Abandoned, " "))
	}
	accounts := lo.Keys(v.Balances)
	sort.Strings(accounts)
	for _, account := range accounts {
		fmt.Fprintf(w, "balance %s: %s\n", account, v.Balances[account])
	}
}
