/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

// Job is a connected cluster of transactions of one batch, executed serially by one worker
type Job struct {
	Batch int
	Txs   []*ResolvedTx
}

// Batch is a barrier, its jobs run concurrently and batch N+1 waits for batch N
type Batch struct {
	Index int
	Txs   []*ResolvedTx
	Jobs  []*Job
}

// Rejection records a transaction that could not be scheduled
type Rejection struct {
	Tx  *Transaction
	Err error
}

// Schedule is the ordered batch/job structure of a candidate block
type Schedule struct {
	RunId    string
	Batches  []*Batch
	Rejected []*Rejection
}

// TxCount returns the number of scheduled transactions
func (s *Schedule) TxCount() int {
	n := 0
	for _, b := range s.Batches {
		n += len(b.Txs)
	}
	return n
}

// JobCount returns the number of jobs over all batches
func (s *Schedule) JobCount() int {
	n := 0
	for _, b := range s.Batches {
		n += len(b.Jobs)
	}
	return n
}

// ExecutionReport is what actually happened when a schedule was executed
type ExecutionReport struct {
	RunId string
	// Committed in commit order
	Committed []*Transaction
	Results   map[string]*TxResult
	// Abandoned holds the transactions of batches never started
	Abandoned        []*Transaction
	BatchesExecuted  int
	JobErrors        []error
	DeadlineExceeded bool
}
