/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package executor

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/holiman/uint256"
	"go.uber.org/atomic"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/protocol"
)

// ArgAmount is the transaction argument holding the decimal amount to move
const ArgAmount = "amount"

var _ protocol.TxExecutor = (*TransferExecutor)(nil)

// TransferExecutor executes two-party transfers against in-memory balances.
//
// It takes no lock per account: the scheduler never runs two jobs touching the same
// sender balance at the same time. A failed transfer is committed with an unsuccessful result.
type TransferExecutor struct {
	balances sync.Map // common.Account -> *uint256.Int
	log      protocol.Logger
	executed atomic.Uint64
	failed   atomic.Uint64
}

// NewTransferExecutor creates a TransferExecutor with no balances
func NewTransferExecutor(log protocol.Logger) *TransferExecutor {
	return &TransferExecutor{log: log}
}

// SetBalance sets the balance of account
func (e *TransferExecutor) SetBalance(account common.Account, amount *uint256.Int) {
	e.balances.Store(account, new(uint256.Int).Set(amount))
}

// Balance returns a copy of the balance of account, zero when unknown
func (e *TransferExecutor) Balance(account common.Account) *uint256.Int {
	if v, ok := e.balances.Load(account); ok {
		return new(uint256.Int).Set(v.(*uint256.Int))
	}
	return uint256.NewInt(0)
}

// Balances returns a copy of every balance as decimal strings
func (e *TransferExecutor) Balances() map[common.Account]string {
	out := make(map[common.Account]string)
	e.balances.Range(func(k, v interface{}) bool {
		out[k.(common.Account)] = v.(*uint256.Int).Dec()
		return true
	})
	return out
}

// Accounts returns every account with a balance, sorted
func (e *TransferExecutor) Accounts() []common.Account {
	var accounts []common.Account
	e.balances.Range(func(k, _ interface{}) bool {
		accounts = append(accounts, k.(common.Account))
		return true
	})
	sort.Strings(accounts)
	return accounts
}

// Executed returns how many transactions were executed and how many of them failed
func (e *TransferExecutor) Executed() (uint64, uint64) {
	return e.executed.Load(), e.failed.Load()
}

// ExecuteJob implements protocol.TxExecutor, the transactions of job run in order
func (e *TransferExecutor) ExecuteJob(_ context.Context, job *common.Job, commit protocol.CommitFunc) error {
	for _, rtx := range job.Txs {
		result := e.apply(rtx.Tx)
		e.executed.Inc()
		if !result.Success {
			e.failed.Inc()
			e.log.Debugf("tx %s failed, %s", rtx.Tx.TxId, result.Message)
		}
		commit(rtx.Tx, result)
	}
	return nil
}

func (e *TransferExecutor) apply(tx *common.Transaction) *common.TxResult {
	amount, err := parseAmount(tx.Args[ArgAmount])
	if err != nil {
		return &common.TxResult{Message: err.Error()}
	}
	if tx.To == "" {
		return &common.TxResult{Message: "no receiver"}
	}
	from := e.Balance(tx.From)
	if from.Lt(amount) {
		return &common.TxResult{Message: fmt.Sprintf("insufficient balance %s < %s", from.Dec(), amount.Dec())}
	}
	if tx.From == tx.To {
		return &common.TxResult{Success: true}
	}
	to := e.Balance(tx.To)
	sum, overflow := new(uint256.Int).AddOverflow(to, amount)
	if overflow {
		return &common.TxResult{Message: "receiver balance overflow"}
	}
	e.balances.Store(tx.From, from.Sub(from, amount))
	e.balances.Store(tx.To, sum)
	return &common.TxResult{Success: true}
}

// parseAmount reads a decimal amount, an absent amount moves 1
func parseAmount(s string) (*uint256.Int, error) {
	if s == "" {
		return uint256.NewInt(1), nil
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %s", s, err)
	}
	return amount, nil
}
