/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package common holds the transaction and schedule types shared by the scheduler modules.
package common

import (
	"fmt"
	"strings"

	"techtradechain.com/txscheduler/module/resource"
)

// Account is an account address
type Account = string

// MethodId is a qualified contract method name, e.g. token.transfer
type MethodId = string

// Transaction is a transaction of a candidate block
type Transaction struct {
	TxId   string            `json:"tx_id" yaml:"tx_id"`
	From   Account           `json:"from" yaml:"from"`
	To     Account           `json:"to" yaml:"to"`
	Method MethodId          `json:"method,omitempty" yaml:"method"`
	Args   map[string]string `json:"args,omitempty" yaml:"args"`
	// Order is the position in the candidate block, the sole tie-breaker
	Order int `json:"order" yaml:"-"`
}

// MethodName returns the invoked method, resource.TransferMethod when none is set
func (tx *Transaction) MethodName() MethodId {
	if tx.Method == "" {
		return resource.TransferMethod
	}
	return tx.Method
}

// String prints from->to, prefixed with the method for contract calls
func (tx *Transaction) String() string {
	if tx.Method == "" || tx.Method == resource.TransferMethod {
		return tx.From + "->" + tx.To
	}
	return fmt.Sprintf("%s(%s->%s)", tx.Method, tx.From, tx.To)
}

// ResolvedTx is a transaction together with the resource keys it instantiates
type ResolvedTx struct {
	Tx *Transaction
	// Exclusive keys are claimed, two transactions holding one never share a batch
	Exclusive []resource.Key
	// Shared keys are references only, they link transactions into one job
	Shared []resource.Key
}

// Keys returns exclusive and shared keys together
func (r *ResolvedTx) Keys() []resource.Key {
	keys := make([]resource.Key, 0, len(r.Exclusive)+len(r.Shared))
	keys = append(keys, r.Exclusive...)
	return append(keys, r.Shared...)
}

// TxResult is the outcome of executing one transaction
type TxResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// TxIds joins the ids of txs, used in logs
func TxIds(txs []*ResolvedTx) string {
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.Tx.TxId
	}
	return strings.Join(ids, ",")
}
