/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package batcher levels transactions into ordered batches without exclusive key conflicts
package batcher

import (
	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/resource"
)

// Levels returns the batch index of every transaction of txs, by position.
//
// A transaction goes one batch after the latest batch holding any of its exclusive keys,
// batch 0 when none of them was seen. Shared keys never push a transaction later.
func Levels(txs []*common.ResolvedTx) []int {
	levels := make([]int, len(txs))
	last := make(map[resource.Key]int)
	for i, tx := range txs {
		level := 0
		for _, k := range tx.Exclusive {
			if l, ok := last[k]; ok && l+1 > level {
				level = l + 1
			}
		}
		for _, k := range tx.Exclusive {
			last[k] = level
		}
		levels[i] = level
	}
	return levels
}

// Process splits txs into batches, batch 0 first, input order kept inside a batch.
// Two transactions of one batch never hold the same exclusive key.
func Process(txs []*common.ResolvedTx) [][]*common.ResolvedTx {
	if len(txs) == 0 {
		return nil
	}
	var batches [][]*common.ResolvedTx
	for i, level := range Levels(txs) {
		for len(batches) <= level {
			batches = append(batches, nil)
		}
		batches[level] = append(batches[level], txs[i])
	}
	return batches
}
