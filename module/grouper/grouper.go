/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package grouper splits transactions into jobs, the connected components of their resource keys
package grouper

import (
	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/resource"
)

// Process partitions txs into groups that share no resource key, exclusive or shared.
// Input order is kept inside a group, groups come in order of their first transaction.
// A transaction without keys forms a group of its own.
func Process(txs []*common.ResolvedTx) [][]*common.ResolvedTx {
	if len(txs) == 0 {
		return nil
	}
	ds := NewDisjointSet[resource.Key]()
	for _, tx := range txs {
		keys := tx.Keys()
		for i := range keys {
			ds.Union(keys[0], keys[i])
		}
	}

	var (
		groups [][]*common.ResolvedTx
		slot   = make(map[resource.Key]int)
	)
	for _, tx := range txs {
		keys := tx.Keys()
		if len(keys) == 0 {
			groups = append(groups, []*common.ResolvedTx{tx})
			continue
		}
		root := ds.Find(keys[0])
		idx, ok := slot[root]
		if !ok {
			idx = len(groups)
			slot[root] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], tx)
	}
	return groups
}

// Jobs wraps the groups of one batch into jobs
func Jobs(batch int, txs []*common.ResolvedTx) []*common.Job {
	groups := Process(txs)
	jobs := make([]*common.Job, 0, len(groups))
	for _, g := range groups {
		jobs = append(jobs, &common.Job{Batch: batch, Txs: g})
	}
	return jobs
}
