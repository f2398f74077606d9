/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/protocol"
)

// ResolveAll resolves txs with at most parallelism concurrent lookups.
// Resolved transactions come back in input order, failures become rejections.
// The only error is the context error when ctx is done before all lookups ran.
func ResolveAll(ctx context.Context, r protocol.ResourceResolver, txs []*common.Transaction,
	parallelism int) ([]*common.ResolvedTx, []*common.Rejection, error) {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	resolved := make([]*common.ResolvedTx, len(txs))
	errs := make([]error, len(txs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, tx := range txs {
		if gctx.Err() != nil {
			break
		}
		i, tx := i, tx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resolved[i], errs[i] = r.Resolve(tx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	out := make([]*common.ResolvedTx, 0, len(txs))
	var rejected []*common.Rejection
	for i, tx := range txs {
		if errs[i] != nil {
			rejected = append(rejected, &common.Rejection{Tx: tx, Err: errs[i]})
			continue
		}
		out = append(out, resolved[i])
	}
	return out, rejected, nil
}

// ResolveAll resolves txs with this Resolver, see the package function
func (r *Resolver) ResolveAll(ctx context.Context, txs []*common.Transaction,
	parallelism int) ([]*common.ResolvedTx, []*common.Rejection, error) {
	out, rejected, err := ResolveAll(ctx, r, txs, parallelism)
	for _, rej := range rejected {
		r.log.Warnf("reject tx %s, %s", rej.Tx.TxId, rej.Err)
	}
	return out, rejected, err
}
