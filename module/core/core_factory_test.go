/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package core

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/module/core/provider"
	"techtradechain.com/txscheduler/module/core/provider/conf"
	"techtradechain.com/txscheduler/module/metadata"
	"techtradechain.com/txscheduler/module/resolver"
	"techtradechain.com/txscheduler/protocol/test"
)

func newConf(t *testing.T) *conf.CoreEngineConfig {
	svc := metadata.NewService(metadata.NewMemoryStore(), &test.GoLogger{})
	require.NoError(t, svc.EnsureTransferMethod())
	r, err := resolver.NewResolver(svc, 0, &test.GoLogger{})
	require.NoError(t, err)
	return &conf.CoreEngineConfig{
		SchedulerConfig: localconf.SchedulerConfig{WorkerPoolSize: 2, EnableMetrics: true},
		Resolver:        r,
		Log:             &test.GoLogger{},
		Registerer:      prometheus.NewRegistry(),
	}
}

func TestFactoryModes(t *testing.T) {
	assert.Equal(t, []string{localconf.SchedulerModeParallel, localconf.SchedulerModeSerial}, provider.Modes())
	assert.Same(t, Factory(), Factory())

	txs := []*common.Transaction{{TxId: "0", From: "A", To: "B"}, {TxId: "1", From: "A", To: "C"}}
	batches := map[string]int{"parallel": 2, "SERIAL": 1}
	for mode, want := range batches {
		s, err := Factory().NewTxScheduler(mode, newConf(t))
		require.NoError(t, err, mode)
		sched, err := s.Schedule(context.Background(), txs)
		require.NoError(t, err)
		assert.Len(t, sched.Batches, want, mode)
		s.Halt()
	}
}

func TestFactoryErrors(t *testing.T) {
	_, err := Factory().NewTxScheduler("OPTIMISTIC", newConf(t))
	assert.ErrorContains(t, err, `unknown scheduler mode "OPTIMISTIC"`)

	c := newConf(t)
	c.Resolver = nil
	_, err = Factory().NewTxScheduler(localconf.SchedulerModeParallel, c)
	assert.ErrorContains(t, err, "nil resource resolver")
}
