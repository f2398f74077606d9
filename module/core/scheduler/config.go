/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"

	"techtradechain.com/txscheduler/module/core/provider/conf"
)

// NewTxSchedulerWithConfig creates a TxScheduler with planner from a provider config
func NewTxSchedulerWithConfig(config *conf.CoreEngineConfig, planner Planner) (*TxScheduler, error) {
	opts := []Option{
		WithPoolSize(config.SchedulerConfig.WorkerPoolSize),
		WithResolveParallelism(config.SchedulerConfig.ResolveParallelism),
		WithLogger(config.Log),
	}
	if config.SchedulerConfig.EnableMetrics {
		reg := config.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		opts = append(opts, WithRegisterer(reg))
	}
	return NewTxScheduler(config.Resolver, planner, opts...)
}
