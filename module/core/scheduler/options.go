/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package scheduler

import (
	"fmt"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"

	"techtradechain.com/txscheduler/protocol"
)

// Options option config for TxScheduler
type Options struct {
	poolSize           int
	resolveParallelism int
	logger             protocol.Logger
	registerer         prometheus.Registerer
}

// Option option function used to config options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		poolSize:           runtime.NumCPU(),
		resolveParallelism: runtime.NumCPU(),
	}
}

// WithPoolSize sets how many jobs of one batch run at the same time
func WithPoolSize(size int) Option {
	return func(opt *Options) {
		if size > 0 {
			opt.poolSize = size
		}
	}
}

// WithResolveParallelism sets how many transactions are resolved at the same time
func WithResolveParallelism(n int) Option {
	return func(opt *Options) {
		if n > 0 {
			opt.resolveParallelism = n
		}
	}
}

// WithLogger set logger used by the scheduler
func WithLogger(logger protocol.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithRegisterer registers the scheduler metrics with reg, metrics are not exported without it
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *Options) {
		o.registerer = reg
	}
}

// String print options
func (o *Options) String() string {
	return fmt.Sprintf("pool_size: %d, resolve_parallelism: %d, metrics: %t",
		o.poolSize, o.resolveParallelism, o.registerer != nil)
}
