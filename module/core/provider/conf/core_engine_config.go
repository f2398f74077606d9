/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package conf holds what a core provider needs to build a tx scheduler
package conf

import (
	"github.com/prometheus/client_golang/prometheus"

	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/protocol"
)

// CoreEngineConfig is the input of every core provider
type CoreEngineConfig struct {
	SchedulerConfig localconf.SchedulerConfig
	Resolver        protocol.ResourceResolver
	Log             protocol.Logger
	// Registerer receives the scheduler metrics when SchedulerConfig.EnableMetrics is set
	Registerer prometheus.Registerer
}
