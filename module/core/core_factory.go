/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package core builds tx schedulers by mode
package core

import (
	"fmt"
	"sync"

	"techtradechain.com/txscheduler/module/core/provider"
	"techtradechain.com/txscheduler/module/core/provider/conf"
	"techtradechain.com/txscheduler/protocol"
)

type coreEngineFactory struct {
}

var once sync.Once
var _instance *coreEngineFactory

// Factory return the global core engine factory.
// nolint: revive
func Factory() *coreEngineFactory {
	once.Do(func() { _instance = new(coreEngineFactory) })
	return _instance
}

// NewTxScheduler new the tx scheduler.
// mode specifies the scheduler type, PARALLEL or SERIAL.
// providerConf specifies the necessary config parameters.
func (cf *coreEngineFactory) NewTxScheduler(mode string,
	providerConf *conf.CoreEngineConfig) (protocol.TxScheduler, error) {
	p := provider.NewCoreEngineProviderByMode(mode)
	if p == nil {
		return nil, fmt.Errorf("unknown scheduler mode %q, supported %v", mode, provider.Modes())
	}
	if providerConf.Resolver == nil {
		return nil, fmt.Errorf("scheduler mode %s: nil resource resolver", mode)
	}
	return p.NewTxScheduler(providerConf)
}
