/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package provider keeps the tx scheduler providers by scheduler mode
package provider

import (
	"sort"
	"strings"

	"techtradechain.com/txscheduler/module/core/provider/conf"
	"techtradechain.com/txscheduler/protocol"
)

// CoreProvider builds the tx scheduler of one mode
type CoreProvider interface {
	NewTxScheduler(config *conf.CoreEngineConfig) (protocol.TxScheduler, error)
}

var coreProviders = make(map[string]CoreProvider)

// RegisterCoreEngineProvider registers p for mode, mode is case-insensitive
func RegisterCoreEngineProvider(mode string, p CoreProvider) {
	coreProviders[strings.ToUpper(mode)] = p
}

// NewCoreEngineProviderByMode returns the provider of mode, nil if none
func NewCoreEngineProviderByMode(mode string) CoreProvider {
	p, ok := coreProviders[strings.ToUpper(mode)]
	if !ok {
		return nil
	}
	return p
}

// Modes returns every registered mode
func Modes() []string {
	modes := make([]string, 0, len(coreProviders))
	for m := range coreProviders {
		modes = append(modes, m)
	}
	sort.Strings(modes)
	return modes
}
