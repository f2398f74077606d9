/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"strings"

	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/protocol"
)

// NewStore creates the metadata store selected by conf.Type
func NewStore(conf *localconf.StoreConfig, log protocol.Logger) (protocol.MetadataStore, error) {
	if conf == nil {
		log.Warn("store conf is nil, use default type: memory")
		return NewMemoryStore(), nil
	}
	switch strings.ToLower(conf.Type) {
	case "", localconf.StoreTypeMemory:
		return NewMemoryStore(), nil
	case localconf.StoreTypeLevelDB:
		return NewLevelDBStore(conf.Path, conf.OpenRetries, log)
	case localconf.StoreTypeBadger:
		return NewBadgerStore(conf.Path, conf.OpenRetries, log)
	default:
		log.Warnf("store type: %v not support, use default type: memory", conf.Type)
		return NewMemoryStore(), nil
	}
}
