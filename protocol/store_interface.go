/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package protocol

import (
	"techtradechain.com/txscheduler/common"
)

// MetadataStore is the append-only backend of the function metadata registry
type MetadataStore interface {
	// Get returns the metadata of id, nil if it is not registered
	Get(id common.MethodId) (*common.FunctionMetadata, error)
	// PutIfAbsent stores meta unless its id exists, and reports whether it was stored
	PutIfAbsent(meta *common.FunctionMetadata) (bool, error)
	// Iterate calls fn for every stored entry until fn returns false
	Iterate(fn func(meta *common.FunctionMetadata) bool) error
	Close() error
}

// MetadataReader reads registered function metadata
type MetadataReader interface {
	// Lookup returns the metadata of id, nil if it is not registered
	Lookup(id common.MethodId) (*common.FunctionMetadata, error)
}
