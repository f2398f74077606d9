/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"sync"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/protocol"
)

var _ protocol.MetadataStore = (*MemoryStore)(nil)

// MemoryStore keeps metadata in a map, one per chain or per test
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[common.MethodId]*common.FunctionMetadata
	closed  bool
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[common.MethodId]*common.FunctionMetadata)}
}

// Get implements protocol.MetadataStore
func (s *MemoryStore) Get(id common.MethodId) (*common.FunctionMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	return s.entries[id], nil
}

// PutIfAbsent implements protocol.MetadataStore
func (s *MemoryStore) PutIfAbsent(meta *common.FunctionMetadata) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, ErrStoreClosed
	}
	if _, ok := s.entries[meta.Id]; ok {
		return false, nil
	}
	s.entries[meta.Id] = meta
	return true, nil
}

// Iterate implements protocol.MetadataStore
func (s *MemoryStore) Iterate(fn func(meta *common.FunctionMetadata) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	for _, meta := range s.entries {
		if !fn(meta) {
			return nil
		}
	}
	return nil
}

// Close implements protocol.MetadataStore
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
