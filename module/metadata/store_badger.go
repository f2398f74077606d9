/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"sync"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/strategy"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/protocol"
)

var _ protocol.MetadataStore = (*BadgerStore)(nil)

// BadgerStore persists metadata records in badgerdb, same layout as LevelDBStore
type BadgerStore struct {
	writeLock sync.Mutex
	mu        sync.RWMutex
	db        *badger.DB
	index     map[common.MethodId]*common.FunctionMetadata
	logger    protocol.Logger
	closed    bool
}

// NewBadgerStore opens or creates the badgerdb store under path and loads every record
func NewBadgerStore(path string, retries uint, logger protocol.Logger) (*BadgerStore, error) {
	opt := badger.DefaultOptions(path)
	opt.SyncWrites = true
	// badger logs through its own logger otherwise
	opt.Logger = nil

	var db *badger.DB
	err := retry.Retry(func(attempt uint) error {
		var err error
		db, err = badger.Open(opt)
		if err != nil {
			logger.Debugf("open badgerdb %s attempt %d failed, %s", path, attempt, err)
		}
		return err
	}, strategy.Wait(openRetryInterval), strategy.Limit(retries+1))
	if err != nil {
		return nil, errors.Wrapf(err, "open badgerdb %s", path)
	}

	s := &BadgerStore{
		db:     db,
		index:  make(map[common.MethodId]*common.FunctionMetadata),
		logger: logger,
	}
	if err = s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Infof("open badgerdb metadata store %s, %d methods loaded", path, len(s.index))
	return s, nil
}

func (s *BadgerStore) load() error {
	prefix := []byte(keyPrefix)
	return s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return errors.Wrapf(err, "read key %s", item.Key())
			}
			meta, err := decodeRecord(value)
			if err != nil {
				return errors.Wrapf(err, "load key %s", item.Key())
			}
			s.index[meta.Id] = meta
		}
		return nil
	})
}

// Get implements protocol.MetadataStore
func (s *BadgerStore) Get(id common.MethodId) (*common.FunctionMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	return s.index[id], nil
}

// PutIfAbsent implements protocol.MetadataStore
func (s *BadgerStore) PutIfAbsent(meta *common.FunctionMetadata) (bool, error) {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if existing, err := s.Get(meta.Id); err != nil || existing != nil {
		return false, err
	}
	value, err := encodeRecord(meta)
	if err != nil {
		return false, err
	}
	key := recordKey(meta.Id)
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	if err != nil {
		s.logger.Errorf("writing badgerdb key [%s], err:%s", key, err)
		return false, errors.Wrapf(err, "error writing badgerdb key [%s]", key)
	}

	s.mu.Lock()
	s.index[meta.Id] = meta
	s.mu.Unlock()
	return true, nil
}

// Iterate implements protocol.MetadataStore
func (s *BadgerStore) Iterate(fn func(meta *common.FunctionMetadata) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrStoreClosed
	}
	for _, meta := range s.index {
		if !fn(meta) {
			return nil
		}
	}
	return nil
}

// Close implements protocol.MetadataStore
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
