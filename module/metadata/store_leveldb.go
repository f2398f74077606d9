/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"os"
	"sync"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/strategy"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/protocol"
)

const (
	// openRetryInterval is the wait between two attempts to open a locked database
	openRetryInterval      = 200 * time.Millisecond
	defaultWriteBufferSize = 4 * opt.MiB
)

var _ protocol.MetadataStore = (*LevelDBStore)(nil)

// LevelDBStore persists metadata records in leveldb and serves reads from an in-memory index
type LevelDBStore struct {
	writeLock sync.Mutex
	mu        sync.RWMutex
	db        *leveldb.DB
	index     map[common.MethodId]*common.FunctionMetadata
	logger    protocol.Logger
	closed    bool
}

// NewLevelDBStore opens or creates the leveldb store under path and loads every record.
// Opening is attempted retries+1 times while another process holds the lock.
func NewLevelDBStore(path string, retries uint, logger protocol.Logger) (*LevelDBStore, error) {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return nil, errors.Wrapf(err, "create leveldb dir %s", path)
	}
	var db *leveldb.DB
	err := retry.Retry(func(attempt uint) error {
		var err error
		db, err = leveldb.OpenFile(path, &opt.Options{WriteBuffer: defaultWriteBufferSize})
		if err != nil {
			logger.Debugf("open leveldb %s attempt %d failed, %s", path, attempt, err)
		}
		return err
	}, strategy.Wait(openRetryInterval), strategy.Limit(retries+1))
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb %s", path)
	}

	s := &LevelDBStore{
		db:     db,
		index:  make(map[common.MethodId]*common.FunctionMetadata),
		logger: logger,
	}
	if err = s.load(); err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Infof("open leveldb metadata store %s, %d methods loaded", path, len(s.index))
	return s, nil
}

func (s *LevelDBStore) load() error {
	iter := s.db.NewIterator(util.BytesPrefix([]byte(keyPrefix)), nil)
	defer iter.Release()
	for iter.Next() {
		meta, err := decodeRecord(iter.Value())
		if err != nil {
			return errors.Wrapf(err, "load key %s", iter.Key())
		}
		s.index[meta.Id] = meta
	}
	return iter.Error()
}

// Get implements protocol.MetadataStore
func (s *LevelDBStore) Get(id common.MethodId) (*common.FunctionMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	return s.index[id], nil
}

// PutIfAbsent implements protocol.MetadataStore, the record is synced before it becomes visible
func (s *LevelDBStore) PutIfAbsent(meta *common.FunctionMetadata) (bool, error) {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if existing, err := s.Get(meta.Id); err != nil || existing != nil {
		return false, err
	}
	value, err := encodeRecord(meta)
	if err != nil {
		return false, err
	}
	if err = s.db.Put(recordKey(meta.Id), value, &opt.WriteOptions{Sync: true}); err != nil {
		s.logger.Errorf("writing leveldb key [%s], err:%s", recordKey(meta.Id), err)
		return false, errors.Wrapf(err, "error writing leveldb key [%s]", recordKey(meta.Id))
	}

	s.mu.Lock()
	s.index[meta.Id] = meta
	s.mu.Unlock()
	return true, nil
}

// Iterate implements protocol.MetadataStore
func (s *LevelDBStore) Iterate(fn func(meta *common.FunctionMetadata) bool) error {
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
func (s *LevelDBStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
