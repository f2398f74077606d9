/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package metadata keeps the append-only registry of contract method resource footprints.
package metadata

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/resource"
	"techtradechain.com/txscheduler/protocol"
)

var _ protocol.MetadataReader = (*Service)(nil)

// Service computes and serves the full resource set of every registered method.
//
// A method can only be registered after all of its callees, so the full set is built from
// callees that are already closed. A call cycle can never satisfy that order, its members
// keep failing and are never materialized.
type Service struct {
	store protocol.MetadataStore
	log   protocol.Logger
	// writeLock serializes registrations, entries are immutable so reads take no lock
	writeLock sync.Mutex
}

// NewService creates a Service over store
func NewService(store protocol.MetadataStore, log protocol.Logger) *Service {
	return &Service{store: store, log: log}
}

// RegisterMethod registers the metadata of id.
//
// It returns false with ErrMethodAlreadyRegistered when id exists, and false with a nil error
// when some callee is not registered yet. Neither case mutates the registry.
func (s *Service) RegisterMethod(id common.MethodId, callingSet []common.MethodId,
	localResourceSet resource.Set) (bool, error) {
	return s.RegisterMethodWithLayout(id, callingSet, localResourceSet, common.Layout{})
}

// RegisterMethodWithLayout is RegisterMethod with the parameter layout stored alongside the
// metadata. A layout may only bind AccountSpecific resources of the full set, it fails with
// ErrInvalidLayout otherwise.
func (s *Service) RegisterMethodWithLayout(id common.MethodId, callingSet []common.MethodId,
	localResourceSet resource.Set, layout common.Layout) (bool, error) {
	if id == "" {
		return false, ErrEmptyMethodId
	}
	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	existing, err := s.store.Get(id)
	if err != nil {
		return false, errors.Wrapf(err, "get metadata of %s", id)
	}
	if existing != nil {
		return false, errors.Wrapf(ErrMethodAlreadyRegistered, "method %s", id)
	}

	calls := common.SortedMethodIds(callingSet)
	full := localResourceSet.Clone()
	for _, callee := range calls {
		calleeMeta, err := s.store.Get(callee)
		if err != nil {
			return false, errors.Wrapf(err, "get metadata of callee %s", callee)
		}
		if calleeMeta == nil {
			s.log.Debugf("method %s not registered, callee %s is missing", id, callee)
			return false, nil
		}
		full = full.Union(calleeMeta.FullResourceSet)
	}

	if err = checkLayout(id, layout, full); err != nil {
		return false, err
	}

	meta := &common.FunctionMetadata{
		Id:               id,
		CallingSet:       calls,
		LocalResourceSet: localResourceSet.Clone(),
		FullResourceSet:  full,
		Layout:           layout.Clone(),
	}
	stored, err := s.store.PutIfAbsent(meta)
	if err != nil {
		return false, errors.Wrapf(err, "put metadata of %s", id)
	}
	if !stored {
		return false, errors.Wrapf(ErrMethodAlreadyRegistered, "method %s", id)
	}
	s.log.Debugf("method %s registered, full resource set %s", id, full)
	return true, nil
}

func checkLayout(id common.MethodId, layout common.Layout, full resource.Set) error {
	for name, binding := range layout.Bindings {
		if !full.Contains(resource.Resource{Name: name, AccessMode: resource.AccountSpecific}) {
			return errors.Wrapf(ErrInvalidLayout, "method %s has no AccountSpecific resource %s", id, name)
		}
		if strings.HasPrefix(binding, "$") && binding != common.BindFrom && binding != common.BindTo {
			return errors.Wrapf(ErrInvalidLayout, "method %s binds %s to %s", id, name, binding)
		}
	}
	return nil
}

// Lookup implements protocol.MetadataReader
func (s *Service) Lookup(id common.MethodId) (*common.FunctionMetadata, error) {
	meta, err := s.store.Get(id)
	if err != nil {
		return nil, errors.Wrapf(err, "get metadata of %s", id)
	}
	return meta, nil
}

// FullResourceSet returns the full resource set of id, false when id is not registered.
// The returned set must not be modified.
func (s *Service) FullResourceSet(id common.MethodId) (resource.Set, bool) {
	meta, ok := s.Metadata(id)
	if !ok {
		return nil, false
	}
	return meta.FullResourceSet, true
}

// Metadata returns the registered metadata of id
func (s *Service) Metadata(id common.MethodId) (*common.FunctionMetadata, bool) {
	meta, err := s.Lookup(id)
	if err != nil {
		s.log.Warnf("lookup failed, %s", err)
		return nil, false
	}
	return meta, meta != nil
}

// Registered returns every registered method id, sorted
func (s *Service) Registered() ([]common.MethodId, error) {
	var ids []common.MethodId
	err := s.store.Iterate(func(meta *common.FunctionMetadata) bool {
		ids = append(ids, meta.Id)
		return true
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

// EnsureTransferMethod registers the built-in two-party transfer method unless present
func (s *Service) EnsureTransferMethod() error {
	if _, ok := s.FullResourceSet(resource.TransferMethod); ok {
		return nil
	}
	_, err := s.RegisterMethod(resource.TransferMethod, nil, resource.NewSet(resource.BalanceResource))
	if errors.Is(err, ErrMethodAlreadyRegistered) {
		return nil
	}
	return err
}

// Close closes the underlying store
func (s *Service) Close() error {
	return s.store.Close()
}
