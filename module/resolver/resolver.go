/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package resolver maps transactions to the resource keys they instantiate
package resolver

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/resource"
	"techtradechain.com/txscheduler/protocol"
)

// binding values that do not name an argument
const (
	BindFrom = common.BindFrom
	BindTo   = common.BindTo
)

const defaultCacheSize = 1024

var _ protocol.ResourceResolver = (*Resolver)(nil)

// Layout binds the AccountSpecific resources of a method to the account that instantiates them.
// It is registered and persisted with the method metadata.
type Layout = common.Layout

// Resolver resolves transactions against the function metadata of their methods
type Resolver struct {
	meta  protocol.MetadataReader
	log   protocol.Logger
	cache *lru.Cache
}

// methodFootprint is the cached part of a method's metadata the resolver needs
type methodFootprint struct {
	resources []resource.Resource
	layout    Layout
}

// NewResolver creates a Resolver caching the footprint of up to cacheSize methods
func NewResolver(meta protocol.MetadataReader, cacheSize int, log protocol.Logger) (*Resolver, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Resolver{
		meta:  meta,
		log:   log,
		cache: cache,
	}, nil
}

// footprint returns the sorted full resource set and the layout of method, nil when method
// is not registered
func (r *Resolver) footprint(method common.MethodId) (*methodFootprint, error) {
	if v, ok := r.cache.Get(method); ok {
		return v.(*methodFootprint), nil
	}
	meta, err := r.meta.Lookup(method)
	if err != nil {
		return nil, errors.Wrapf(ErrMetadataUnavailable, "method %s: %s", method, err)
	}
	if meta == nil {
		return nil, nil
	}
	fp := &methodFootprint{resources: meta.FullResourceSet.Sorted(), layout: meta.Layout}
	r.cache.Add(method, fp)
	return fp, nil
}

// Resolve implements protocol.ResourceResolver.
//
// Every resource of the method's full set is claimed exclusively. AccountSpecific resources are
// also referenced on the receiver as shared keys, which join transactions into one job without
// ordering them into different batches.
func (r *Resolver) Resolve(tx *common.Transaction) (*common.ResolvedTx, error) {
	method := tx.MethodName()
	fp, err := r.footprint(method)
	if err != nil {
		return nil, errors.WithMessagef(err, "tx %s", tx.TxId)
	}
	if fp == nil {
		return nil, errors.Wrapf(ErrMethodNotRegistered, "tx %s invokes %s", tx.TxId, method)
	}

	exclusive := make([]resource.Key, 0, len(fp.resources))
	var shared []resource.Key
	for _, res := range fp.resources {
		if res.AccessMode == resource.ReadWriteAccountSharing {
			exclusive = append(exclusive, resource.SharedKey(res.Name))
			continue
		}
		account, err := bindAccount(tx, res.Name, fp.layout.Binding(res.Name))
		if err != nil {
			return nil, err
		}
		exclusive = append(exclusive, resource.Instantiate(res, account))
		if tx.To != "" {
			shared = append(shared, resource.AccountKey(res.Name, tx.To))
		}
	}

	exclusive = lo.Uniq(exclusive)
	claimed := lo.SliceToMap(exclusive, func(k resource.Key) (resource.Key, struct{}) {
		return k, struct{}{}
	})
	shared = lo.Uniq(lo.Filter(shared, func(k resource.Key, _ int) bool {
		_, ok := claimed[k]
		return !ok
	}))
	resource.SortKeys(exclusive)
	resource.SortKeys(shared)
	return &common.ResolvedTx{Tx: tx, Exclusive: exclusive, Shared: shared}, nil
}

func bindAccount(tx *common.Transaction, name, binding string) (common.Account, error) {
	var account common.Account
	switch binding {
	case BindFrom:
		account = tx.From
	case BindTo:
		account = tx.To
	default:
		account = tx.Args[binding]
	}
	if account == "" {
		return "", errors.Wrapf(ErrMissingArgument, "tx %s: resource %s bound to %s", tx.TxId, name, binding)
	}
	return account, nil
}
