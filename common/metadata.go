/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"sort"

	"techtradechain.com/txscheduler/module/resource"
)

// FunctionMetadata is the resource footprint of one contract method.
// It is immutable once registered.
type FunctionMetadata struct {
	Id               MethodId
	CallingSet       []MethodId
	LocalResourceSet resource.Set
	// FullResourceSet is LocalResourceSet plus the full sets of every callee
	FullResourceSet resource.Set
	Layout          Layout
}

// MethodDecl declares a method before registration
type MethodDecl struct {
	Id         MethodId            `json:"id" yaml:"id"`
	CallingSet []MethodId          `json:"calls,omitempty" yaml:"calls"`
	Resources  []resource.Resource `json:"resources,omitempty" yaml:"resources"`
	Layout     Layout              `json:"layout,omitempty" yaml:"layout"`
}

// binding values that do not name an argument
const (
	BindFrom = "$from"
	BindTo   = "$to"
)

// Layout tells which account instantiates each AccountSpecific resource of a method.
// A binding is BindFrom, BindTo or the name of a transaction argument holding an account.
type Layout struct {
	Bindings map[string]string `json:"bindings,omitempty" yaml:"bindings"`
}

// Binding returns the binding of the resource named name, BindFrom when unbound
func (l Layout) Binding(name string) string {
	if b, ok := l.Bindings[name]; ok && b != "" {
		return b
	}
	return BindFrom
}

// Clone returns a copy of l that shares no map with it
func (l Layout) Clone() Layout {
	if len(l.Bindings) == 0 {
		return Layout{}
	}
	bindings := make(map[string]string, len(l.Bindings))
	for k, v := range l.Bindings {
		bindings[k] = v
	}
	return Layout{Bindings: bindings}
}

// SortedMethodIds returns a sorted copy of ids with duplicates removed
func SortedMethodIds(ids []MethodId) []MethodId {
	seen := make(map[MethodId]struct{}, len(ids))
	out := make([]MethodId, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
