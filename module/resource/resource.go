/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package resource describes the pieces of contestable state a contract method touches.
package resource

import (
	"fmt"
	"sort"
	"strings"
)

// DataAccessMode tells how a resource is shared between accounts
type DataAccessMode int

const (
	// AccountSpecific resource is keyed by an account parameter,
	// two instantiations conflict only when they name the same account.
	AccountSpecific DataAccessMode = iota
	// ReadWriteAccountSharing resource is a single shared instance,
	// every pair of references conflicts.
	ReadWriteAccountSharing
)

// TransferMethod is the built-in two-party transfer, used when a transaction names no method
const TransferMethod = "transfer"

// BalanceResource is the account balance touched by TransferMethod
var BalanceResource = Resource{Name: "balance", AccessMode: AccountSpecific}

var accessModeNames = map[DataAccessMode]string{
	AccountSpecific:         "AccountSpecific",
	ReadWriteAccountSharing: "ReadWriteAccountSharing",
}

// String returns the mode name
func (m DataAccessMode) String() string {
	if name, ok := accessModeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DataAccessMode(%d)", int(m))
}

// ParseDataAccessMode parses a mode name, case insensitive
func ParseDataAccessMode(s string) (DataAccessMode, error) {
	for mode, name := range accessModeNames {
		if strings.EqualFold(name, s) {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown data access mode %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (m DataAccessMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *DataAccessMode) UnmarshalText(text []byte) error {
	mode, err := ParseDataAccessMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Resource identifies a contestable piece of state
type Resource struct {
	Name       string         `json:"name" yaml:"name"`
	AccessMode DataAccessMode `json:"access_mode" yaml:"access_mode"`
}

// String returns name/mode
func (r Resource) String() string {
	return r.Name + "/" + r.AccessMode.String()
}

func (r Resource) less(o Resource) bool {
	if r.Name != o.Name {
		return r.Name < o.Name
	}
	return r.AccessMode < o.AccessMode
}

// Set is a set of resources
type Set map[Resource]struct{}

// NewSet builds a set from the given resources
func NewSet(resources ...Resource) Set {
	s := make(Set, len(resources))
	for _, r := range resources {
		s[r] = struct{}{}
	}
	return s
}

// Add adds r to the set
func (s Set) Add(r Resource) {
	s[r] = struct{}{}
}

// Contains reports whether r is in the set
func (s Set) Contains(r Resource) bool {
	_, ok := s[r]
	return ok
}

// Len returns the set size
func (s Set) Len() int {
	return len(s)
}

// Clone returns a copy of the set
func (s Set) Clone() Set {
	c := make(Set, len(s))
	for r := range s {
		c[r] = struct{}{}
	}
	return c
}

// Union returns a new set holding s and every other set
func (s Set) Union(others ...Set) Set {
	u := s.Clone()
	for _, o := range others {
		for r := range o {
			u[r] = struct{}{}
		}
	}
	return u
}

// Equal reports whether both sets hold the same resources
func (s Set) Equal(o Set) bool {
	if len(s) != len(o) {
		return false
	}
	for r := range s {
		if !o.Contains(r) {
			return false
		}
	}
	return true
}

// Sorted returns the resources ordered by name then access mode
func (s Set) Sorted() []Resource {
	res := make([]Resource, 0, len(s))
	for r := range s {
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].less(res[j]) })
	return res
}

// String prints the sorted set
func (s Set) String() string {
	sorted := s.Sorted()
	parts := make([]string, len(sorted))
	for i, r := range sorted {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
