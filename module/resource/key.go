/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resource

import "sort"

// Key is the concrete exclusive resource key a transaction instantiates for a Resource.
// AccountSpecific keys carry the account, ReadWriteAccountSharing keys leave it empty.
type Key struct {
	Name    string
	Account string
}

// AccountKey builds the key of an AccountSpecific resource for the given account
func AccountKey(name, account string) Key {
	return Key{Name: name, Account: account}
}

// SharedKey builds the key of a ReadWriteAccountSharing resource
func SharedKey(name string) Key {
	return Key{Name: name}
}

// Instantiate resolves r against account. The account is ignored for shared resources.
func Instantiate(r Resource, account string) Key {
	if r.AccessMode == ReadWriteAccountSharing {
		return SharedKey(r.Name)
	}
	return AccountKey(r.Name, account)
}

// String prints name@account, or name for shared keys
func (k Key) String() string {
	if k.Account == "" {
		return k.Name
	}
	return k.Name + "@" + k.Account
}

// SortKeys orders keys by name then account
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Account < keys[j].Account
	})
}
