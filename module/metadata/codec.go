/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"encoding/json"

	"github.com/pkg/errors"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/resource"
)

// keyPrefix prefixes every metadata record in the kv stores
const keyPrefix = "m/"

type record struct {
	Id         string              `json:"id"`
	CallingSet []string            `json:"calling_set,omitempty"`
	Local      []resource.Resource `json:"local,omitempty"`
	Full       []resource.Resource `json:"full,omitempty"`
	Bindings   map[string]string   `json:"bindings,omitempty"`
}

func recordKey(id common.MethodId) []byte {
	return []byte(keyPrefix + id)
}

func encodeRecord(meta *common.FunctionMetadata) ([]byte, error) {
	return json.Marshal(&record{
		Id:         meta.Id,
		CallingSet: meta.CallingSet,
		Local:      meta.LocalResourceSet.Sorted(),
		Full:       meta.FullResourceSet.Sorted(),
		Bindings:   meta.Layout.Bindings,
	})
}

func decodeRecord(data []byte) (*common.FunctionMetadata, error) {
	r := &record{}
	if err := json.Unmarshal(data, r); err != nil {
		return nil, errors.Wrap(ErrCorruptedRecord, err.Error())
	}
	if r.Id == "" {
		return nil, errors.Wrap(ErrCorruptedRecord, "empty id")
	}
	return &common.FunctionMetadata{
		Id:               r.Id,
		CallingSet:       r.CallingSet,
		LocalResourceSet: resource.NewSet(r.Local...),
		FullResourceSet:  resource.NewSet(r.Full...),
		Layout:           common.Layout{Bindings: r.Bindings},
	}, nil
}
