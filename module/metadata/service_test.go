/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/resource"
	"techtradechain.com/txscheduler/protocol/mock"
	"techtradechain.com/txscheduler/protocol/test"
)

var (
	map1  = resource.Resource{Name: "map1", AccessMode: resource.ReadWriteAccountSharing}
	list1 = resource.Resource{Name: "list1", AccessMode: resource.ReadWriteAccountSharing}
	bal   = resource.Resource{Name: "bal", AccessMode: resource.AccountSpecific}
)

func newTestService() *Service {
	return NewService(NewMemoryStore(), &test.GoLogger{})
}

func TestRegisterMethod(t *testing.T) {
	s := newTestService()

	ok, err := s.RegisterMethod("Z", nil, resource.NewSet(map1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.RegisterMethod("Z", nil, resource.NewSet(map1))
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrMethodAlreadyRegistered))

	ok, err = s.RegisterMethod("Y", []common.MethodId{"Z", "U"}, resource.NewSet(list1))
	require.NoError(t, err)
	assert.False(t, ok)
	_, found := s.FullResourceSet("Y")
	assert.False(t, found)

	ok, err = s.RegisterMethod("Y", []common.MethodId{"Z"}, resource.NewSet(list1))
	require.NoError(t, err)
	assert.True(t, ok)

	full, found := s.FullResourceSet("Y")
	require.True(t, found)
	assert.True(t, full.Equal(resource.NewSet(list1, map1)))

	meta, found := s.Metadata("Y")
	require.True(t, found)
	assert.True(t, meta.LocalResourceSet.Equal(resource.NewSet(list1)))
	assert.Equal(t, []common.MethodId{"Z"}, meta.CallingSet)
}

func TestRegisterMethodEmptyId(t *testing.T) {
	ok, err := newTestService().RegisterMethod("", nil, resource.NewSet())
	assert.False(t, ok)
	assert.Equal(t, ErrEmptyMethodId, err)
}

func TestFullResourceSetIsStable(t *testing.T) {
	s := newTestService()
	_, err := s.RegisterMethod("A", nil, resource.NewSet(bal))
	require.NoError(t, err)
	_, err = s.RegisterMethod("B", []common.MethodId{"A"}, resource.NewSet(map1))
	require.NoError(t, err)

	before, _ := s.FullResourceSet("B")
	before = before.Clone()

	// a later registration that reaches B must not change B
	_, err = s.RegisterMethod("C", []common.MethodId{"B"}, resource.NewSet(list1))
	require.NoError(t, err)
	ok, err := s.RegisterMethod("B", nil, resource.NewSet(list1))
	assert.False(t, ok)
	assert.Error(t, err)

	after, _ := s.FullResourceSet("B")
	assert.True(t, before.Equal(after))
	full, _ := s.FullResourceSet("C")
	assert.True(t, full.Equal(resource.NewSet(bal, map1, list1)))
}

func TestCyclicTrioNeverRegisters(t *testing.T) {
	s := newTestService()
	for _, id := range []common.MethodId{"Q", "R"} {
		ok, err := s.RegisterMethod(id, nil, resource.NewSet(map1))
		require.NoError(t, err)
		require.True(t, ok)
	}
	calls := map[common.MethodId][]common.MethodId{
		"P": {"O", "Q"},
		"O": {"N"},
		"N": {"P", "R"},
	}
	orders := [][]common.MethodId{
		{"P", "O", "N"}, {"N", "O", "P"}, {"O", "P", "N"}, {"N", "P", "O"},
	}
	for i, order := range orders {
		for _, id := range order {
			ok, err := s.RegisterMethod(id, calls[id], resource.NewSet(list1))
			require.NoError(t, err)
			assert.False(t, ok, "method %s registered", id)
		}
		if i == 1 {
			ok, err := s.RegisterMethod("S", []common.MethodId{"Q", "R"}, resource.NewSet(list1))
			require.NoError(t, err)
			require.True(t, ok)
		}
	}
	ids, err := s.Registered()
	require.NoError(t, err)
	assert.Equal(t, []common.MethodId{"Q", "R", "S"}, ids)
}

func TestEnsureTransferMethod(t *testing.T) {
	s := newTestService()
	require.NoError(t, s.EnsureTransferMethod())
	require.NoError(t, s.EnsureTransferMethod())

	full, ok := s.FullResourceSet(resource.TransferMethod)
	require.True(t, ok)
	assert.True(t, full.Equal(resource.NewSet(resource.BalanceResource)))
}

func TestRegisterMethodStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockMetadataStore(ctrl)
	diskErr := errors.New("disk full")
	store.EXPECT().Get("A").Return(nil, nil)
	store.EXPECT().PutIfAbsent(gomock.Any()).Return(false, diskErr)

	s := NewService(store, &test.GoLogger{})
	ok, err := s.RegisterMethod("A", nil, resource.NewSet(map1))
	assert.False(t, ok)
	assert.True(t, errors.Is(err, diskErr))
}

func TestRegisterMethodLostRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockMetadataStore(ctrl)
	store.EXPECT().Get("A").Return(nil, nil)
	store.EXPECT().PutIfAbsent(gomock.Any()).Return(false, nil)

	ok, err := NewService(store, &test.GoLogger{}).RegisterMethod("A", nil, resource.NewSet(map1))
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrMethodAlreadyRegistered))
}

func TestMetadataReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock.NewMockMetadataStore(ctrl)
	store.EXPECT().Get("A").Return(nil, ErrStoreClosed).Times(2)
	log := test.NewRecordingLogger()
	s := NewService(store, log)

	_, ok := s.FullResourceSet("A")
	assert.False(t, ok)
	assert.True(t, log.Contains(test.WARN, "lookup failed, get metadata of A"))

	meta, err := s.Lookup("A")
	assert.Nil(t, meta)
	assert.ErrorIs(t, err, ErrStoreClosed)
}

func TestLookupUnregistered(t *testing.T) {
	meta, err := newTestService().Lookup("A")
	assert.NoError(t, err)
	assert.Nil(t, meta)
}

func TestRegisterMethodWithLayout(t *testing.T) {
	s := newTestService()
	_, err := s.RegisterMethod("Z", nil, resource.NewSet(bal))
	require.NoError(t, err)

	bindings := map[string]string{"bal": common.BindTo}
	ok, err := s.RegisterMethodWithLayout("Y", []common.MethodId{"Z"}, resource.NewSet(map1),
		common.Layout{Bindings: bindings})
	require.NoError(t, err)
	require.True(t, ok)

	bindings["bal"] = "owner"
	meta, ok := s.Metadata("Y")
	require.True(t, ok)
	assert.Equal(t, common.BindTo, meta.Layout.Binding("bal"))
	assert.Equal(t, common.BindFrom, meta.Layout.Binding("map1"))

	meta, _ = s.Metadata("Z")
	assert.Empty(t, meta.Layout.Bindings)
}

func TestRegisterMethodInvalidLayout(t *testing.T) {
	cases := map[string]map[string]string{
		"untouched resource": {"allowance": common.BindFrom},
		"shared resource":    {"map1": "owner"},
		"unknown binding":    {"bal": "$sender"},
	}
	for name, bindings := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestService()
			ok, err := s.RegisterMethodWithLayout("X", nil, resource.NewSet(bal, map1),
				common.Layout{Bindings: bindings})
			assert.False(t, ok)
			assert.ErrorIs(t, err, ErrInvalidLayout)

			_, registered := s.Metadata("X")
			assert.False(t, registered)
		})
	}
}
