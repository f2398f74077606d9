/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import "errors"

var (
	// ErrMethodAlreadyRegistered the method id is registered, metadata must be registered exactly once
	ErrMethodAlreadyRegistered = errors.New("method already registered")
	// ErrEmptyMethodId method id is empty
	ErrEmptyMethodId = errors.New("empty method id")
	// ErrDuplicateDeclaration the same method id is declared twice in one RegisterAll call
	ErrDuplicateDeclaration = errors.New("duplicate method declaration")
	// ErrStoreClosed the store has been closed
	ErrStoreClosed = errors.New("metadata store closed")
	// ErrInvalidLayout the layout binds a resource that is not an AccountSpecific resource of the
	// method's full set, or binds it to an unknown $ value
	ErrInvalidLayout = errors.New("invalid parameter layout")
	// ErrCorruptedRecord a stored record can not be decoded
	ErrCorruptedRecord = errors.New("corrupted metadata record")
)
