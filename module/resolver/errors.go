/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolver

import "errors"

var (
	// ErrMethodNotRegistered the invoked method has no metadata, the transaction can not be scheduled
	ErrMethodNotRegistered = errors.New("method not registered")
	// ErrMissingArgument the argument a resource is bound to is absent or empty
	ErrMissingArgument = errors.New("missing argument")
	// ErrMetadataUnavailable the metadata of the invoked method could not be read
	ErrMetadataUnavailable = errors.New("metadata unavailable")
)
