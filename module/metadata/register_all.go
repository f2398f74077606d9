/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"github.com/pkg/errors"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/resource"
)

// RegisterResult is the outcome of RegisterAll
type RegisterResult struct {
	// Registered in registration order
	Registered []common.MethodId
	// Unresolved never found all of their callees, they sit on a call cycle
	// or depend on a method that is missing
	Unresolved []common.MethodId
}

// RegisterAll registers decls in callee-first order without knowing that order upfront.
//
// It passes over the pending declarations in input order, registering those whose callees
// are present, until a pass registers nothing. Methods already in the registry are a hard
// error, as are two declarations with the same id.
func (s *Service) RegisterAll(decls []*common.MethodDecl) (*RegisterResult, error) {
	seen := make(map[common.MethodId]struct{}, len(decls))
	for _, d := range decls {
		if _, ok := seen[d.Id]; ok {
			return nil, errors.Wrapf(ErrDuplicateDeclaration, "method %s", d.Id)
		}
		seen[d.Id] = struct{}{}
	}

	result := &RegisterResult{}
	pending := decls
	for pass := 1; len(pending) > 0; pass++ {
		var next []*common.MethodDecl
		for _, d := range pending {
			ok, err := s.RegisterMethodWithLayout(d.Id, d.CallingSet, resource.NewSet(d.Resources...), d.Layout)
			if err != nil {
				return result, err
			}
			if ok {
				result.Registered = append(result.Registered, d.Id)
				continue
			}
			next = append(next, d)
		}
		if len(next) == len(pending) {
			for _, d := range next {
				result.Unresolved = append(result.Unresolved, d.Id)
			}
			s.log.Warnf("%d methods can not be registered after %d passes: %v",
				len(next), pass, result.Unresolved)
			break
		}
		pending = next
	}
	return result, nil
}
