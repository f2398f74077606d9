/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"os"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"techtradechain.com/txscheduler/common"
	"techtradechain.com/txscheduler/module/blockchain"
	"techtradechain.com/txscheduler/module/executor"
	"techtradechain.com/txscheduler/module/metadata"
)

// blockFile is a candidate block with the opening balances of its accounts
type blockFile struct {
	Balances map[common.Account]string `yaml:"balances"`
	Txs      []*common.Transaction      `yaml:"txs"`
}

type contractsFile struct {
	Methods []*common.MethodDecl `yaml:"methods"`
}

func readYaml(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err = yaml.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "parse %s", path)
	}
	return nil
}

func loadBlock(path string) (*blockFile, error) {
	block := &blockFile{}
	if err := readYaml(path, block); err != nil {
		return nil, err
	}
	for i, tx := range block.Txs {
		if tx == nil {
			return nil, errors.Errorf("%s: tx %d is empty", path, i)
		}
	}
	return block, nil
}

func loadContracts(path string) ([]*common.MethodDecl, error) {
	contracts := &contractsFile{}
	if err := readYaml(path, contracts); err != nil {
		return nil, err
	}
	return contracts.Methods, nil
}

// registerContracts registers the methods of path that are not registered yet, a registered
// method keeps the layout it was first registered with
func registerContracts(s *blockchain.TxSchedulerServer, path string) (*metadata.RegisterResult, error) {
	methods, err := loadContracts(path)
	if err != nil {
		return nil, err
	}
	fresh := lo.Filter(methods, func(m *common.MethodDecl, _ int) bool {
		_, found := s.Metadata().Metadata(m.Id)
		return !found
	})
	return s.Metadata().RegisterAll(fresh)
}

// applyBalances sets the opening balances when the executor keeps balances
func applyBalances(s *blockchain.TxSchedulerServer, balances map[common.Account]string) error {
	te, ok := s.Executor().(*executor.TransferExecutor)
	if !ok {
		return nil
	}
	for account, value := range balances {
		amount, err := uint256.FromDecimal(value)
		if err != nil {
			return errors.Wrapf(err, "balance of %s", account)
		}
		te.SetBalance(account, amount)
	}
	return nil
}
