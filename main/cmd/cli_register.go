/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"techtradechain.com/txscheduler/localconf"
	"techtradechain.com/txscheduler/module/blockchain"
	"techtradechain.com/txscheduler/module/metadata"
)

// RegisterCMD registers contract methods into the configured metadata store
func RegisterCMD() *cobra.Command {
	o := &cliOptions{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register contract methods",
		Long:  "Check the call graph of contract methods and register them callee first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initLocalConfig(); err != nil {
				return err
			}
			return runRegister(cmd, o)
		},
	}
	attachFlags(cmd, o, []string{flagNameOfConfigFilepath, flagNameOfContracts})
	_ = cmd.MarkFlagRequired(flagNameOfContracts)
	return cmd
}

func runRegister(cmd *cobra.Command, o *cliOptions) error {
	methods, err := loadContracts(o.contracts)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	cycles := metadata.ValidateCallGraph(methods)
	for _, c := range cycles {
		fmt.Fprintln(w, c.Error())
	}

	s := blockchain.NewTxSchedulerServer(localconf.TxSchedulerConfig)
	if err = s.Init(); err != nil {
		return err
	}
	defer s.Stop()

	result, err := registerContracts(s, o.contracts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "registered: %s\n", strings.Join(result.Registered, " "))
	if len(result.Unresolved) > 0 {
		fmt.Fprintf(w, "unresolved: %s\n", strings.Join(result.Unresolved, " "))
	}
	ids, err := s.Metadata().Registered()
	if err != nil {
		return err
	}
	for _, id := range ids {
		full, _ := s.Metadata().FullResourceSet(id)
		fmt.Fprintf(w, "%s: %s\n", id, full)
	}
	return nil
}
