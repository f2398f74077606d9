/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"techtradechain.com/txscheduler/module/blockchain"
)

// VersionCMD shows the txscheduler version
func VersionCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show txscheduler version",
		Long:  "Show txscheduler version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), logo())
			return nil
		},
	}
}

func logo() string {
	fig := figure.NewFigure("TxScheduler", "slant", true)
	fragment := "=================================================================================="
	versionInfo := fmt.Sprintf("TxScheduler Version: %s\n", blockchain.CurrentVersion)
	if blockchain.BuildDateTime != "" {
		versionInfo += fmt.Sprintf("Build Time:%10s%s\n", " ", blockchain.BuildDateTime)
	}
	if blockchain.GitBranch != "" {
		versionInfo += fmt.Sprintf("Git Commit:%10s%s", " ", blockchain.GitBranch)
		if blockchain.GitCommit != "" {
			versionInfo += fmt.Sprintf("(%s)", blockchain.GitCommit)
		}
	}
	return fmt.Sprintf("\n%s\n%s%s\n%s\n", fragment, fig.String(), fragment, versionInfo)
}
