/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"techtradechain.com/txscheduler/localconf"
)

// ConfigCMD shows the loaded config
func ConfigCMD() *cobra.Command {
	o := &cliOptions{}
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show txscheduler config",
		Long:  "Show txscheduler config, defaults are filled in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := initLocalConfig(); err != nil {
				return err
			}
			return showConfig(cmd)
		},
	}
	attachFlags(cmd, o, []string{flagNameOfConfigFilepath})
	return cmd
}

func showConfig(cmd *cobra.Command) error {
	json, err := localconf.TxSchedulerConfig.PrettyJson()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), json)
	return nil
}
