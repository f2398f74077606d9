/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"techtradechain.com/txscheduler/logger"
	"techtradechain.com/txscheduler/main/cmd"
)

// ./txscheduler schedule -c ../config/txscheduler.yml -f block.yml --contracts contracts.yml --execute
func main() {
	mainCmd := &cobra.Command{Use: "txscheduler", SilenceErrors: true}
	mainCmd.AddCommand(cmd.StartCMD())
	mainCmd.AddCommand(cmd.ScheduleCMD())
	mainCmd.AddCommand(cmd.RegisterCMD())
	mainCmd.AddCommand(cmd.ConfigCMD())
	mainCmd.AddCommand(cmd.VersionCMD())

	err := mainCmd.Execute()
	logger.SyncAll()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
