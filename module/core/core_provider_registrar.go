/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package core

import (
	"techtradechain.com/txscheduler/module/core/parallelmode"
	"techtradechain.com/txscheduler/module/core/provider"
	"techtradechain.com/txscheduler/module/core/serialmode"
)

func init() {
	provider.RegisterCoreEngineProvider(parallelmode.ModePARALLEL, parallelmode.NilParallelProvider)
	provider.RegisterCoreEngineProvider(serialmode.ModeSERIAL, serialmode.NilSerialProvider)
}
