/*
Copyright (C) BABEC. All rights reserved.

SPDX-License-Identifier: Apache-2.0
*/

package blockchain

// CurrentVersion is the version of this build
const CurrentVersion = "v1.0.0"

// set by -ldflags at build time
var (
	BuildDateTime = ""
	GitBranch     = ""
	GitCommit     = ""
)
